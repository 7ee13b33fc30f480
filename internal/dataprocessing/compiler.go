package dataprocessing

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/xuri/excelize/v2"

	"aihwetl/pkg/contracts/domain"
)

// yearRangeRe matches the publisher's financial-year naming, e.g.
// "tables-reasons-for-care-2022-23.xlsx". The publication year is the closing
// year of the range: "2022-23" reports on the year ending 2023.
var yearRangeRe = regexp.MustCompile(`(20\d{2})-(\d{2})`)

// eligibleSheetRe matches the sheet names that carry separation counts by
// state. The "Table 4.x" / "Table 5.x" / "Table Sx" convention is publisher
// specific and may silently stop matching if the publisher renames its
// sheets; the only guard against that is the empty-compilation failure.
var eligibleSheetRe = regexp.MustCompile(`(?i)^table\s*(4|5|s)`)

// ExtractYear pulls the publication year out of a workbook source name.
// "2022-23" yields 2023. Names without a recognizable year range yield
// domain.YearUnknown rather than failing the run.
func ExtractYear(name string) int {
	m := yearRangeRe.FindStringSubmatch(name)
	if m == nil {
		return domain.YearUnknown
	}
	opening, _ := strconv.Atoi(m[1])
	suffix, _ := strconv.Atoi(m[2])
	closing := opening - opening%100 + suffix
	if closing < opening {
		closing += 100
	}
	return closing
}

// EligibleSheet reports whether a sheet name matches the publication's
// separations-table naming convention.
func EligibleSheet(name string) bool {
	return eligibleSheetRe.MatchString(name)
}

// Compiler iterates workbook sources, reshapes every eligible sheet, and
// concatenates the results into one unified long-form table.
type Compiler struct {
	logger *slog.Logger
}

// NewCompiler creates a compiler. A nil logger falls back to slog.Default().
func NewCompiler(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{logger: logger}
}

// Compile processes every source in order: extract the publication year from
// the source name, reshape each eligible sheet, append non-empty results.
// Structurally unusable sheets are skipped and logged; a workbook that cannot
// be opened at all aborts the run. An empty accumulator after all sources is
// always a processing failure, never a valid no-data outcome, and returns
// ErrEmptyCompilation.
func (c *Compiler) Compile(sources []domain.WorkbookSource) (*domain.SeparationTable, error) {
	table := &domain.SeparationTable{}

	for _, src := range sources {
		year := ExtractYear(src.Name)
		c.logger.Info("compiling workbook source",
			slog.String("source", src.Name),
			slog.Int("year", year))

		f, err := excelize.OpenReader(bytes.NewReader(src.Content))
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %q: %w", src.Name, err)
		}

		for _, sheet := range f.GetSheetList() {
			if !EligibleSheet(sheet) {
				continue
			}
			rows, err := f.GetRows(sheet)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to read sheet %q of %q: %w", sheet, src.Name, err)
			}

			records, dims, err := ReshapeSheet(sheet, rows, year)
			if err != nil {
				if IsUnusableSheet(err) {
					c.logger.Info("skipping unusable sheet",
						slog.String("source", src.Name),
						slog.String("sheet", sheet),
						slog.String("reason", err.Error()))
					continue
				}
				f.Close()
				return nil, err
			}
			if len(records) == 0 {
				continue
			}

			dims = AnnotateChapters(records, dims)
			table.MergeDimensionColumns(dims)
			table.Records = append(table.Records, records...)

			c.logger.Info("sheet reshaped",
				slog.String("source", src.Name),
				slog.String("sheet", sheet),
				slog.Int("records", len(records)))
		}
		f.Close()
	}

	if table.Len() == 0 {
		return nil, ErrEmptyCompilation
	}

	c.logger.Info("compilation complete",
		slog.Int("total_records", table.Len()),
		slog.Int("dimension_columns", len(table.DimensionColumns)))
	return table, nil
}

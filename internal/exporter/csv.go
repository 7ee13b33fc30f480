// Package exporter writes separation tables to CSV files for inspection and
// downstream tooling that does not read the database.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"aihwetl/pkg/contracts/domain"
)

// CSVWriter exports separation tables as CSV.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. A nil logger falls back to
// slog.Default().
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteTable writes one table to filePath, creating parent directories as
// needed. Columns are year, state, the table's dimension columns in order,
// then separations; rows are sorted for deterministic output. A UTF-8 BOM is
// prefixed so Excel opens the file correctly.
func (w *CSVWriter) WriteTable(table *domain.SeparationTable, filePath string) error {
	w.logger.Info("writing CSV export",
		slog.String("file_path", filePath),
		slog.Int("record_count", table.Len()))

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(Header(table)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range Rows(table) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

// Header returns the CSV header row for a table.
func Header(table *domain.SeparationTable) []string {
	header := make([]string, 0, len(table.DimensionColumns)+3)
	header = append(header, "year", "state")
	header = append(header, table.DimensionColumns...)
	return append(header, "separations")
}

// Rows renders a table's records as CSV rows in sorted order. The year
// sentinel for unknown years renders as an empty field rather than a zero.
func Rows(table *domain.SeparationTable) [][]string {
	records := table.SortedCopy()
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(table.DimensionColumns)+3)
		if rec.Year == domain.YearUnknown {
			row = append(row, "")
		} else {
			row = append(row, strconv.Itoa(rec.Year))
		}
		row = append(row, rec.State)
		for _, d := range table.DimensionColumns {
			row = append(row, rec.Dimension(d))
		}
		row = append(row, strconv.FormatFloat(rec.Separations, 'f', -1, 64))
		rows = append(rows, row)
	}
	return rows
}

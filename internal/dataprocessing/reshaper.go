package dataprocessing

import (
	"strconv"
	"strings"

	"aihwetl/pkg/contracts/domain"
)

// cellAt reads a cell from a possibly ragged row.
func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// parseSeparations coerces a state-column cell to a count. Thousands
// separators are stripped the way the publisher writes them; anything that
// still fails to parse, or parses negative, is reported as missing so that
// the caller drops the observation instead of recording a zero.
func parseSeparations(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// ReshapeSheet turns one raw sheet grid into long-form records: one record
// per (dimension-combination, state) pair, each tagged with the supplied
// publication year.
//
// The sheet is rejected with an *UnusableSheetError when no header row can be
// located or classification finds too few usable columns. Rows whose first
// dimension cell is blank are subtotal or spacer rows and are skipped.
// Individual observations whose count fails numeric coercion are dropped,
// never zeroed.
func ReshapeSheet(sheet string, grid [][]string, year int) ([]domain.SeparationRecord, []string, error) {
	if len(grid) == 0 {
		return nil, nil, &UnusableSheetError{Sheet: sheet, Reason: ReasonEmptySheet}
	}

	headerIdx, found := LocateHeaderRow(grid)
	if !found {
		return nil, nil, &UnusableSheetError{Sheet: sheet, Reason: ReasonNoHeaderRow}
	}

	cls, err := ClassifyColumns(grid[headerIdx])
	if err != nil {
		if u, ok := err.(*UnusableSheetError); ok {
			u.Sheet = sheet
		}
		return nil, nil, err
	}

	leadDim := cls.Dimensions[0]
	var records []domain.SeparationRecord
	for _, row := range grid[headerIdx+1:] {
		if strings.TrimSpace(cellAt(row, leadDim.Index)) == "" {
			continue
		}

		dims := make(map[string]string, len(cls.Dimensions))
		for _, d := range cls.Dimensions {
			dims[d.Name] = CleanText(cellAt(row, d.Index))
		}

		for _, st := range cls.States {
			count, ok := parseSeparations(cellAt(row, st.Index))
			if !ok {
				continue
			}
			rec := domain.SeparationRecord{
				Year:        year,
				State:       st.Name,
				Dimensions:  make(map[string]string, len(dims)),
				Separations: count,
			}
			for k, v := range dims {
				rec.Dimensions[k] = v
			}
			records = append(records, rec)
		}
	}

	return records, cls.DimensionNames(), nil
}

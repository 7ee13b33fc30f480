package domain

import (
	"sort"
	"strings"
)

// YearUnknown is the sentinel year assigned when no publication year can be
// extracted from a workbook source name.
const YearUnknown = 0

// SeparationRecord is one long-form observation: the separation count for a
// single (year, state, dimension-combination). Dimensions holds the free-text
// identifying columns (diagnosis category, age group, ...) keyed by their
// semantic column name.
type SeparationRecord struct {
	Year        int               `json:"year" db:"year"`
	State       string            `json:"state" db:"state" validate:"required,len=3|len=2"`
	Dimensions  map[string]string `json:"dimensions"`
	Separations float64           `json:"separations" db:"separations" validate:"min=0"`
}

// Dimension returns the value of the named dimension, or the empty string if
// the record does not carry it.
func (r SeparationRecord) Dimension(name string) string {
	if r.Dimensions == nil {
		return ""
	}
	return r.Dimensions[name]
}

// SeparationTable is a set of long-form records together with the ordered
// union of dimension column names they carry. It represents both the unified
// (pre-aggregation) table and the aggregated table; only the aggregated form
// guarantees key uniqueness.
type SeparationTable struct {
	DimensionColumns []string           `json:"dimension_columns"`
	Records          []SeparationRecord `json:"records"`
}

// MergeDimensionColumns extends the table's dimension column list with any
// names not already present, preserving first-seen order.
func (t *SeparationTable) MergeDimensionColumns(names []string) {
	seen := make(map[string]bool, len(t.DimensionColumns))
	for _, c := range t.DimensionColumns {
		seen[c] = true
	}
	for _, n := range names {
		if !seen[n] {
			t.DimensionColumns = append(t.DimensionColumns, n)
			seen[n] = true
		}
	}
}

// Key returns the grouping key of a record under this table's dimension
// columns. Missing dimension values contribute an empty component so the key
// is always fully defined.
func (t *SeparationTable) Key(r SeparationRecord) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(r.State))
	for _, c := range t.DimensionColumns {
		b.WriteByte('\x1f')
		b.WriteString(r.Dimension(c))
	}
	return b.String()
}

// Len reports the number of records in the table.
func (t *SeparationTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// SortedCopy returns the records ordered by (year, state, dimension values),
// used for deterministic export and tests.
func (t *SeparationTable) SortedCopy() []SeparationRecord {
	out := make([]SeparationRecord, len(t.Records))
	copy(out, t.Records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		for _, c := range t.DimensionColumns {
			vi, vj := out[i].Dimension(c), out[j].Dimension(c)
			if vi != vj {
				return vi < vj
			}
		}
		return false
	})
	return out
}

// WorkbookSource is one downloaded workbook: the identifying name the
// discovery collaborator resolved (usually the file name from the URL) plus
// the raw spreadsheet bytes.
type WorkbookSource struct {
	Name    string `json:"name"`
	Content []byte `json:"-"`
}

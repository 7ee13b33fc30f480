package dataprocessing

import (
	"fmt"
	"strings"
)

// ClassifiedColumn ties a column position in the sheet to its semantic name:
// the registry code for state columns, the derived identifier for dimension
// columns.
type ClassifiedColumn struct {
	Index int
	Label string
	Name  string
}

// Classification is the result of partitioning a header row into identifying
// (dimension) columns and per-state measurement columns, in sheet order.
type Classification struct {
	Dimensions []ClassifiedColumn
	States     []ClassifiedColumn
}

// DimensionNames returns the semantic dimension column names in sheet order.
func (c *Classification) DimensionNames() []string {
	names := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		names[i] = d.Name
	}
	return names
}

// anonymousColumnNames is the ordered rule list for naming unlabeled
// dimension columns: the publisher places the diagnosis-category column
// first and the principal-diagnosis column second, both usually without a
// header of their own. Any further anonymous column, or a name collision,
// falls back to a positional name.
var anonymousColumnNames = []string{"category", "principal_diagnosis"}

func anonymousName(ordinal, index int, taken map[string]bool) string {
	if ordinal < len(anonymousColumnNames) && !taken[anonymousColumnNames[ordinal]] {
		return anonymousColumnNames[ordinal]
	}
	return fmt.Sprintf("dimension_%d", index)
}

// deriveName turns a raw header label into a snake_case identifier.
func deriveName(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(label))), "_")
}

// isAnonymous reports whether a derived name indicates that no real label was
// present: an empty header cell, or a pandas-style "Unnamed: N" placeholder
// carried over from an earlier export of the workbook.
func isAnonymous(name string) bool {
	return name == "" || strings.HasPrefix(name, "unnamed")
}

// ClassifyColumns partitions a header row into dimension and state columns.
//
// A column whose label normalizes to a registry code is a state column keyed
// by that code; every other column is a dimension column named after its
// label. Duplicate labels keep their first occurrence. A literal "total"
// column is dropped entirely: it is a derived helper, not a measurement or a
// dimension. If fewer than two state columns or no dimension columns remain,
// the sheet is unusable and an *UnusableSheetError is returned.
func ClassifyColumns(header []string) (*Classification, error) {
	cls := &Classification{}
	taken := make(map[string]bool)
	seenStates := make(map[string]bool)

	anonOrdinal := 0
	for i, label := range header {
		if code, ok := NormalizeStateCode(label); ok {
			if seenStates[code] {
				continue
			}
			seenStates[code] = true
			cls.States = append(cls.States, ClassifiedColumn{Index: i, Label: label, Name: code})
			continue
		}

		name := deriveName(label)
		if name == "total" {
			continue
		}
		if isAnonymous(name) {
			name = anonymousName(anonOrdinal, i, taken)
			anonOrdinal++
		}
		if taken[name] {
			continue
		}
		taken[name] = true
		cls.Dimensions = append(cls.Dimensions, ClassifiedColumn{Index: i, Label: label, Name: name})
	}

	if len(cls.States) < headerMinStateCells {
		return nil, &UnusableSheetError{Reason: ReasonTooFewStateColumns}
	}
	if len(cls.Dimensions) == 0 {
		return nil, &UnusableSheetError{Reason: ReasonNoDimensionColumns}
	}
	return cls, nil
}

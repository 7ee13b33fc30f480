package dataprocessing

import (
	"aihwetl/pkg/contracts/domain"
)

// Reduce collapses a unified long-form table to one record per unique
// (year, state, dimension-combination), summing the separation counts.
// Missing dimension values become an explicit empty-string category so the
// grouping key never contains a true null, which would fragment the groups.
// Reduce is idempotent: reducing an already-reduced table yields an equal
// table.
func Reduce(table *domain.SeparationTable) *domain.SeparationTable {
	out := &domain.SeparationTable{
		DimensionColumns: append([]string(nil), table.DimensionColumns...),
	}

	index := make(map[int]map[string]int) // year -> key -> position in out.Records
	for _, rec := range table.Records {
		dims := make(map[string]string, len(out.DimensionColumns))
		for _, c := range out.DimensionColumns {
			dims[c] = rec.Dimension(c)
		}
		normalized := domain.SeparationRecord{
			Year:        rec.Year,
			State:       rec.State,
			Dimensions:  dims,
			Separations: rec.Separations,
		}

		key := out.Key(normalized)
		byKey, ok := index[rec.Year]
		if !ok {
			byKey = make(map[string]int)
			index[rec.Year] = byKey
		}
		if pos, ok := byKey[key]; ok {
			out.Records[pos].Separations += rec.Separations
			continue
		}
		byKey[key] = len(out.Records)
		out.Records = append(out.Records, normalized)
	}

	out.Records = out.SortedCopy()
	return out
}

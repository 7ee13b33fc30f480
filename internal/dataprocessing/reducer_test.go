package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aihwetl/pkg/contracts/domain"
)

func rec(year int, state string, dims map[string]string, count float64) domain.SeparationRecord {
	return domain.SeparationRecord{Year: year, State: state, Dimensions: dims, Separations: count}
}

func TestReduce(t *testing.T) {
	table := &domain.SeparationTable{
		DimensionColumns: []string{"category"},
		Records: []domain.SeparationRecord{
			rec(2023, "NSW", map[string]string{"category": "Injury"}, 10),
			rec(2023, "NSW", map[string]string{"category": "Injury"}, 5),
			rec(2023, "QLD", map[string]string{"category": "Injury"}, 7),
			rec(2022, "NSW", map[string]string{"category": "Injury"}, 3),
		},
	}

	got := Reduce(table)
	require.Equal(t, 3, got.Len())

	byKey := map[[2]interface{}]float64{}
	for _, r := range got.Records {
		byKey[[2]interface{}{r.Year, r.State}] = r.Separations
	}
	assert.Equal(t, float64(15), byKey[[2]interface{}{2023, "NSW"}])
	assert.Equal(t, float64(7), byKey[[2]interface{}{2023, "QLD"}])
	assert.Equal(t, float64(3), byKey[[2]interface{}{2022, "NSW"}])
}

// Missing dimension values become the empty-string category, so records from
// sheets with different dimension sets still group on a fully defined key.
func TestReduceFillsMissingDimensions(t *testing.T) {
	table := &domain.SeparationTable{
		DimensionColumns: []string{"category", "age_group"},
		Records: []domain.SeparationRecord{
			rec(2023, "NSW", map[string]string{"category": "Injury", "age_group": "0-4"}, 1),
			rec(2023, "NSW", map[string]string{"category": "Injury"}, 2),
			rec(2023, "NSW", map[string]string{"category": "Injury"}, 4),
		},
	}

	got := Reduce(table)
	require.Equal(t, 2, got.Len())

	for _, r := range got.Records {
		_, present := r.Dimensions["age_group"]
		assert.True(t, present, "missing dimension must be materialized, not left absent")
	}

	var empty float64
	for _, r := range got.Records {
		if r.Dimensions["age_group"] == "" {
			empty = r.Separations
		}
	}
	assert.Equal(t, float64(6), empty)
}

// Reduce is idempotent and its output carries no duplicate keys.
func TestReduceIdempotent(t *testing.T) {
	table := &domain.SeparationTable{
		DimensionColumns: []string{"category", "age_group"},
		Records: []domain.SeparationRecord{
			rec(2023, "NSW", map[string]string{"category": "Injury", "age_group": "0-4"}, 1),
			rec(2023, "NSW", map[string]string{"category": "Injury", "age_group": "5-9"}, 2),
			rec(2023, "VIC", map[string]string{"category": "Injury", "age_group": "0-4"}, 3),
			rec(2023, "NSW", map[string]string{"category": "Mental", "age_group": "0-4"}, 4),
			rec(2023, "NSW", map[string]string{"category": "Injury", "age_group": "0-4"}, 8),
			rec(2022, "NSW", map[string]string{"category": "Injury"}, 16),
		},
	}

	once := Reduce(table)
	twice := Reduce(once)
	assert.Equal(t, once, twice)

	seen := map[string]bool{}
	for _, r := range once.Records {
		key := once.Key(r)
		full := fmt.Sprintf("%d|%s", r.Year, key)
		assert.False(t, seen[full], "duplicate key %q year %d", key, r.Year)
		seen[full] = true
	}
}

func TestReduceEmptyTable(t *testing.T) {
	got := Reduce(&domain.SeparationTable{DimensionColumns: []string{"category"}})
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, []string{"category"}, got.DimensionColumns)
}

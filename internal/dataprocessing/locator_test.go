package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateHeaderRow(t *testing.T) {
	tests := []struct {
		name    string
		grid    [][]string
		wantIdx int
		wantOK  bool
	}{
		{
			name: "header after title block",
			grid: [][]string{
				{"Admitted patient care 2022-23"},
				{""},
				{"Category", "NSW", "QLD", "Total"},
				{"Infectious", "10", "20", "30"},
			},
			wantIdx: 2,
			wantOK:  true,
		},
		{
			name: "header at row zero",
			grid: [][]string{
				{"Diagnosis", "NSW", "VIC"},
				{"A00", "1", "2"},
			},
			wantIdx: 0,
			wantOK:  true,
		},
		{
			name: "first qualifying row wins",
			grid: [][]string{
				{"", "NSW", "VIC", "QLD"},
				{"Category", "NSW", "VIC", "QLD"},
			},
			wantIdx: 0,
			wantOK:  true,
		},
		{
			name: "single state cell does not qualify",
			grid: [][]string{
				{"Notes", "NSW"},
				{"Category", "NSW", "VIC"},
			},
			wantIdx: 1,
			wantOK:  true,
		},
		{
			name:   "no header anywhere",
			grid:   [][]string{{"a", "b"}, {"c", "d"}},
			wantOK: false,
		},
		{
			name:   "empty grid",
			grid:   nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := LocateHeaderRow(tt.grid)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

// State codes appearing only past the scan window must not be found.
func TestLocateHeaderRowScanWindow(t *testing.T) {
	grid := make([][]string, 0, headerScanLimit+2)
	for i := 0; i < headerScanLimit+1; i++ {
		grid = append(grid, []string{"filler"})
	}
	// A perfectly good header row, just past the scan window.
	grid = append(grid, []string{"Category", "NSW", "VIC"})

	_, ok := LocateHeaderRow(grid)
	assert.False(t, ok)
}

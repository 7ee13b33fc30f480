package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyColumns(t *testing.T) {
	tests := []struct {
		name       string
		header     []string
		wantDims   []string
		wantStates []string
		wantReason UnusableReason
	}{
		{
			name:       "labeled dimensions and states",
			header:     []string{"Principal diagnosis", "Age group", "NSW", "VIC", "QLD"},
			wantDims:   []string{"principal_diagnosis", "age_group"},
			wantStates: []string{"NSW", "VIC", "QLD"},
		},
		{
			name:       "total column dropped",
			header:     []string{"Category", "NSW", "QLD", "Total"},
			wantDims:   []string{"category"},
			wantStates: []string{"NSW", "QLD"},
		},
		{
			name:       "total dropped case insensitively",
			header:     []string{"Category", "NSW", "QLD", "TOTAL"},
			wantDims:   []string{"category"},
			wantStates: []string{"NSW", "QLD"},
		},
		{
			name:       "first anonymous column becomes category",
			header:     []string{"", "NSW", "VIC"},
			wantDims:   []string{"category"},
			wantStates: []string{"NSW", "VIC"},
		},
		{
			name:       "second anonymous column becomes principal diagnosis",
			header:     []string{"", "", "NSW", "VIC"},
			wantDims:   []string{"category", "principal_diagnosis"},
			wantStates: []string{"NSW", "VIC"},
		},
		{
			name:       "third anonymous column falls back to positional name",
			header:     []string{"", "", "", "NSW", "VIC"},
			wantDims:   []string{"category", "principal_diagnosis", "dimension_2"},
			wantStates: []string{"NSW", "VIC"},
		},
		{
			name:       "principal diagnosis already taken",
			header:     []string{"Principal diagnosis", "", "", "NSW", "VIC"},
			wantDims:   []string{"principal_diagnosis", "category", "dimension_2"},
			wantStates: []string{"NSW", "VIC"},
		},
		{
			name:       "pandas unnamed placeholder is anonymous",
			header:     []string{"Unnamed: 0", "NSW", "VIC"},
			wantDims:   []string{"category"},
			wantStates: []string{"NSW", "VIC"},
		},
		{
			name:       "duplicate dimension labels keep first",
			header:     []string{"Age group", "Age Group", "NSW", "VIC"},
			wantDims:   []string{"age_group"},
			wantStates: []string{"NSW", "VIC"},
		},
		{
			name:       "duplicate state columns keep first",
			header:     []string{"Category", "NSW", "NSW", "VIC"},
			wantDims:   []string{"category"},
			wantStates: []string{"NSW", "VIC"},
		},
		{
			name:       "too few state columns",
			header:     []string{"Category", "NSW", "Notes"},
			wantReason: ReasonTooFewStateColumns,
		},
		{
			name:       "no dimension columns",
			header:     []string{"NSW", "VIC", "QLD"},
			wantReason: ReasonNoDimensionColumns,
		},
		{
			name:       "only total besides states",
			header:     []string{"Total", "NSW", "VIC"},
			wantReason: ReasonNoDimensionColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := ClassifyColumns(tt.header)
			if tt.wantReason != "" {
				require.Error(t, err)
				var u *UnusableSheetError
				require.ErrorAs(t, err, &u)
				assert.Equal(t, tt.wantReason, u.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDims, cls.DimensionNames())
			codes := make([]string, len(cls.States))
			for i, s := range cls.States {
				codes[i] = s.Name
			}
			assert.Equal(t, tt.wantStates, codes)
		})
	}
}

// A column whose normalized label is a registry code must always classify as
// a state column, never as a dimension, whatever its neighbors look like.
func TestClassifyStateCodeAlwaysStateColumn(t *testing.T) {
	for _, code := range StateCodes() {
		header := []string{"Category", code, " nsw ", "vic"}
		cls, err := ClassifyColumns(header)
		require.NoError(t, err, "code %s", code)
		for _, d := range cls.Dimensions {
			norm, ok := NormalizeStateCode(d.Label)
			assert.False(t, ok, "dimension column %q normalizes to state code %s", d.Label, norm)
		}
	}
}

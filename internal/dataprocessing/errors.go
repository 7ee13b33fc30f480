package dataprocessing

import (
	"errors"
	"fmt"
)

// UnusableReason identifies why a sheet could not be reshaped. Sheets that
// fail structurally are skipped, not fatal; the reason is surfaced for
// diagnostics only.
type UnusableReason string

const (
	// ReasonNoHeaderRow means no row in the scan window contained enough
	// state-code cells to qualify as a header row.
	ReasonNoHeaderRow UnusableReason = "no_header_row"
	// ReasonTooFewStateColumns means classification found fewer than two
	// state columns.
	ReasonTooFewStateColumns UnusableReason = "too_few_state_columns"
	// ReasonNoDimensionColumns means classification found no identifying
	// columns at all.
	ReasonNoDimensionColumns UnusableReason = "no_dimension_columns"
	// ReasonEmptySheet means the sheet had no rows to scan.
	ReasonEmptySheet UnusableReason = "empty_sheet"
)

// UnusableSheetError reports a sheet whose structure does not match the
// wide-table-with-header-row pattern. Callers skip the sheet and continue.
type UnusableSheetError struct {
	Sheet  string
	Reason UnusableReason
}

func (e *UnusableSheetError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("unusable sheet: %s", e.Reason)
	}
	return fmt.Sprintf("unusable sheet %q: %s", e.Sheet, e.Reason)
}

// IsUnusableSheet reports whether err (or anything it wraps) marks a sheet as
// structurally unusable.
func IsUnusableSheet(err error) bool {
	var u *UnusableSheetError
	return errors.As(err, &u)
}

// ErrEmptyCompilation is returned when no sheet across any workbook source
// produced records. The publication always contains eligible sheets, so an
// empty compilation indicates a structural regression in the source format
// rather than a legitimately empty dataset.
var ErrEmptyCompilation = errors.New("compilation produced no records: no usable sheets found in any workbook source")

// Package dataprocessing converts irregular AIHW hospital-separations
// workbooks into a normalized long-form table.
//
// # Architecture
//
// The package is organized around one pipeline, leaves first:
//
//  1. NormalizeStateCode: maps arbitrary cell text to a region code
//  2. CleanText: strips tuple and quoting artifacts from dimension values
//  3. LocateHeaderRow: finds the header row by state-code density
//  4. ClassifyColumns: partitions columns into dimension and state columns
//  5. ReshapeSheet: melts one wide sheet into long-form records
//  6. Compiler: iterates workbook sources and concatenates sheet results
//  7. Reduce: collapses the unified table onto its (year, state, dimensions)
//     primary key
//
// # Usage
//
//	compiler := dataprocessing.NewCompiler(logger)
//	unified, err := compiler.Compile(sources)
//	if err != nil {
//	    return err
//	}
//	clean := dataprocessing.Reduce(unified)
//
// # Error Handling
//
// Structural problems with a single sheet (no header row, too few state
// columns) are *UnusableSheetError values: the compiler skips the sheet and
// continues. Individual cells that fail numeric coercion drop that one
// observation. Only an entirely empty compilation (ErrEmptyCompilation) or a
// workbook that cannot be opened aborts the run.
//
// The engine is single-threaded: one workbook is fully reshaped before the
// next is started, and the accumulating table is not exposed until
// compilation completes.
package dataprocessing

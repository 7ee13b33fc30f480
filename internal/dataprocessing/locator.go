package dataprocessing

// headerScanLimit bounds how deep into a sheet the locator looks for the
// header row. Title blocks vary across publication years but never push the
// header past the first 40 rows.
const headerScanLimit = 40

// headerMinStateCells is the state-code density a row must reach to qualify
// as the header row.
const headerMinStateCells = 2

// LocateHeaderRow scans the top of a raw sheet grid and returns the index of
// the first row in which at least two cells normalize to recognized state
// codes. Header rows list the region columns contiguously, so state-code
// density is a more reliable signal than row position. First match wins:
// title and merged-header rows precede the true header, never follow it.
func LocateHeaderRow(grid [][]string) (int, bool) {
	limit := len(grid)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		count := 0
		for _, cell := range grid[i] {
			if _, ok := NormalizeStateCode(cell); ok {
				count++
				if count >= headerMinStateCells {
					break
				}
			}
		}
		if count >= headerMinStateCells {
			return i, true
		}
	}
	return 0, false
}

package dataprocessing

import "strings"

// Australian state and territory codes as they appear in AIHW column headers,
// plus the nationwide aggregate. This is a closed set: anything that does not
// normalize to one of these is not a state column.
var stateCodes = map[string]bool{
	"NSW": true,
	"VIC": true,
	"QLD": true,
	"SA":  true,
	"WA":  true,
	"TAS": true,
	"NT":  true,
	"ACT": true,
	"AUS": true,
}

// StateCodes returns the recognized region codes in a fixed order.
func StateCodes() []string {
	return []string{"NSW", "VIC", "QLD", "SA", "WA", "TAS", "NT", "ACT", "AUS"}
}

// NormalizeStateCode uppercases the cell, strips every character that is not
// an uppercase Latin letter, and checks the result against the registry.
// Headers like " NSW " or "Qld\n" normalize to their code; anything else
// returns ok=false.
func NormalizeStateCode(cell string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.ToUpper(cell) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	code := b.String()
	if stateCodes[code] {
		return code, true
	}
	return "", false
}

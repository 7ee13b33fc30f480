package dataprocessing

import (
	"regexp"
	"strings"
)

// Some sheets carry cells that were serialized from ("label", count) tuples
// and read back as text, e.g. `("Infectious diseases", 1234)`. CleanText
// peels those artifacts off layer by layer.
var (
	tupleOpenRe     = regexp.MustCompile(`^\(\s*"?\s*`)
	tupleCloseRe    = regexp.MustCompile(`\s*"?\s*\)$`)
	trailingCountRe = regexp.MustCompile(`,\s*[0-9]+(\.[0-9]+)?\s*$`)
)

// CleanText normalizes a free-text dimension cell: strips a leading tuple
// opener, a trailing tuple closer, a trailing ", <number>" artifact, then
// trims whitespace and enclosing quotes. The strip sequence repeats until the
// value stops changing, so CleanText(CleanText(x)) == CleanText(x).
func CleanText(value string) string {
	s := strings.TrimSpace(value)
	for {
		next := stripArtifacts(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripArtifacts(s string) string {
	s = tupleOpenRe.ReplaceAllString(s, "")
	s = tupleCloseRe.ReplaceAllString(s, "")
	s = trailingCountRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// CleanColumn applies CleanText to every value in a column.
func CleanColumn(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = CleanText(v)
	}
	return out
}

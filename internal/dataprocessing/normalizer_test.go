package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain text untouched", value: "Infectious diseases", want: "Infectious diseases"},
		{name: "whitespace trimmed", value: "  Injury \t", want: "Injury"},
		{name: "full tuple artifact", value: `("Certain infectious diseases", 1234)`, want: "Certain infectious diseases"},
		{name: "tuple without quotes", value: "(Injury, 56)", want: "Injury"},
		{name: "bare parentheses", value: "(Neoplasms)", want: "Neoplasms"},
		{name: "trailing count only", value: "Mental disorders, 789", want: "Mental disorders"},
		{name: "trailing decimal count", value: "Respiratory, 12.5", want: "Respiratory"},
		{name: "enclosing quotes", value: `"A00-B99"`, want: "A00-B99"},
		{name: "quoted tuple inside quotes", value: `"(Digestive, 42)"`, want: "Digestive"},
		{name: "internal comma preserved", value: "Pregnancy, childbirth", want: "Pregnancy, childbirth"},
		{name: "empty cell", value: "", want: ""},
		{name: "whitespace only", value: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.value))
		})
	}
}

// CleanText must be idempotent: a second application never changes the value.
func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"Infectious diseases",
		`("Certain infectious diseases", 1234)`,
		`"(Digestive, 42)"`,
		"(Injury, 56)",
		"Symptoms, 10, 20",
		`""nested""`,
		"((double))",
		"  ",
		"Total, 1,234",
	}
	for _, in := range inputs {
		once := CleanText(in)
		assert.Equal(t, once, CleanText(once), "input %q", in)
	}
}

func TestCleanColumn(t *testing.T) {
	got := CleanColumn([]string{"(A, 1)", " B ", `"C"`})
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

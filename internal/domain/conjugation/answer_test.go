package conjugation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		answer   string
		expected string
		want     bool
	}{
		{"exact", "hablo", "hablo", true},
		{"case-insensitive", "HABLO", "hablo", true},
		{"surrounding whitespace", "  hablo\n", "hablo", true},
		{"accented capitals", "PIDÓ", "pidó", true},
		{"decomposed accent", "nin\u0303o", "niño", true},
		{"override case preserved but compared folded", "soy", "Soy", true},
		{"wrong form", "hablas", "hablo", false},
		{"missing accent is wrong", "tu", "tú", false},
		{"inner whitespace matters", "hab lo", "hablo", false},
		{"empty answer", "", "hablo", false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Matches(tc.answer, tc.expected))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "él", Normalize("  ÉL "))
	assert.Equal(t, Normalize("e\u0301l"), Normalize("él"))
}

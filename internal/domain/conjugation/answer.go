package conjugation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares an answer for comparison: surrounding whitespace is
// trimmed, the text is case-folded and brought to NFC so that "Tú", "tú" and
// a decomposed "tú" all compare equal.
func Normalize(s string) string {
	// A Caser is stateful and cannot be shared across goroutines.
	folded := cases.Fold().String(strings.TrimSpace(s))
	return norm.NFC.String(folded)
}

// Matches reports whether a typed or spoken answer equals the expected form
// under the comparison policy of Normalize.
func Matches(answer, expected string) bool {
	return Normalize(answer) == Normalize(expected)
}

package practice

import (
	"fmt"
	"strings"

	"github.com/phrazzld/verbos-api/internal/domain"
)

// TableFeedback explains a wrong table cell. The message depends on the
// verb's category: irregular verbs point at the stored form, stem-changing
// verbs remind of the stem change outside nosotros, and everything else is
// checked for a wrong ending.
func TableFeedback(verb *domain.Verb, person domain.Person, given, expected string) string {
	switch {
	case verb.Category == domain.CategoryIrregular:
		return fmt.Sprintf("For %q, the correct irregular form is %q.", person, expected)
	case verb.Category == domain.CategoryStemChanging && person.Canonical() != domain.PersonNosotros:
		from, to := "", ""
		if verb.StemChange != nil {
			from, to = verb.StemChange.From, verb.StemChange.To
		}
		return fmt.Sprintf("For %q, remember to change the stem from %q to %q.", person, from, to)
	}

	_, suffix := domain.SplitInfinitive(verb.Infinitive)
	wantEnding := lastRunes(strings.ToLower(expected), 2)
	if lastRunes(strings.ToLower(strings.TrimSpace(given)), 2) != wantEnding {
		return fmt.Sprintf("For %q, you used the wrong ending. The correct ending for -%s verbs is \"-%s\".",
			person, suffix, wantEnding)
	}
	return fmt.Sprintf("For %q, the correct conjugation is %q.", person, expected)
}

// AnswerFeedback explains a wrong single-form answer, pointing out the
// common mix-ups with the nosotros and ustedes endings.
func AnswerFeedback(verb *domain.Verb, person domain.Person, given, expected string) string {
	_, suffix := domain.SplitInfinitive(verb.Infinitive)
	given = strings.ToLower(strings.TrimSpace(given))
	givenEnding := lastRunes(given, 2)
	wantEnding := lastRunes(strings.ToLower(expected), 2)
	isNosotros := person.Canonical() == domain.PersonNosotros

	switch {
	case strings.HasSuffix(given, "mos") && !isNosotros:
		return fmt.Sprintf("You used an ending for \"nosotros\". The correct ending for %q in -%s verbs is \"-%s\".",
			person, suffix, wantEnding)
	case givenEnding == "en" && wantEnding == "es":
		return fmt.Sprintf("You used an ending for \"ustedes\". The correct ending for %q in -%s verbs is \"-es\".",
			person, suffix)
	case givenEnding != wantEnding:
		return fmt.Sprintf("You used the wrong ending. The correct ending for -%s verbs is \"-%s\".", suffix, wantEnding)
	}
	return fmt.Sprintf("The correct conjugation for %q of %q is %q.", person, verb.Infinitive, expected)
}

func lastRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

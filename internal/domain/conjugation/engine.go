package conjugation

import (
	"strings"

	"github.com/phrazzld/verbos-api/internal/domain"
)

// regularEndings maps an infinitive suffix to the present-indicative ending
// of each conjugation slot.
var regularEndings = map[string]map[domain.Person]string{
	"ar": {
		domain.PersonYo:       "o",
		domain.PersonTu:       "as",
		domain.PersonEl:       "a",
		domain.PersonNosotros: "amos",
		domain.PersonEllos:    "an",
	},
	"er": {
		domain.PersonYo:       "o",
		domain.PersonTu:       "es",
		domain.PersonEl:       "e",
		domain.PersonNosotros: "emos",
		domain.PersonEllos:    "en",
	},
	"ir": {
		domain.PersonYo:       "o",
		domain.PersonTu:       "es",
		domain.PersonEl:       "e",
		domain.PersonNosotros: "imos",
		domain.PersonEllos:    "en",
	},
}

// Form is one cell of a conjugation table.
type Form struct {
	Person domain.Person `json:"person"`
	Form   string        `json:"form"`
}

// Conjugate returns the present-indicative form of verb for person.
//
// An irregular verb returns its stored override when one exists for the
// person; otherwise every verb is derived as stem plus regular ending, with
// the stem change applied for stem-changing verbs outside nosotros.
// Ustedes is conjugated like ellos. Unknown suffixes or persons contribute
// an empty ending.
func Conjugate(verb *domain.Verb, person domain.Person) string {
	if verb == nil {
		return ""
	}

	person = person.Canonical()

	if verb.Category == domain.CategoryIrregular {
		if form := verb.IrregularOverrides[person]; form != "" {
			return form
		}
	}

	stem, suffix := domain.SplitInfinitive(verb.Infinitive)

	if verb.Category == domain.CategoryStemChanging && changesStem(person) {
		stem = applyStemChange(stem, verb.StemChange)
	}

	return stem + RegularEnding(suffix, person)
}

// Table conjugates verb for all six table slots, in table order.
func Table(verb *domain.Verb) []Form {
	slots := domain.TableSlots()
	forms := make([]Form, 0, len(slots))
	for _, person := range slots {
		forms = append(forms, Form{Person: person, Form: Conjugate(verb, person)})
	}
	return forms
}

// RegularEnding returns the regular ending for an infinitive suffix and a
// person, or "" when either is not recognized.
func RegularEnding(suffix string, person domain.Person) string {
	return regularEndings[suffix][person.Canonical()]
}

// changesStem reports whether a stem change applies to person. Nosotros
// always keeps the unmodified stem.
func changesStem(person domain.Person) bool {
	switch person {
	case domain.PersonYo, domain.PersonTu, domain.PersonEl, domain.PersonEllos:
		return true
	default:
		return false
	}
}

// applyStemChange replaces the first occurrence of change.From in stem.
// A nil change, an empty source or a source absent from the stem leaves the
// stem untouched.
func applyStemChange(stem string, change *domain.StemChange) string {
	if change == nil || change.From == "" {
		return stem
	}
	return strings.Replace(stem, change.From, change.To, 1)
}

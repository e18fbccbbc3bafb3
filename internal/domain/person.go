package domain

import (
	"fmt"
	"strings"
)

// Person is a grammatical subject slot a verb is conjugated for.
type Person string

// Person keys. Ustedes shares the ellos conjugation.
const (
	PersonYo       Person = "yo"
	PersonTu       Person = "tú"
	PersonEl       Person = "él"
	PersonNosotros Person = "nosotros"
	PersonEllos    Person = "ellos"
	PersonUstedes  Person = "ustedes"
)

// ErrInvalidPerson is returned when a person key is not recognized.
var ErrInvalidPerson = fmt.Errorf("%w: unknown person", ErrValidation)

// Persons returns the five conjugation slots in table order.
func Persons() []Person {
	return []Person{PersonYo, PersonTu, PersonEl, PersonNosotros, PersonEllos}
}

// TableSlots returns the six cells of a full conjugation table, which lists
// ustedes separately from ellos.
func TableSlots() []Person {
	return []Person{PersonYo, PersonTu, PersonEl, PersonNosotros, PersonEllos, PersonUstedes}
}

// Canonical maps a person onto the slot whose conjugation it uses.
func (p Person) Canonical() Person {
	if p == PersonUstedes {
		return PersonEllos
	}
	return p
}

// IsConjugationSlot reports whether p is one of the five conjugation slots.
func (p Person) IsConjugationSlot() bool {
	switch p {
	case PersonYo, PersonTu, PersonEl, PersonNosotros, PersonEllos:
		return true
	default:
		return false
	}
}

// IsValid reports whether p is a conjugation slot or ustedes.
func (p Person) IsValid() bool {
	return p == PersonUstedes || p.IsConjugationSlot()
}

// ParsePerson parses a person key. Matching is case-insensitive and accepts
// the unaccented spellings "tu" and "el".
func ParsePerson(s string) (Person, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yo":
		return PersonYo, nil
	case "tú", "tu":
		return PersonTu, nil
	case "él", "el":
		return PersonEl, nil
	case "nosotros":
		return PersonNosotros, nil
	case "ellos":
		return PersonEllos, nil
	case "ustedes":
		return PersonUstedes, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPerson, s)
	}
}

// PracticeMode is an independent activity type. Completing every mode once
// is required for full mastery.
type PracticeMode string

// Practice modes
const (
	PracticeModeQuiz   PracticeMode = "quiz"
	PracticeModeTable  PracticeMode = "table"
	PracticeModeSpeech PracticeMode = "speech"
)

// IsValid reports whether m is a known practice mode.
func (m PracticeMode) IsValid() bool {
	switch m {
	case PracticeModeQuiz, PracticeModeTable, PracticeModeSpeech:
		return true
	default:
		return false
	}
}

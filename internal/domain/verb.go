package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Category is the conjugation class of a verb.
type Category string

// Supported verb categories
const (
	CategoryRegular      Category = "regular"
	CategoryIrregular    Category = "irregular"
	CategoryStemChanging Category = "stem-changing"
)

// IsValid reports whether c is one of the supported categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryRegular, CategoryIrregular, CategoryStemChanging:
		return true
	default:
		return false
	}
}

// MinInfinitiveLength is the shortest accepted infinitive, in characters.
const MinInfinitiveLength = 3

// MaxMastery is the mastery score of a fully mastered verb.
const MaxMastery = 100

// Verb validation errors
var (
	ErrEmptyInfinitive       = fmt.Errorf("%w: infinitive cannot be empty", ErrValidation)
	ErrInfinitiveTooShort    = fmt.Errorf("%w: infinitive must be at least %d characters", ErrValidation, MinInfinitiveLength)
	ErrInvalidSuffix         = fmt.Errorf("%w: infinitive must end in -ar, -er or -ir", ErrValidation)
	ErrInvalidCategory       = fmt.Errorf("%w: invalid verb category", ErrValidation)
	ErrInvalidMastery        = fmt.Errorf("%w: mastery must be between 0 and 100", ErrValidation)
	ErrInvalidOverridePerson = fmt.Errorf("%w: irregular override for unknown person", ErrValidation)
	ErrUnexpectedOverrides   = fmt.Errorf("%w: irregular overrides are only allowed on irregular verbs", ErrValidation)
	ErrMissingStemChange     = fmt.Errorf("%w: stem-changing verb requires a stem change", ErrValidation)
	ErrEmptyStemChangeTarget = fmt.Errorf("%w: stem change target cannot be empty", ErrValidation)
	ErrUnexpectedStemChange  = fmt.Errorf("%w: stem change is only allowed on stem-changing verbs", ErrValidation)
)

// StemChange describes a substring substitution applied to a verb's stem
// in every person except nosotros.
type StemChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CompletedModes records which practice modes have been completed with a
// fully correct answer at least once. Flags only ever go from false to true.
type CompletedModes struct {
	Quiz   bool `json:"quiz"`
	Table  bool `json:"table"`
	Speech bool `json:"speech"`
}

// Has reports whether mode has been completed.
func (m CompletedModes) Has(mode PracticeMode) bool {
	switch mode {
	case PracticeModeQuiz:
		return m.Quiz
	case PracticeModeTable:
		return m.Table
	case PracticeModeSpeech:
		return m.Speech
	default:
		return false
	}
}

// With returns a copy of m with mode marked as completed.
func (m CompletedModes) With(mode PracticeMode) CompletedModes {
	switch mode {
	case PracticeModeQuiz:
		m.Quiz = true
	case PracticeModeTable:
		m.Table = true
	case PracticeModeSpeech:
		m.Speech = true
	}
	return m
}

// All reports whether every practice mode has been completed.
func (m CompletedModes) All() bool {
	return m.Quiz && m.Table && m.Speech
}

// Verb is a single entry in the user's verb collection. The infinitive
// identifies the verb within a collection.
//
// The JSON field names match the historical persisted format so exported
// collections stay readable by older clients.
type Verb struct {
	Infinitive         string            `json:"infinitive"`
	Meaning            string            `json:"meaning"`
	Category           Category          `json:"type"`
	IrregularOverrides map[Person]string `json:"irregularForms,omitempty"`
	StemChange         *StemChange       `json:"stemChange,omitempty"`
	Mastery            int               `json:"mastery"`
	CompletedModes     CompletedModes    `json:"masteredModes"`
}

// NewVerb creates a new Verb with zero mastery and no completed modes.
//
// The infinitive is trimmed and lower-cased. Overrides are kept only for
// irregular verbs and the stem change only for stem-changing verbs; blank
// override entries are dropped. When a stem-changing verb is given no
// StemChange.From, it is fixed to the verb's stem at creation time.
// Returns an error if validation fails.
func NewVerb(
	infinitive, meaning string,
	category Category,
	overrides map[Person]string,
	stemChange *StemChange,
) (*Verb, error) {
	verb := buildVerb(infinitive, meaning, category, overrides, stemChange)
	if err := verb.Validate(); err != nil {
		return nil, err
	}
	return verb, nil
}

// NewConjugableVerb builds a verb that is conjugated once and never stored.
// It normalises its input like NewVerb and applies the same checks, except
// that any infinitive with a recognised suffix is accepted, so "ir" works.
func NewConjugableVerb(
	infinitive string,
	category Category,
	overrides map[Person]string,
	stemChange *StemChange,
) (*Verb, error) {
	verb := buildVerb(infinitive, "", category, overrides, stemChange)
	if err := verb.validate(0); err != nil {
		return nil, err
	}
	return verb, nil
}

func buildVerb(
	infinitive, meaning string,
	category Category,
	overrides map[Person]string,
	stemChange *StemChange,
) *Verb {
	verb := &Verb{
		Infinitive: strings.ToLower(strings.TrimSpace(infinitive)),
		Meaning:    strings.TrimSpace(meaning),
		Category:   category,
	}

	switch category {
	case CategoryIrregular:
		for person, form := range overrides {
			form = strings.TrimSpace(form)
			if form == "" {
				continue
			}
			if verb.IrregularOverrides == nil {
				verb.IrregularOverrides = make(map[Person]string, len(overrides))
			}
			verb.IrregularOverrides[person] = form
		}
	case CategoryStemChanging:
		if stemChange != nil {
			sc := StemChange{
				From: strings.TrimSpace(stemChange.From),
				To:   strings.TrimSpace(stemChange.To),
			}
			if sc.From == "" {
				sc.From, _ = SplitInfinitive(verb.Infinitive)
			}
			verb.StemChange = &sc
		}
	}

	return verb
}

// Validate checks if the Verb has valid data.
// Returns an error if any field fails validation.
func (v *Verb) Validate() error {
	return v.validate(MinInfinitiveLength)
}

func (v *Verb) validate(minLength int) error {
	if v.Infinitive == "" {
		return ErrEmptyInfinitive
	}

	if utf8.RuneCountInString(v.Infinitive) < minLength {
		return ErrInfinitiveTooShort
	}

	if _, suffix := SplitInfinitive(v.Infinitive); !IsRecognizedSuffix(suffix) {
		return ErrInvalidSuffix
	}

	if !v.Category.IsValid() {
		return ErrInvalidCategory
	}

	if v.Mastery < 0 || v.Mastery > MaxMastery {
		return ErrInvalidMastery
	}

	if len(v.IrregularOverrides) > 0 {
		if v.Category != CategoryIrregular {
			return ErrUnexpectedOverrides
		}
		for person := range v.IrregularOverrides {
			if !person.IsConjugationSlot() {
				return ErrInvalidOverridePerson
			}
		}
	}

	switch {
	case v.Category == CategoryStemChanging && v.StemChange == nil:
		return ErrMissingStemChange
	case v.Category == CategoryStemChanging && v.StemChange.To == "":
		return ErrEmptyStemChangeTarget
	case v.Category != CategoryStemChanging && v.StemChange != nil:
		return ErrUnexpectedStemChange
	}

	return nil
}

// Clone returns a deep copy of the verb.
func (v *Verb) Clone() *Verb {
	clone := *v

	if v.IrregularOverrides != nil {
		clone.IrregularOverrides = make(map[Person]string, len(v.IrregularOverrides))
		for person, form := range v.IrregularOverrides {
			clone.IrregularOverrides[person] = form
		}
	}

	if v.StemChange != nil {
		sc := *v.StemChange
		clone.StemChange = &sc
	}

	return &clone
}

// IsMastered reports whether the verb has reached full mastery.
func (v *Verb) IsMastered() bool {
	return v.Mastery == MaxMastery
}

// SplitInfinitive splits an infinitive into its stem and its two-character
// suffix. Infinitives shorter than two characters yield an empty stem and
// the whole input as suffix.
func SplitInfinitive(infinitive string) (stem, suffix string) {
	runes := []rune(infinitive)
	if len(runes) < 2 {
		return "", infinitive
	}
	return string(runes[:len(runes)-2]), string(runes[len(runes)-2:])
}

// IsRecognizedSuffix reports whether suffix is one of ar, er or ir.
func IsRecognizedSuffix(suffix string) bool {
	switch suffix {
	case "ar", "er", "ir":
		return true
	default:
		return false
	}
}

package conjugation

import (
	"testing"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regular(infinitive string) *domain.Verb {
	return &domain.Verb{Infinitive: infinitive, Category: domain.CategoryRegular}
}

func TestConjugateRegular(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		infinitive string
		want       map[domain.Person]string
	}{
		{
			infinitive: "hablar",
			want: map[domain.Person]string{
				domain.PersonYo:       "hablo",
				domain.PersonTu:       "hablas",
				domain.PersonEl:       "habla",
				domain.PersonNosotros: "hablamos",
				domain.PersonEllos:    "hablan",
				domain.PersonUstedes:  "hablan",
			},
		},
		{
			infinitive: "comer",
			want: map[domain.Person]string{
				domain.PersonYo:       "como",
				domain.PersonTu:       "comes",
				domain.PersonEl:       "come",
				domain.PersonNosotros: "comemos",
				domain.PersonEllos:    "comen",
			},
		},
		{
			infinitive: "vivir",
			want: map[domain.Person]string{
				domain.PersonYo:       "vivo",
				domain.PersonTu:       "vives",
				domain.PersonEl:       "vive",
				domain.PersonNosotros: "vivimos",
				domain.PersonEllos:    "viven",
			},
		},
		{
			infinitive: "enseñar",
			want: map[domain.Person]string{
				domain.PersonYo:       "enseño",
				domain.PersonNosotros: "enseñamos",
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.infinitive, func(t *testing.T) {
			t.Parallel()
			verb := regular(tc.infinitive)
			for person, want := range tc.want {
				assert.Equal(t, want, Conjugate(verb, person), "person %s", person)
			}
		})
	}
}

// For every regular verb the form is stem plus the regular ending.
func TestConjugateRegularIsStemPlusEnding(t *testing.T) {
	t.Parallel()

	for _, infinitive := range []string{"cantar", "beber", "escribir", "leer", "abrir", "limpiar"} {
		verb := regular(infinitive)
		stem, suffix := domain.SplitInfinitive(infinitive)
		for _, person := range domain.Persons() {
			assert.Equal(t, stem+RegularEnding(suffix, person), Conjugate(verb, person),
				"%s / %s", infinitive, person)
		}
	}
}

func TestConjugateIrregular(t *testing.T) {
	t.Parallel()

	verb := &domain.Verb{
		Infinitive:         "ir",
		Category:           domain.CategoryIrregular,
		IrregularOverrides: map[domain.Person]string{domain.PersonYo: "voy"},
	}

	assert.Equal(t, "voy", Conjugate(verb, domain.PersonYo))
	// No override: falls back to the regular derivation against an empty stem.
	assert.Equal(t, "imos", Conjugate(verb, domain.PersonNosotros))
	assert.Equal(t, "en", Conjugate(verb, domain.PersonEllos))
}

func TestConjugateIrregularPreservesOverrideVerbatim(t *testing.T) {
	t.Parallel()

	verb := &domain.Verb{
		Infinitive: "ser",
		Category:   domain.CategoryIrregular,
		IrregularOverrides: map[domain.Person]string{
			domain.PersonYo:    "Soy",
			domain.PersonEllos: "son",
			domain.PersonTu:    "",
		},
	}

	assert.Equal(t, "Soy", Conjugate(verb, domain.PersonYo))
	assert.Equal(t, "son", Conjugate(verb, domain.PersonUstedes))
	// An empty override counts as missing.
	assert.Equal(t, "ses", Conjugate(verb, domain.PersonTu))
}

func TestConjugateOverridesIgnoredForOtherCategories(t *testing.T) {
	t.Parallel()

	verb := &domain.Verb{
		Infinitive:         "hablar",
		Category:           domain.CategoryRegular,
		IrregularOverrides: map[domain.Person]string{domain.PersonYo: "xx"},
	}
	assert.Equal(t, "hablo", Conjugate(verb, domain.PersonYo))
}

func TestConjugateStemChanging(t *testing.T) {
	t.Parallel()

	pedir := &domain.Verb{
		Infinitive: "pedir",
		Category:   domain.CategoryStemChanging,
		StemChange: &domain.StemChange{From: "e", To: "i"},
	}

	assert.Equal(t, "pido", Conjugate(pedir, domain.PersonYo))
	assert.Equal(t, "pides", Conjugate(pedir, domain.PersonTu))
	assert.Equal(t, "pide", Conjugate(pedir, domain.PersonEl))
	assert.Equal(t, "piden", Conjugate(pedir, domain.PersonEllos))
	assert.Equal(t, "piden", Conjugate(pedir, domain.PersonUstedes))
	assert.Equal(t, "pedimos", Conjugate(pedir, domain.PersonNosotros))

	pensar := &domain.Verb{
		Infinitive: "pensar",
		Category:   domain.CategoryStemChanging,
		StemChange: &domain.StemChange{From: "pens", To: "piens"},
	}
	assert.Equal(t, "pienso", Conjugate(pensar, domain.PersonYo))
	assert.Equal(t, "pensamos", Conjugate(pensar, domain.PersonNosotros))
}

func TestConjugateStemChangeReplacesFirstOccurrenceOnly(t *testing.T) {
	t.Parallel()

	verb := &domain.Verb{
		Infinitive: "repetir",
		Category:   domain.CategoryStemChanging,
		StemChange: &domain.StemChange{From: "e", To: "i"},
	}
	assert.Equal(t, "ripeto", Conjugate(verb, domain.PersonYo))
}

func TestConjugateStemChangeSourceMissing(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		change *domain.StemChange
	}{
		{"source not in stem", &domain.StemChange{From: "zz", To: "ie"}},
		{"empty source", &domain.StemChange{From: "", To: "ie"}},
		{"nil change", nil},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			verb := &domain.Verb{Infinitive: "cerrar", Category: domain.CategoryStemChanging, StemChange: tc.change}
			assert.Equal(t, "cerro", Conjugate(verb, domain.PersonYo))
		})
	}
}

// Nosotros never receives the stem change.
func TestConjugateNosotrosNeverChangesStem(t *testing.T) {
	t.Parallel()

	for _, infinitive := range []string{"dormir", "querer", "jugar", "servir"} {
		verb := &domain.Verb{
			Infinitive: infinitive,
			Category:   domain.CategoryStemChanging,
			StemChange: &domain.StemChange{From: "u", To: "ue"},
		}
		stem, suffix := domain.SplitInfinitive(infinitive)
		assert.Equal(t, stem+RegularEnding(suffix, domain.PersonNosotros), Conjugate(verb, domain.PersonNosotros))
	}
}

func TestConjugateMalformedInfinitive(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		infinitive string
		want       string
	}{
		{"unknown suffix", "hablor", "habl"},
		{"single character", "a", ""},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.NotPanics(t, func() {
				assert.Equal(t, tc.want, Conjugate(regular(tc.infinitive), domain.PersonYo))
			})
		})
	}

	assert.Equal(t, "", Conjugate(nil, domain.PersonYo))
	assert.Equal(t, "habl", Conjugate(regular("hablar"), domain.Person("vosotros")))
}

func TestConjugateIsPure(t *testing.T) {
	t.Parallel()

	verb := &domain.Verb{
		Infinitive:         "tener",
		Category:           domain.CategoryIrregular,
		IrregularOverrides: map[domain.Person]string{domain.PersonYo: "tengo"},
	}
	before := verb.Clone()

	first := Conjugate(verb, domain.PersonYo)
	second := Conjugate(verb, domain.PersonYo)

	assert.Equal(t, first, second)
	assert.Equal(t, before, verb)
}

func TestTable(t *testing.T) {
	t.Parallel()

	forms := Table(regular("hablar"))
	require.Len(t, forms, 6)
	assert.Equal(t, []Form{
		{Person: domain.PersonYo, Form: "hablo"},
		{Person: domain.PersonTu, Form: "hablas"},
		{Person: domain.PersonEl, Form: "habla"},
		{Person: domain.PersonNosotros, Form: "hablamos"},
		{Person: domain.PersonEllos, Form: "hablan"},
		{Person: domain.PersonUstedes, Form: "hablan"},
	}, forms)
}

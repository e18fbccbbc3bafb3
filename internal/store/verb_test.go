package store_test

import (
	"testing"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCollection(t *testing.T) {
	t.Parallel()

	hablar := &domain.Verb{Infinitive: "hablar", Category: domain.CategoryRegular}
	comer := &domain.Verb{Infinitive: "comer", Category: domain.CategoryRegular}

	assert.NoError(t, store.ValidateCollection(nil))
	assert.NoError(t, store.ValidateCollection([]*domain.Verb{hablar, comer}))

	err := store.ValidateCollection([]*domain.Verb{hablar, hablar.Clone()})
	assert.ErrorIs(t, err, store.ErrVerbExists)

	err = store.ValidateCollection([]*domain.Verb{hablar, nil})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	bad := &domain.Verb{Infinitive: "hablar", Category: domain.CategoryRegular, Mastery: 120}
	err = store.ValidateCollection([]*domain.Verb{bad})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrInvalidMastery)
}

func TestValidateVerb(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, store.ValidateVerb("create", nil), store.ErrInvalidEntity)
	assert.NoError(t, store.ValidateVerb("create", &domain.Verb{Infinitive: "vivir", Category: domain.CategoryRegular}))
	assert.ErrorIs(t,
		store.ValidateVerb("update", &domain.Verb{Infinitive: "vivir", Category: domain.Category("odd")}),
		domain.ErrInvalidCategory)
}

func TestCloneAll(t *testing.T) {
	t.Parallel()

	verbs := []*domain.Verb{{
		Infinitive:         "ser",
		Category:           domain.CategoryIrregular,
		IrregularOverrides: map[domain.Person]string{domain.PersonYo: "soy"},
	}}
	clones := store.CloneAll(verbs)
	require.Len(t, clones, 1)

	clones[0].IrregularOverrides[domain.PersonYo] = "changed"
	assert.Equal(t, "soy", verbs[0].IrregularOverrides[domain.PersonYo])
	assert.NotNil(t, store.CloneAll(nil))
}

func TestVerbRowRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []*domain.Verb{
		{Infinitive: "hablar", Meaning: "to speak", Category: domain.CategoryRegular, Mastery: 35,
			CompletedModes: domain.CompletedModes{Quiz: true}},
		{Infinitive: "tener", Category: domain.CategoryIrregular,
			IrregularOverrides: map[domain.Person]string{domain.PersonYo: "tengo", domain.PersonTu: "tienes"}},
		{Infinitive: "pedir", Category: domain.CategoryStemChanging,
			StemChange:     &domain.StemChange{From: "e", To: "i"},
			CompletedModes: domain.CompletedModes{Quiz: true, Table: true, Speech: true}, Mastery: 100},
	}

	for _, verb := range testCases {
		row, err := store.NewVerbRow(verb)
		require.NoError(t, err)
		assert.Len(t, row.Args(), len(row.ScanTargets()))

		back, err := row.Verb()
		require.NoError(t, err)
		assert.Equal(t, verb, back, verb.Infinitive)
	}
}

func TestVerbRowNulls(t *testing.T) {
	t.Parallel()

	row, err := store.NewVerbRow(&domain.Verb{Infinitive: "comer", Category: domain.CategoryRegular})
	require.NoError(t, err)
	assert.False(t, row.IrregularForms.Valid)
	assert.False(t, row.StemChangeFrom.Valid)
	assert.False(t, row.StemChangeTo.Valid)

	row.IrregularForms.Valid = true
	row.IrregularForms.String = "{not json"
	_, err = row.Verb()
	assert.Error(t, err)
}

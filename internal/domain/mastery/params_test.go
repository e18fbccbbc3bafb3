package mastery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	assert.Equal(t, 5, params.QuestionStep)
	assert.Equal(t, 20.0, params.TableStep)
	assert.Equal(t, 6, params.TableCells)
	assert.Equal(t, 99, params.PartialCap)
	assert.NoError(t, params.Validate())
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	t.Run("zero config keeps defaults", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, NewDefaultParams(), NewParams(ParamsConfig{}))
	})

	t.Run("overrides are applied", func(t *testing.T) {
		t.Parallel()
		params := NewParams(ParamsConfig{
			QuestionStep: 10,
			TableStep:    30,
			TableCells:   5,
			PartialCap:   90,
		})
		assert.Equal(t, &Params{QuestionStep: 10, TableStep: 30, TableCells: 5, PartialCap: 90}, params)
	})
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		params Params
	}{
		{"negative question step", Params{QuestionStep: -1, TableStep: 20, TableCells: 6, PartialCap: 99}},
		{"huge table step", Params{QuestionStep: 5, TableStep: 101, TableCells: 6, PartialCap: 99}},
		{"no table cells", Params{QuestionStep: 5, TableStep: 20, TableCells: 0, PartialCap: 99}},
		{"cap at full mastery", Params{QuestionStep: 5, TableStep: 20, TableCells: 6, PartialCap: 100}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tc.params.Validate(), ErrInvalidParams)
		})
	}
}

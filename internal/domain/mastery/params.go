package mastery

import (
	"errors"
	"fmt"

	"github.com/phrazzld/verbos-api/internal/domain"
)

// FullMastery is the score of a verb whose practice modes are all completed.
const FullMastery = domain.MaxMastery

// ErrInvalidParams is returned when tracker parameters are out of range.
var ErrInvalidParams = errors.New("invalid mastery parameters")

// Params defines all configurable parameters of the mastery tracker.
type Params struct {
	// QuestionStep is added for each correct quiz or speech answer.
	QuestionStep int

	// TableStep is the gain of a fully correct conjugation table. A partially
	// correct table earns correctCells / TableCells of it.
	TableStep float64

	// TableCells is the number of cells in a conjugation table.
	TableCells int

	// PartialCap is the highest score reachable before every mode is completed.
	PartialCap int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the defaults.
type ParamsConfig struct {
	QuestionStep int
	TableStep    float64
	TableCells   int
	PartialCap   int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		QuestionStep: 5,
		TableStep:    20,
		TableCells:   6,
		PartialCap:   FullMastery - 1,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.QuestionStep > 0 {
		params.QuestionStep = config.QuestionStep
	}
	if config.TableStep > 0 {
		params.TableStep = config.TableStep
	}
	if config.TableCells > 0 {
		params.TableCells = config.TableCells
	}
	if config.PartialCap > 0 {
		params.PartialCap = config.PartialCap
	}

	return params
}

// Validate checks that the parameters keep mastery inside [0, 100] and
// below full mastery until every mode is completed.
func (p *Params) Validate() error {
	switch {
	case p.QuestionStep < 0 || p.QuestionStep > FullMastery:
		return fmt.Errorf("%w: question step %d out of range", ErrInvalidParams, p.QuestionStep)
	case p.TableStep < 0 || p.TableStep > FullMastery:
		return fmt.Errorf("%w: table step %g out of range", ErrInvalidParams, p.TableStep)
	case p.TableCells <= 0:
		return fmt.Errorf("%w: table cells must be positive", ErrInvalidParams)
	case p.PartialCap < 0 || p.PartialCap >= FullMastery:
		return fmt.Errorf("%w: partial cap must be below %d", ErrInvalidParams, FullMastery)
	}
	return nil
}

package mastery

import (
	"errors"
	"fmt"

	"github.com/phrazzld/verbos-api/internal/domain"
)

// Common errors
var (
	ErrNilVerb          = errors.New("verb cannot be nil")
	ErrInvalidMode      = errors.New("invalid practice mode")
	ErrInvalidCellCount = errors.New("correct cell count out of range")
)

// Service defines the interface for mastery tracking operations.
// Every operation returns a new Verb and leaves its input untouched.
type Service interface {
	// RecordResult applies a single quiz, speech or table result. A correct
	// table result counts as a fully correct table.
	RecordResult(verb *domain.Verb, mode domain.PracticeMode, wasCorrect bool) (*domain.Verb, error)

	// RecordTableResult applies a conjugation table check in which
	// correctCells of the table's cells were answered correctly.
	RecordTableResult(verb *domain.Verb, correctCells int) (*domain.Verb, error)

	// TableCells returns the number of cells a table check is scored over.
	TableCells() int
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new mastery service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new mastery service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: params cannot be nil", ErrInvalidParams)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &defaultService{
		params: params,
	}, nil
}

// RecordResult implements the Service interface
func (s *defaultService) RecordResult(
	verb *domain.Verb,
	mode domain.PracticeMode,
	wasCorrect bool,
) (*domain.Verb, error) {
	if verb == nil {
		return nil, ErrNilVerb
	}

	if !mode.IsValid() {
		return nil, ErrInvalidMode
	}

	if !wasCorrect {
		return verb.Clone(), nil
	}

	if mode == domain.PracticeModeTable {
		return calculateNextVerb(verb, mode, s.params.TableStep, true, s.params), nil
	}

	return calculateNextVerb(verb, mode, float64(s.params.QuestionStep), true, s.params), nil
}

// RecordTableResult implements the Service interface
func (s *defaultService) RecordTableResult(verb *domain.Verb, correctCells int) (*domain.Verb, error) {
	if verb == nil {
		return nil, ErrNilVerb
	}

	if correctCells < 0 || correctCells > s.params.TableCells {
		return nil, ErrInvalidCellCount
	}

	if correctCells == 0 {
		return verb.Clone(), nil
	}

	completes := correctCells == s.params.TableCells
	gain := tableGain(correctCells, s.params)

	return calculateNextVerb(verb, domain.PracticeModeTable, gain, completes, s.params), nil
}

// TableCells implements the Service interface
func (s *defaultService) TableCells() int {
	return s.params.TableCells
}

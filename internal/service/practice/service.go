package practice

import (
	"context"
	"errors"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/domain/conjugation"
)

// Prompt is a single quiz question: conjugate Verb for Person.
type Prompt struct {
	Verb   *domain.Verb  `json:"verb"`
	Person domain.Person `json:"person"`
}

// AnswerResult is the outcome of a quiz or speech answer.
type AnswerResult struct {
	Correct  bool          `json:"correct"`
	Person   domain.Person `json:"person"`
	Expected string        `json:"expected"`
	Given    string        `json:"given"`
	// Feedback is empty for a correct answer.
	Feedback string `json:"feedback,omitempty"`
	// Verb is the record after the tracker ran; unchanged when the answer
	// was wrong.
	Verb *domain.Verb `json:"verb"`
}

// Cell is one checked cell of a conjugation table.
type Cell struct {
	Person   domain.Person `json:"person"`
	Expected string        `json:"expected"`
	Given    string        `json:"given"`
	Correct  bool          `json:"correct"`
}

// TableResult is the outcome of a conjugation table check.
type TableResult struct {
	Cells        []Cell       `json:"cells"`
	CorrectCount int          `json:"correct_count"`
	Feedback     []string     `json:"feedback"`
	Verb         *domain.Verb `json:"verb"`
}

// Service drives the practice surfaces. Every submission reads the verb,
// asks the conjugation engine for the expected form, compares, hands the
// result to the mastery tracker and persists the returned record.
type Service interface {
	// Conjugations returns the six-cell table of expected forms for a
	// stored verb.
	//
	// Returns:
	//   - (nil, service.ErrVerbNotFound): If the verb does not exist
	Conjugations(ctx context.Context, infinitive string) ([]conjugation.Form, error)

	// NextPrompt picks a random verb and a random conjugation slot.
	//
	// Returns:
	//   - (nil, ErrNoVerbs): If the collection is empty
	NextPrompt(ctx context.Context) (*Prompt, error)

	// SubmitAnswer checks a typed (quiz) or spoken (speech) answer for one
	// person. A wrong answer is not an error; it leaves the verb unchanged.
	//
	// Returns:
	//   - (nil, ErrInvalidMode): If mode is not quiz or speech
	//   - (nil, domain.ErrInvalidPerson): If person is unknown
	//   - (nil, service.ErrVerbNotFound): If the verb does not exist
	SubmitAnswer(
		ctx context.Context,
		infinitive string,
		mode domain.PracticeMode,
		person domain.Person,
		answer string,
	) (*AnswerResult, error)

	// SubmitTable checks a full conjugation table. Missing cells count as
	// wrong. Unknown person keys are rejected.
	//
	// Returns:
	//   - (nil, domain.ErrInvalidPerson): If an answer key is unknown
	//   - (nil, service.ErrVerbNotFound): If the verb does not exist
	SubmitTable(ctx context.Context, infinitive string, answers map[domain.Person]string) (*TableResult, error)
}

// Common error types for Service
var (
	// ErrNoVerbs indicates the collection is empty, so nothing can be practiced.
	ErrNoVerbs = errors.New("no verbs to practice")

	// ErrInvalidMode indicates a single-answer submission for a mode other
	// than quiz or speech.
	ErrInvalidMode = errors.New("answers can only be submitted for quiz or speech")

	// ErrTableSizeMismatch indicates the tracker is configured for a table
	// size other than the six cells presented.
	ErrTableSizeMismatch = errors.New("mastery table cells do not match the conjugation table")
)

package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/domain/conjugation"
	"github.com/phrazzld/verbos-api/internal/domain/mastery"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/phrazzld/verbos-api/internal/service"
	"github.com/phrazzld/verbos-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*practiceServiceImpl)(nil)

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.Intn(n) }

// Option configures the practice service.
type Option func(*practiceServiceImpl)

// WithPicker replaces the random source used by NextPrompt.
func WithPicker(p Picker) Option {
	return func(s *practiceServiceImpl) {
		if p != nil {
			s.picker = p
		}
	}
}

// practiceServiceImpl implements the Service interface.
type practiceServiceImpl struct {
	verbs   store.VerbStore
	tracker mastery.Service
	picker  Picker
	logger  *slog.Logger
}

// NewService creates a new practice Service.
func NewService(
	verbs store.VerbStore,
	tracker mastery.Service,
	logger *slog.Logger,
	opts ...Option,
) (Service, error) {
	if verbs == nil {
		return nil, fmt.Errorf("%w: verb store cannot be nil", domain.ErrValidation)
	}
	if tracker == nil {
		return nil, fmt.Errorf("%w: mastery tracker cannot be nil", domain.ErrValidation)
	}
	if tracker.TableCells() != len(domain.TableSlots()) {
		return nil, fmt.Errorf("%w: tracker expects %d cells, table has %d",
			ErrTableSizeMismatch, tracker.TableCells(), len(domain.TableSlots()))
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &practiceServiceImpl{
		verbs:   verbs,
		tracker: tracker,
		picker:  globalPicker{},
		logger:  logger.With(slog.String("component", "practice_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Conjugations implements Service.Conjugations.
func (s *practiceServiceImpl) Conjugations(ctx context.Context, infinitive string) ([]conjugation.Form, error) {
	verb, err := s.loadVerb(ctx, "conjugations", infinitive)
	if err != nil {
		return nil, err
	}
	return conjugation.Table(verb), nil
}

// NextPrompt implements Service.NextPrompt.
func (s *practiceServiceImpl) NextPrompt(ctx context.Context) (*Prompt, error) {
	verbs, err := s.verbs.Load(ctx)
	if err != nil {
		return nil, service.NewServiceError("practice", "next_prompt", err)
	}
	if len(verbs) == 0 {
		return nil, ErrNoVerbs
	}

	persons := domain.Persons()
	return &Prompt{
		Verb:   verbs[s.picker.IntN(len(verbs))],
		Person: persons[s.picker.IntN(len(persons))],
	}, nil
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *practiceServiceImpl) SubmitAnswer(
	ctx context.Context,
	infinitive string,
	mode domain.PracticeMode,
	person domain.Person,
	answer string,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if mode != domain.PracticeModeQuiz && mode != domain.PracticeModeSpeech {
		return nil, ErrInvalidMode
	}
	if !person.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPerson, person)
	}

	verb, err := s.loadVerb(ctx, "submit_answer", infinitive)
	if err != nil {
		return nil, err
	}

	expected := conjugation.Conjugate(verb, person)
	result := &AnswerResult{
		Correct:  conjugation.Matches(answer, expected),
		Person:   person,
		Expected: expected,
		Given:    answer,
	}
	if !result.Correct {
		result.Feedback = AnswerFeedback(verb, person, answer, expected)
	}

	next, err := s.tracker.RecordResult(verb, mode, result.Correct)
	if err != nil {
		return nil, service.NewServiceError("practice", "submit_answer", err)
	}
	if err := s.persist(ctx, "submit_answer", verb, next); err != nil {
		return nil, err
	}
	result.Verb = next

	log.Debug("answer checked",
		slog.String("infinitive", verb.Infinitive),
		slog.String("mode", string(mode)),
		slog.String("person", string(person)),
		slog.Bool("correct", result.Correct),
		slog.Int("mastery", next.Mastery))
	return result, nil
}

// SubmitTable implements Service.SubmitTable.
func (s *practiceServiceImpl) SubmitTable(
	ctx context.Context,
	infinitive string,
	answers map[domain.Person]string,
) (*TableResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for person := range answers {
		if !person.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPerson, person)
		}
	}

	verb, err := s.loadVerb(ctx, "submit_table", infinitive)
	if err != nil {
		return nil, err
	}

	slots := domain.TableSlots()
	result := &TableResult{
		Cells:    make([]Cell, 0, len(slots)),
		Feedback: make([]string, 0),
	}
	for _, person := range slots {
		cell := Cell{
			Person:   person,
			Expected: conjugation.Conjugate(verb, person),
			Given:    answers[person],
		}
		cell.Correct = conjugation.Matches(cell.Given, cell.Expected)
		if cell.Correct {
			result.CorrectCount++
		} else {
			result.Feedback = append(result.Feedback, TableFeedback(verb, person, cell.Given, cell.Expected))
		}
		result.Cells = append(result.Cells, cell)
	}

	next, err := s.tracker.RecordTableResult(verb, result.CorrectCount)
	if err != nil {
		return nil, service.NewServiceError("practice", "submit_table", err)
	}
	if err := s.persist(ctx, "submit_table", verb, next); err != nil {
		return nil, err
	}
	result.Verb = next

	log.Debug("table checked",
		slog.String("infinitive", verb.Infinitive),
		slog.Int("correct_cells", result.CorrectCount),
		slog.Int("mastery", next.Mastery))
	return result, nil
}

func (s *practiceServiceImpl) loadVerb(ctx context.Context, op, infinitive string) (*domain.Verb, error) {
	infinitive = service.NormalizeInfinitive(infinitive)
	verb, err := s.verbs.Get(ctx, infinitive)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, service.NewServiceError("practice", op, fmt.Errorf("%w: %s", service.ErrVerbNotFound, infinitive))
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load verb",
			slog.String("infinitive", infinitive),
			slog.String("error", err.Error()))
		return nil, service.NewServiceError("practice", op, err)
	}
	return verb, nil
}

// persist writes next back when the tracker changed the record.
func (s *practiceServiceImpl) persist(ctx context.Context, op string, before, next *domain.Verb) error {
	if next.Mastery == before.Mastery && next.CompletedModes == before.CompletedModes {
		return nil
	}
	if err := s.verbs.Update(ctx, next); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save practice result",
			slog.String("infinitive", next.Infinitive),
			slog.String("error", err.Error()))
		return service.NewServiceError("practice", op, err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/phrazzld/verbos-api/internal/store"
)

// NewVerbParams holds the user-supplied fields of a verb being added.
type NewVerbParams struct {
	Infinitive         string
	Meaning            string
	Category           domain.Category
	IrregularOverrides map[domain.Person]string
	StemChange         *domain.StemChange
}

// VerbService manages the verb collection.
type VerbService interface {
	// List returns the whole collection in insertion order.
	List(ctx context.Context) ([]*domain.Verb, error)

	// Get retrieves a verb by infinitive.
	// Returns ErrVerbNotFound if the verb does not exist.
	Get(ctx context.Context, infinitive string) (*domain.Verb, error)

	// Add validates and appends a new, unpracticed verb.
	// Returns a domain validation error or ErrVerbExists.
	Add(ctx context.Context, params NewVerbParams) (*domain.Verb, error)

	// Remove deletes a verb by infinitive.
	// Returns ErrVerbNotFound if the verb does not exist.
	Remove(ctx context.Context, infinitive string) error

	// EnsureSeeded stores seed when the collection is empty. It reports
	// whether seeding happened; a non-empty collection is left untouched.
	EnsureSeeded(ctx context.Context, seed []*domain.Verb) (bool, error)

	// Replace overwrites the collection with verbs.
	Replace(ctx context.Context, verbs []*domain.Verb) error
}

// verbServiceImpl implements the VerbService interface
type verbServiceImpl struct {
	verbs  store.VerbStore
	logger *slog.Logger
}

// NewVerbService creates a new VerbService.
// It returns an error if the store is nil.
func NewVerbService(verbs store.VerbStore, logger *slog.Logger) (VerbService, error) {
	if verbs == nil {
		return nil, fmt.Errorf("%w: verb store cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &verbServiceImpl{
		verbs:  verbs,
		logger: logger.With(slog.String("component", "verb_service")),
	}, nil
}

// NormalizeInfinitive lower-cases and trims an infinitive used as a lookup key.
func NormalizeInfinitive(infinitive string) string {
	return strings.ToLower(strings.TrimSpace(infinitive))
}

// List implements VerbService.List
func (s *verbServiceImpl) List(ctx context.Context) ([]*domain.Verb, error) {
	verbs, err := s.verbs.Load(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load verbs",
			slog.String("error", err.Error()))
		return nil, NewServiceError("verb", "list", err)
	}
	return verbs, nil
}

// Get implements VerbService.Get
func (s *verbServiceImpl) Get(ctx context.Context, infinitive string) (*domain.Verb, error) {
	verb, err := s.verbs.Get(ctx, NormalizeInfinitive(infinitive))
	if err != nil {
		return nil, s.translate(ctx, "get", infinitive, err)
	}
	return verb, nil
}

// Add implements VerbService.Add
func (s *verbServiceImpl) Add(ctx context.Context, params NewVerbParams) (*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	verb, err := domain.NewVerb(
		params.Infinitive,
		params.Meaning,
		params.Category,
		params.IrregularOverrides,
		params.StemChange,
	)
	if err != nil {
		log.Debug("rejected new verb",
			slog.String("infinitive", params.Infinitive),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.verbs.Create(ctx, verb); err != nil {
		return nil, s.translate(ctx, "add", verb.Infinitive, err)
	}

	log.Info("verb added",
		slog.String("infinitive", verb.Infinitive),
		slog.String("category", string(verb.Category)))
	return verb, nil
}

// Remove implements VerbService.Remove
func (s *verbServiceImpl) Remove(ctx context.Context, infinitive string) error {
	infinitive = NormalizeInfinitive(infinitive)
	if err := s.verbs.Delete(ctx, infinitive); err != nil {
		return s.translate(ctx, "remove", infinitive, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("verb removed",
		slog.String("infinitive", infinitive))
	return nil
}

// EnsureSeeded implements VerbService.EnsureSeeded
func (s *verbServiceImpl) EnsureSeeded(ctx context.Context, seed []*domain.Verb) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.verbs.Load(ctx)
	if err != nil {
		return false, NewServiceError("verb", "seed", err)
	}
	if len(existing) > 0 {
		log.Debug("collection already populated, skipping seed",
			slog.Int("verb_count", len(existing)))
		return false, nil
	}
	if len(seed) == 0 {
		return false, nil
	}

	if err := s.verbs.Save(ctx, seed); err != nil {
		return false, s.translate(ctx, "seed", "", err)
	}

	log.Info("seeded verb collection", slog.Int("verb_count", len(seed)))
	return true, nil
}

// Replace implements VerbService.Replace
func (s *verbServiceImpl) Replace(ctx context.Context, verbs []*domain.Verb) error {
	if err := s.verbs.Save(ctx, verbs); err != nil {
		return s.translate(ctx, "replace", "", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("verb collection replaced",
		slog.Int("verb_count", len(verbs)))
	return nil
}

// translate maps store errors onto service sentinels. Domain validation
// errors pass through so callers can report them to the user.
func (s *verbServiceImpl) translate(ctx context.Context, op, infinitive string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return NewServiceError("verb", op, fmt.Errorf("%w: %s", ErrVerbNotFound, infinitive))
	case errors.Is(err, store.ErrVerbExists):
		return NewServiceError("verb", op, fmt.Errorf("%w: %s", ErrVerbExists, infinitive))
	case errors.Is(err, domain.ErrValidation):
		return NewServiceError("verb", op, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("verb store operation failed",
		slog.String("operation", op),
		slog.String("infinitive", infinitive),
		slog.String("error", err.Error()))
	return NewServiceError("verb", op, err)
}

package store

import (
	"context"
	"fmt"

	"github.com/phrazzld/verbos-api/internal/domain"
)

// CollectionKey is the name under which the verb collection is persisted.
// Older clients read and write the collection under this key.
const CollectionKey = "verbos"

// VerbStore defines the interface for verb collection persistence.
//
// Implementations keep the collection in insertion order and identify
// verbs by infinitive. Records are returned as fresh copies; callers may
// modify them without affecting the stored state.
//
// No row-level locking is performed. Concurrent read-modify-write cycles
// on the same verb race, and the last Update wins.
type VerbStore interface {
	// Load returns the whole collection in insertion order.
	// An empty collection yields an empty, non-nil slice.
	Load(ctx context.Context) ([]*domain.Verb, error)

	// Save replaces the whole collection with verbs, preserving their order.
	// Returns ErrInvalidEntity if any verb fails validation and ErrVerbExists
	// if two verbs share an infinitive. Nothing is written on error.
	Save(ctx context.Context, verbs []*domain.Verb) error

	// Get retrieves a verb by infinitive.
	// Returns ErrVerbNotFound if the verb does not exist.
	Get(ctx context.Context, infinitive string) (*domain.Verb, error)

	// Create appends a verb to the collection.
	// Returns ErrVerbExists if the infinitive is already present.
	Create(ctx context.Context, verb *domain.Verb) error

	// Update replaces the stored record with the same infinitive.
	// Returns ErrVerbNotFound if the verb does not exist.
	Update(ctx context.Context, verb *domain.Verb) error

	// Delete removes a verb by infinitive.
	// Returns ErrVerbNotFound if the verb does not exist.
	Delete(ctx context.Context, infinitive string) error
}

// ValidateCollection checks every verb and rejects duplicate infinitives.
// Store implementations call it before replacing a collection.
func ValidateCollection(verbs []*domain.Verb) error {
	seen := make(map[string]struct{}, len(verbs))
	for _, verb := range verbs {
		if verb == nil {
			return NewStoreError("verb", "save", "nil verb in collection", ErrInvalidEntity)
		}
		if err := verb.Validate(); err != nil {
			return NewStoreError("verb", "save", verb.Infinitive, fmt.Errorf("%w: %w", ErrInvalidEntity, err))
		}
		if _, dup := seen[verb.Infinitive]; dup {
			return NewStoreError("verb", "save", verb.Infinitive, ErrVerbExists)
		}
		seen[verb.Infinitive] = struct{}{}
	}
	return nil
}

// ValidateVerb checks a single verb before it is written.
func ValidateVerb(operation string, verb *domain.Verb) error {
	if verb == nil {
		return NewStoreError("verb", operation, "nil verb", ErrInvalidEntity)
	}
	if err := verb.Validate(); err != nil {
		return NewStoreError("verb", operation, verb.Infinitive, fmt.Errorf("%w: %w", ErrInvalidEntity, err))
	}
	return nil
}

// CloneAll deep-copies a collection.
func CloneAll(verbs []*domain.Verb) []*domain.Verb {
	out := make([]*domain.Verb, 0, len(verbs))
	for _, verb := range verbs {
		out = append(out, verb.Clone())
	}
	return out
}

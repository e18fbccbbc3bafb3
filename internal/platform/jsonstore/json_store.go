package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/phrazzld/verbos-api/internal/store"
)

// legacyVerb accepts records written by older clients, which stored
// fractional mastery and kept blank override entries.
type legacyVerb struct {
	Infinitive     string                   `json:"infinitive"`
	Meaning        string                   `json:"meaning"`
	Category       domain.Category          `json:"type"`
	IrregularForms map[domain.Person]string `json:"irregularForms"`
	StemChange     *domain.StemChange       `json:"stemChange"`
	Mastery        float64                  `json:"mastery"`
	MasteredModes  domain.CompletedModes    `json:"masteredModes"`
}

// JSONStore implements store.VerbStore on a JSON file.
type JSONStore struct {
	filePath string
	logger   *slog.Logger

	mu    sync.RWMutex
	verbs []*domain.Verb
}

// Ensure JSONStore implements store.VerbStore interface
var _ store.VerbStore = (*JSONStore)(nil)

// NewJSONStore opens the collection stored at filePath. A missing file is an
// empty collection. An empty filePath keeps everything in memory.
func NewJSONStore(filePath string, logger *slog.Logger) (*JSONStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &JSONStore{
		filePath: filePath,
		logger:   logger.With(slog.String("component", "verb_store"), slog.String("engine", "json")),
		verbs:    make([]*domain.Verb, 0),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemoryStore returns a store that never touches the filesystem.
func NewMemoryStore(logger *slog.Logger) *JSONStore {
	s, _ := NewJSONStore("", logger)
	return s
}

// Load implements store.VerbStore.Load
func (s *JSONStore) Load(ctx context.Context) ([]*domain.Verb, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.CloneAll(s.verbs), nil
}

// Save implements store.VerbStore.Save
func (s *JSONStore) Save(ctx context.Context, verbs []*domain.Verb) error {
	if err := store.ValidateCollection(verbs); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("verb collection validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, store.CloneAll(verbs))
}

// Get implements store.VerbStore.Get
func (s *JSONStore) Get(ctx context.Context, infinitive string) (*domain.Verb, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(infinitive)
	if i < 0 {
		return nil, store.ErrVerbNotFound
	}
	return s.verbs[i].Clone(), nil
}

// Create implements store.VerbStore.Create
func (s *JSONStore) Create(ctx context.Context, verb *domain.Verb) error {
	if err := store.ValidateVerb("create", verb); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(verb.Infinitive) >= 0 {
		return store.NewStoreError("verb", "create", "duplicate infinitive", store.ErrVerbExists)
	}

	next := append(store.CloneAll(s.verbs), verb.Clone())
	return s.commitLocked(ctx, next)
}

// Update implements store.VerbStore.Update
func (s *JSONStore) Update(ctx context.Context, verb *domain.Verb) error {
	if err := store.ValidateVerb("update", verb); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(verb.Infinitive)
	if i < 0 {
		return store.ErrVerbNotFound
	}

	next := store.CloneAll(s.verbs)
	next[i] = verb.Clone()
	return s.commitLocked(ctx, next)
}

// Delete implements store.VerbStore.Delete
func (s *JSONStore) Delete(ctx context.Context, infinitive string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(infinitive)
	if i < 0 {
		return store.ErrVerbNotFound
	}

	next := make([]*domain.Verb, 0, len(s.verbs)-1)
	next = append(next, s.verbs[:i]...)
	next = append(next, s.verbs[i+1:]...)
	return s.commitLocked(ctx, next)
}

func (s *JSONStore) indexLocked(infinitive string) int {
	for i, verb := range s.verbs {
		if verb.Infinitive == infinitive {
			return i
		}
	}
	return -1
}

// commitLocked persists next and only then makes it the current state,
// so a failed write leaves memory and disk in agreement.
func (s *JSONStore) commitLocked(ctx context.Context, next []*domain.Verb) error {
	if err := s.persist(next); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to persist verb collection",
			slog.String("error", err.Error()),
			slog.String("path", s.filePath))
		return store.NewStoreError("verb", "save", "failed to write collection", err)
	}
	s.verbs = next
	return nil
}

func (s *JSONStore) persist(verbs []*domain.Verb) error {
	if s.filePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(map[string][]*domain.Verb{store.CollectionKey: verbs}, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}

func (s *JSONStore) load() error {
	if s.filePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	verbs, rejected, err := Decode(data)
	if err != nil {
		return store.NewStoreError("verb", "load", s.filePath, err)
	}
	s.verbs = verbs

	if len(rejected) > 0 {
		// The next save drops rejected records, so keep the file as it was.
		backupPath := s.filePath + ".bak"
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return store.NewStoreError("verb", "load", "failed to back up "+s.filePath, err)
		}
		for _, r := range rejected {
			s.logger.Warn("skipping invalid verb record",
				slog.String("path", s.filePath),
				slog.Int("index", r.Index),
				slog.String("infinitive", r.Infinitive),
				slog.String("error", r.Err.Error()),
				slog.String("backup", backupPath))
		}
	}

	s.logger.Debug("verb collection loaded",
		slog.String("path", s.filePath),
		slog.Int("count", len(verbs)),
		slog.Int("rejected", len(rejected)))
	return nil
}

// Rejected describes a persisted record that could not be loaded.
type Rejected struct {
	// Index is the record's position in the persisted list.
	Index      int
	Infinitive string
	Err        error
}

// Decode parses a persisted collection. It accepts either the
// {"verbos": [...]} document or a bare array of records.
//
// Infinitives are trimmed and lower-cased, fractional mastery is rounded and
// fields that do not apply to a verb's category are dropped. Records that
// still fail validation, or repeat an earlier infinitive, are returned in
// rejected instead of failing the whole collection. Only malformed JSON is
// an error.
func Decode(data []byte) (verbs []*domain.Verb, rejected []Rejected, err error) {
	verbs = make([]*domain.Verb, 0)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return verbs, nil, nil
	}

	var records []legacyVerb
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
		}
	} else {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
		}
		if raw, ok := doc[store.CollectionKey]; ok {
			if err := json.Unmarshal(raw, &records); err != nil {
				return nil, nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidFormat, store.CollectionKey, err)
			}
		}
	}

	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		verb := record.toVerb()
		if err := verb.Validate(); err != nil {
			rejected = append(rejected, Rejected{
				Index:      i,
				Infinitive: verb.Infinitive,
				Err:        fmt.Errorf("%w: %w", store.ErrInvalidEntity, err),
			})
			continue
		}
		if _, dup := seen[verb.Infinitive]; dup {
			rejected = append(rejected, Rejected{Index: i, Infinitive: verb.Infinitive, Err: store.ErrVerbExists})
			continue
		}
		seen[verb.Infinitive] = struct{}{}
		verbs = append(verbs, verb)
	}
	return verbs, rejected, nil
}

func (r legacyVerb) toVerb() *domain.Verb {
	verb := &domain.Verb{
		Infinitive:     strings.ToLower(strings.TrimSpace(r.Infinitive)),
		Meaning:        r.Meaning,
		Category:       r.Category,
		Mastery:        int(math.Max(0, math.Min(domain.MaxMastery, math.Round(r.Mastery)))),
		CompletedModes: r.MasteredModes,
	}

	if r.Category == domain.CategoryIrregular {
		for person, form := range r.IrregularForms {
			if form == "" {
				continue
			}
			if verb.IrregularOverrides == nil {
				verb.IrregularOverrides = make(map[domain.Person]string, len(r.IrregularForms))
			}
			verb.IrregularOverrides[person] = form
		}
	}

	if r.Category == domain.CategoryStemChanging && r.StemChange != nil {
		sc := *r.StemChange
		verb.StemChange = &sc
	}

	return verb
}

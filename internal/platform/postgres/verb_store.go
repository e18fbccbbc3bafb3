package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/phrazzld/verbos-api/internal/store"
)

// PostgresVerbStore implements the store.VerbStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVerbStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVerbStore creates a new PostgreSQL implementation of the VerbStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresVerbStore(db store.DBTX, logger *slog.Logger) *PostgresVerbStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVerbStore{
		db:     db,
		logger: logger.With(slog.String("component", "verb_store")),
	}
}

// Ensure PostgresVerbStore implements store.VerbStore interface
var _ store.VerbStore = (*PostgresVerbStore)(nil)

// WithTx returns a store that runs every statement inside tx.
func (s *PostgresVerbStore) WithTx(tx *sql.Tx) *PostgresVerbStore {
	return &PostgresVerbStore{db: tx, logger: s.logger}
}

// Load implements store.VerbStore.Load
func (s *PostgresVerbStore) Load(ctx context.Context) ([]*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + store.VerbColumns + ` FROM verbs ORDER BY position, infinitive`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query verbs", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	verbs := make([]*domain.Verb, 0)
	for rows.Next() {
		var row store.VerbRow
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			log.Error("failed to scan verb row", slog.String("error", err.Error()))
			return nil, err
		}
		verb, err := row.Verb()
		if err != nil {
			log.Error("failed to decode verb row",
				slog.String("error", err.Error()),
				slog.String("infinitive", row.Infinitive))
			return nil, err
		}
		verbs = append(verbs, verb)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating verb rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("verbs loaded", slog.Int("count", len(verbs)))
	return verbs, nil
}

// Save implements store.VerbStore.Save
// The collection is replaced in a single transaction unless the store is
// already bound to one.
func (s *PostgresVerbStore) Save(ctx context.Context, verbs []*domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateCollection(verbs); err != nil {
		log.Warn("verb collection validation failed during save", slog.String("error", err.Error()))
		return err
	}

	db, ok := s.db.(*sql.DB)
	if !ok {
		return s.replaceAll(ctx, verbs)
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).replaceAll(ctx, verbs)
	})
}

func (s *PostgresVerbStore) replaceAll(ctx context.Context, verbs []*domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM verbs`); err != nil {
		log.Error("failed to clear verbs", slog.String("error", err.Error()))
		return MapError(err)
	}

	query := `
		INSERT INTO verbs (position, ` + store.VerbColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for i, verb := range verbs {
		row, err := store.NewVerbRow(verb)
		if err != nil {
			return err
		}
		args := append([]any{i + 1}, row.Args()...)
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			log.Error("failed to insert verb",
				slog.String("error", err.Error()),
				slog.String("infinitive", verb.Infinitive))
			return MapError(err)
		}
	}

	log.Info("verb collection saved", slog.Int("count", len(verbs)))
	return nil
}

// Get implements store.VerbStore.Get
// Returns store.ErrVerbNotFound if the verb does not exist.
func (s *PostgresVerbStore) Get(ctx context.Context, infinitive string) (*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving verb", slog.String("infinitive", infinitive))

	query := `SELECT ` + store.VerbColumns + ` FROM verbs WHERE infinitive = $1`

	var row store.VerbRow
	err := s.db.QueryRowContext(ctx, query, infinitive).Scan(row.ScanTargets()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("verb not found", slog.String("infinitive", infinitive))
			return nil, store.ErrVerbNotFound
		}
		log.Error("failed to get verb",
			slog.String("error", err.Error()),
			slog.String("infinitive", infinitive))
		return nil, MapError(err)
	}

	return row.Verb()
}

// Create implements store.VerbStore.Create
// Returns store.ErrVerbExists if the infinitive is already present.
func (s *PostgresVerbStore) Create(ctx context.Context, verb *domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateVerb("create", verb); err != nil {
		log.Warn("verb validation failed during create", slog.String("error", err.Error()))
		return err
	}

	row, err := store.NewVerbRow(verb)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO verbs (position, ` + store.VerbColumns + `)
		VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM verbs),
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := s.db.ExecContext(ctx, query, row.Args()...); err != nil {
		log.Error("failed to create verb",
			slog.String("error", err.Error()),
			slog.String("infinitive", verb.Infinitive))
		return MapError(err)
	}

	log.Info("verb created",
		slog.String("infinitive", verb.Infinitive),
		slog.String("category", string(verb.Category)))
	return nil
}

// Update implements store.VerbStore.Update
// Returns store.ErrVerbNotFound if the verb does not exist.
func (s *PostgresVerbStore) Update(ctx context.Context, verb *domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateVerb("update", verb); err != nil {
		log.Warn("verb validation failed during update", slog.String("error", err.Error()))
		return err
	}

	row, err := store.NewVerbRow(verb)
	if err != nil {
		return err
	}

	query := `
		UPDATE verbs
		SET meaning = $2, category = $3, irregular_forms = $4, stem_change_from = $5,
			stem_change_to = $6, mastery = $7, quiz_completed = $8, table_completed = $9,
			speech_completed = $10, updated_at = CURRENT_TIMESTAMP
		WHERE infinitive = $1
	`
	result, err := s.db.ExecContext(ctx, query, row.Args()...)
	if err != nil {
		log.Error("failed to update verb",
			slog.String("error", err.Error()),
			slog.String("infinitive", verb.Infinitive))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrVerbNotFound); err != nil {
		log.Debug("verb not found for update", slog.String("infinitive", verb.Infinitive))
		return err
	}

	log.Debug("verb updated",
		slog.String("infinitive", verb.Infinitive),
		slog.Int("mastery", verb.Mastery))
	return nil
}

// Delete implements store.VerbStore.Delete
// Returns store.ErrVerbNotFound if the verb does not exist.
func (s *PostgresVerbStore) Delete(ctx context.Context, infinitive string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM verbs WHERE infinitive = $1`, infinitive)
	if err != nil {
		log.Error("failed to delete verb",
			slog.String("error", err.Error()),
			slog.String("infinitive", infinitive))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrVerbNotFound); err != nil {
		log.Debug("verb not found for delete", slog.String("infinitive", infinitive))
		return err
	}

	log.Info("verb deleted", slog.String("infinitive", infinitive))
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/phrazzld/verbos-api/internal/store"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// SQLiteVerbStore implements the store.VerbStore interface on a SQLite database.
type SQLiteVerbStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteVerbStore creates a verb store on an open SQLite connection or transaction.
// If logger is nil, a default logger will be used.
func NewSQLiteVerbStore(db store.DBTX, logger *slog.Logger) *SQLiteVerbStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteVerbStore{
		db:     db,
		logger: logger.With(slog.String("component", "verb_store"), slog.String("engine", "sqlite")),
	}
}

// Ensure SQLiteVerbStore implements store.VerbStore interface
var _ store.VerbStore = (*SQLiteVerbStore)(nil)

// WithTx returns a store that runs every statement inside tx.
func (s *SQLiteVerbStore) WithTx(tx *sql.Tx) *SQLiteVerbStore {
	return &SQLiteVerbStore{db: tx, logger: s.logger}
}

// Load implements store.VerbStore.Load
func (s *SQLiteVerbStore) Load(ctx context.Context) ([]*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+store.VerbColumns+` FROM verbs ORDER BY position, infinitive`)
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
		return nil, err
	}

	log.Debug("verbs loaded", slog.Int("count", len(verbs)))
	return verbs, nil
}

// Save implements store.VerbStore.Save
func (s *SQLiteVerbStore) Save(ctx context.Context, verbs []*domain.Verb) error {
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

func (s *SQLiteVerbStore) replaceAll(ctx context.Context, verbs []*domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM verbs`); err != nil {
		log.Error("failed to clear verbs", slog.String("error", err.Error()))
		return MapError(err)
	}

	query := `INSERT INTO verbs (position, ` + store.VerbColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
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
			return mapVerbError(err)
		}
	}

	log.Info("verb collection saved", slog.Int("count", len(verbs)))
	return nil
}

// Get implements store.VerbStore.Get
func (s *SQLiteVerbStore) Get(ctx context.Context, infinitive string) (*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row store.VerbRow
	err := s.db.QueryRowContext(ctx,
		`SELECT `+store.VerbColumns+` FROM verbs WHERE infinitive = ?`, infinitive,
	).Scan(row.ScanTargets()...)
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
func (s *SQLiteVerbStore) Create(ctx context.Context, verb *domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateVerb("create", verb); err != nil {
		log.Warn("verb validation failed during create", slog.String("error", err.Error()))
		return err
	}

	row, err := store.NewVerbRow(verb)
	if err != nil {
		return err
	}

	query := `INSERT INTO verbs (position, ` + store.VerbColumns + `)
		VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM verbs), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, row.Args()...); err != nil {
		log.Error("failed to create verb",
			slog.String("error", err.Error()),
			slog.String("infinitive", verb.Infinitive))
		return mapVerbError(err)
	}

	log.Info("verb created",
		slog.String("infinitive", verb.Infinitive),
		slog.String("category", string(verb.Category)))
	return nil
}

// Update implements store.VerbStore.Update
func (s *SQLiteVerbStore) Update(ctx context.Context, verb *domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateVerb("update", verb); err != nil {
		log.Warn("verb validation failed during update", slog.String("error", err.Error()))
		return err
	}

	row, err := store.NewVerbRow(verb)
	if err != nil {
		return err
	}

	query := `UPDATE verbs
		SET meaning = ?, category = ?, irregular_forms = ?, stem_change_from = ?, stem_change_to = ?,
			mastery = ?, quiz_completed = ?, table_completed = ?, speech_completed = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE infinitive = ?`
	args := append(row.Args()[1:], row.Infinitive)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update verb",
			slog.String("error", err.Error()),
			slog.String("infinitive", verb.Infinitive))
		return MapError(err)
	}

	if err := checkRowsAffected(result, store.ErrVerbNotFound); err != nil {
		return err
	}

	log.Debug("verb updated",
		slog.String("infinitive", verb.Infinitive),
		slog.Int("mastery", verb.Mastery))
	return nil
}

// Delete implements store.VerbStore.Delete
func (s *SQLiteVerbStore) Delete(ctx context.Context, infinitive string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM verbs WHERE infinitive = ?`, infinitive)
	if err != nil {
		log.Error("failed to delete verb",
			slog.String("error", err.Error()),
			slog.String("infinitive", infinitive))
		return MapError(err)
	}

	if err := checkRowsAffected(result, store.ErrVerbNotFound); err != nil {
		return err
	}

	log.Info("verb deleted", slog.String("infinitive", infinitive))
	return nil
}

func mapVerbError(err error) error {
	if IsUniqueViolation(err) {
		return store.NewStoreError("verb", "create", "duplicate infinitive", store.ErrVerbExists)
	}
	return MapError(err)
}

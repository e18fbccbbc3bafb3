// Package storage opens the verb store selected by configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/verbos-api/internal/config"
	"github.com/phrazzld/verbos-api/internal/platform/jsonstore"
	"github.com/phrazzld/verbos-api/internal/platform/migrations"
	"github.com/phrazzld/verbos-api/internal/platform/postgres"
	"github.com/phrazzld/verbos-api/internal/platform/sqlite"
	"github.com/phrazzld/verbos-api/internal/store"
)

// Storage bundles an opened verb store with its underlying connection.
type Storage struct {
	Engine string
	Verbs  store.VerbStore
	// DB is nil for the json and memory engines.
	DB *sql.DB
	// Dialect is the migration dialect of DB, empty when DB is nil.
	Dialect string
}

// Open connects to the configured engine. SQL engines are migrated first
// when cfg.AutoMigrate is set.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	engine := strings.ToLower(strings.TrimSpace(cfg.Engine))
	log := logger.With(slog.String("component", "storage"), slog.String("engine", engine))

	var s *Storage
	switch engine {
	case "", config.EngineSQLite:
		db, err := sqlite.Open(cfg.Path, cfg.MaxOpenConns)
		if err != nil {
			return nil, err
		}
		s = &Storage{
			Engine:  config.EngineSQLite,
			Verbs:   sqlite.NewSQLiteVerbStore(db, logger),
			DB:      db,
			Dialect: migrations.DialectSQLite,
		}
	case config.EnginePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s = &Storage{
			Engine:  config.EnginePostgres,
			Verbs:   postgres.NewPostgresVerbStore(db, logger),
			DB:      db,
			Dialect: migrations.DialectPostgres,
		}
	case config.EngineJSON:
		verbs, err := jsonstore.NewJSONStore(cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		s = &Storage{Engine: config.EngineJSON, Verbs: verbs}
	case config.EngineMemory:
		s = &Storage{Engine: config.EngineMemory, Verbs: jsonstore.NewMemoryStore(logger)}
	default:
		return nil, fmt.Errorf("unsupported storage engine: %s", cfg.Engine)
	}

	if s.DB != nil && cfg.AutoMigrate {
		if err := migrations.Up(ctx, s.DB, s.Dialect, logger); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Info("storage opened", slog.Bool("sql", s.DB != nil))
	return s, nil
}

// OpenDB opens only the SQL connection of the configured engine, for
// commands such as migrate that do not need a verb store.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, string, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Engine)) {
	case "", config.EngineSQLite:
		db, err := sqlite.Open(cfg.Path, cfg.MaxOpenConns)
		return db, migrations.DialectSQLite, err
	case config.EnginePostgres:
		db, err := openPostgres(ctx, cfg)
		return db, migrations.DialectPostgres, err
	default:
		return nil, "", fmt.Errorf("storage engine %q has no SQL database", cfg.Engine)
	}
}

// Close releases the underlying connection, if any.
func (s *Storage) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen < 1 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns((maxOpen + 1) / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

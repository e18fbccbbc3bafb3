package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// TableName is the table used by goose to track applied migrations.
const TableName = "schema_migrations"

// Supported dialects. Each has a matching directory of SQL files.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Supported commands
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// Commands lists every command accepted by Run.
func Commands() []string {
	return []string{CommandUp, CommandDown, CommandReset, CommandStatus, CommandVersion}
}

//go:embed postgres/*.sql sqlite3/*.sql
var files embed.FS

// MigrationStatus describes one migration file and whether it has been applied.
type MigrationStatus struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

// Result summarises a migration command.
type Result struct {
	Command string
	// Version is the schema version after the command ran.
	Version int64
	// Changed lists the versions applied or rolled back by the command.
	Changed  []int64
	Statuses []MigrationStatus
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	_, err := Run(ctx, db, dialect, CommandUp, logger)
	return err
}

// Run executes a migration command against db.
// Returns an error for unknown dialects or commands.
func Run(ctx context.Context, db *sql.DB, dialect, command string, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	// Use a correlation ID for all migration logs to allow tracing the entire operation
	log := logger.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("dialect", dialect),
		slog.String("command", command),
	)

	provider, err := newProvider(db, dialect)
	if err != nil {
		log.Error("failed to create migration provider", slog.String("error", err.Error()))
		return nil, err
	}

	startTime := time.Now()
	result := &Result{Command: command}

	switch command {
	case CommandUp:
		var applied []*goose.MigrationResult
		applied, err = provider.Up(ctx)
		result.Changed = versionsOf(applied)
	case CommandDown:
		var rolledBack *goose.MigrationResult
		rolledBack, err = provider.Down(ctx)
		if rolledBack != nil {
			result.Changed = versionsOf([]*goose.MigrationResult{rolledBack})
		}
	case CommandReset:
		var rolledBack []*goose.MigrationResult
		rolledBack, err = provider.DownTo(ctx, 0)
		result.Changed = versionsOf(rolledBack)
	case CommandStatus:
		var statuses []*goose.MigrationStatus
		statuses, err = provider.Status(ctx)
		result.Statuses = convertStatuses(statuses)
	case CommandVersion:
		// Version is read below for every command.
	default:
		log.Error("unknown migration command", slog.Any("valid_commands", Commands()))
		return nil, fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status or version)",
			command,
		)
	}
	if err != nil {
		log.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
		return nil, fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	result.Version, err = provider.GetDBVersion(ctx)
	if err != nil {
		log.Error("failed to read schema version", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Info("migration command executed successfully",
		slog.Int64("version", result.Version),
		slog.Int("changed", len(result.Changed)),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return result, nil
}

func newProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	var d database.Dialect
	switch dialect {
	case DialectPostgres:
		d = database.DialectPostgres
	case DialectSQLite:
		d = database.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	fsys, err := fs.Sub(files, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", dialect, err)
	}

	versionStore, err := database.NewStore(d, TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration store: %w", err)
	}

	return goose.NewProvider("", db, fsys, goose.WithStore(versionStore))
}

func versionsOf(results []*goose.MigrationResult) []int64 {
	versions := make([]int64, 0, len(results))
	for _, r := range results {
		if r != nil && r.Source != nil {
			versions = append(versions, r.Source.Version)
		}
	}
	return versions
}

func convertStatuses(statuses []*goose.MigrationStatus) []MigrationStatus {
	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		if s == nil || s.Source == nil {
			continue
		}
		out = append(out, MigrationStatus{
			Version:   s.Source.Version,
			Path:      s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out
}

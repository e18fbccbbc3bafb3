package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/verbos-api/internal/config"
	"github.com/phrazzld/verbos-api/internal/domain/mastery"
	"github.com/phrazzld/verbos-api/internal/platform/storage"
	"github.com/phrazzld/verbos-api/internal/seed"
	"github.com/phrazzld/verbos-api/internal/service"
	"github.com/phrazzld/verbos-api/internal/service/practice"
)

// application holds the server's wired dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	storage *storage.Storage

	verbService     service.VerbService
	practiceService practice.Service
}

// newApplication opens storage, builds the services and seeds an empty
// collection when seeding is enabled.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.storage, err = storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	tracker, err := newTracker(cfg.Mastery)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	app.verbService, err = service.NewVerbService(app.storage.Verbs, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create verb service: %w", err)
	}

	app.practiceService, err = practice.NewService(app.storage.Verbs, tracker, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create practice service: %w", err)
	}

	if cfg.Seed.Enabled {
		if err := app.seed(ctx); err != nil {
			app.cleanup()
			return nil, err
		}
	}

	return app, nil
}

// newTracker builds the mastery tracker from configuration.
func newTracker(cfg config.MasteryConfig) (mastery.Service, error) {
	tracker, err := mastery.NewServiceWithParams(mastery.NewParams(mastery.ParamsConfig{
		QuestionStep: cfg.QuestionStep,
		TableStep:    cfg.TableStep,
		TableCells:   cfg.TableCells,
		PartialCap:   cfg.PartialCap,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create mastery tracker: %w", err)
	}
	return tracker, nil
}

func (app *application) seed(ctx context.Context) error {
	verbs, err := seed.Verbs(app.config.Seed.File)
	if err != nil {
		return fmt.Errorf("failed to load seed verbs: %w", err)
	}

	seeded, err := app.verbService.EnsureSeeded(ctx, verbs)
	if err != nil {
		return fmt.Errorf("failed to seed verb collection: %w", err)
	}
	if seeded {
		app.logger.Info("Seeded empty verb collection", slog.Int("verb_count", len(verbs)))
	}
	return nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup releases the storage connection.
func (app *application) cleanup() {
	if err := app.storage.Close(); err != nil {
		app.logger.Error("Error closing storage", slog.String("error", err.Error()))
	}

	app.logger.Info("Application shutdown completed")
}

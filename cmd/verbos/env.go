package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/verbos-api/internal/config"
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/phrazzld/verbos-api/internal/platform/storage"
	"github.com/phrazzld/verbos-api/internal/service"
	"github.com/spf13/cobra"
)

// loadConfig reads configuration and applies the persistent storage flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	engine, _ := cmd.Flags().GetString("engine")
	dbPath, _ := cmd.Flags().GetString("db")

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if engine != "" {
		cfg.Database.Engine = engine
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if engine != "" || dbPath != "" {
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// newLogger writes text records to the command's stderr so they never mix
// with command output.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return logger.New(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Format: "text",
		Output: cmd.ErrOrStderr(),
	})
}

// session is the storage and verb service behind a single command.
type session struct {
	config  *config.Config
	logger  *slog.Logger
	storage *storage.Storage
	verbs   service.VerbService
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	st, err := storage.Open(cmd.Context(), cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	verbs, err := service.NewVerbService(st.Verbs, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &session{config: cfg, logger: log, storage: st, verbs: verbs}, nil
}

func (s *session) Close() {
	if err := s.storage.Close(); err != nil {
		s.logger.Error("Error closing storage", slog.String("error", err.Error()))
	}
}

// addVerbFlags registers the flags that describe a verb's conjugation.
func addVerbFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", string(domain.CategoryRegular), "Verb type (regular, irregular, stem-changing)")
	cmd.Flags().StringSlice("form", []string{}, "Irregular form as person=form, repeatable (yo=tengo)")
	cmd.Flags().String("stem-from", "", "Stem vowel replaced by a stem change (defaults to the stem)")
	cmd.Flags().String("stem-to", "", "Replacement for the stem change (ie)")
}

// verbParams reads the flags registered by addVerbFlags.
func verbParams(cmd *cobra.Command, infinitive string) (service.NewVerbParams, error) {
	category, _ := cmd.Flags().GetString("type")
	forms, _ := cmd.Flags().GetStringSlice("form")
	stemFrom, _ := cmd.Flags().GetString("stem-from")
	stemTo, _ := cmd.Flags().GetString("stem-to")

	params := service.NewVerbParams{
		Infinitive: infinitive,
		Category:   domain.Category(strings.ToLower(strings.TrimSpace(category))),
	}

	overrides, err := parseForms(forms)
	if err != nil {
		return params, err
	}
	params.IrregularOverrides = overrides

	if stemFrom != "" || stemTo != "" {
		params.StemChange = &domain.StemChange{From: stemFrom, To: stemTo}
	}

	return params, nil
}

// parseForms turns person=form pairs into an override map.
func parseForms(pairs []string) (map[domain.Person]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	forms := make(map[domain.Person]string, len(pairs))
	for _, pair := range pairs {
		key, form, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid form %q: expected person=form", pair)
		}
		person, err := domain.ParsePerson(key)
		if err != nil {
			return nil, fmt.Errorf("invalid form %q: %w", pair, err)
		}
		if _, dup := forms[person]; dup {
			return nil, fmt.Errorf("form for %s given more than once", person)
		}
		forms[person] = strings.TrimSpace(form)
	}
	return forms, nil
}

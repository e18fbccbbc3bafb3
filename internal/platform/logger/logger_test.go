// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/verbos-api/internal/config"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseLogEntry parses a JSON log entry from a string
func parseLogEntry(t *testing.T, logLine string) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(logLine), &entry))
	return entry
}

// TestSetup ensures Setup returns a logger and installs it as the default.
func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(config.ServerConfig{LogLevel: "info", LogFormat: "json", Port: 8080})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())

	_, err = logger.Setup(config.ServerConfig{LogLevel: "invalid_level", Port: 8080})
	assert.Error(t, err)
}

func TestNewWritesStructuredRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := logger.New(logger.LoggerConfig{Level: "warn", Output: &buf})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept", slog.String("verb", "hablar"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "records below the configured level are filtered")

	entry := parseLogEntry(t, lines[0])
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "hablar", entry["verb"])
}

func TestNewTextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := logger.New(logger.LoggerConfig{Level: "debug", Format: "TEXT", Output: &buf})
	require.NoError(t, err)

	l.Debug("seeded", slog.Int("count", 30))
	assert.Contains(t, buf.String(), "msg=seeded")
	assert.Contains(t, buf.String(), "count=30")

	_, err = logger.New(logger.LoggerConfig{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	testCases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range testCases {
		got, err := logger.ParseLevel(name)
		require.NoError(t, err, "level %q", name)
		assert.Equal(t, want, got)
	}

	_, err := logger.ParseLevel("fatal")
	assert.Error(t, err)
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	defaultLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	customLogger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{"no logger in context", context.Background(), defaultLogger},
		{"logger in context", logger.WithLogger(context.Background(), customLogger), customLogger},
		{"nil logger is ignored", logger.WithLogger(context.Background(), nil), defaultLogger},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Same(t, tt.expected, logger.FromContextOrDefault(tt.ctx, defaultLogger))
		})
	}

	ctx := logger.WithLogger(context.Background(), customLogger)
	assert.Same(t, customLogger, logger.FromContext(ctx))
	assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
}

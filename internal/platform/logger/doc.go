// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package. It also carries request-scoped
// loggers through context.Context.
package logger

// Package logging defines the structured-logging interface used across the
// client. Implementations wrap slog or zap; New picks one from configuration.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "token refreshed", "request_id", id, "status", code)
type Logger interface {
	// Debug logs diagnostic details that are off by default.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a Logger writing to w. backend selects the implementation
// (BackendSlog when empty or unknown) and level is one of debug, info,
// warn or error (info when unknown).
func New(backend, level string, w io.Writer) Logger {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendZap:
		return NewZapLogger(newZapCore(w, level))
	default:
		return NewSlogLogger(newSlog(w, level))
	}
}

// Nop returns a Logger that drops everything.
func Nop() Logger {
	return NewSlogLogger(newSlog(io.Discard, "error"))
}

// parseLevel maps a configured level name to a slog level. Both backends use
// it so they agree on the accepted names.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

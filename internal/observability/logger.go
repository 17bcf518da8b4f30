package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxKey string

const (
	ctxKeySessionID ctxKey = "session_id"
)

// basic global logger, JSON to stderr so it stays out of the console surface.
var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

// Init replaces the global logger. Call it once at startup.
func Init(w io.Writer, level slog.Level, json bool) {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		logger = slog.New(slog.NewJSONHandler(w, opts))
		return
	}
	logger = slog.New(slog.NewTextHandler(w, opts))
}

func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// WithSessionID stores a session_id in the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, sessionID)
}

// LoggerFromContext adds session_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	sessionID, _ := ctx.Value(ctxKeySessionID).(string)
	if sessionID == "" {
		return logger
	}
	return logger.With("session_id", sessionID)
}

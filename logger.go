package blinktree

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with blinktree-specific helpers. The tree core
// never logs on hot paths; the facade logs operations at Debug level, Reset
// at Info level and rejected inserts at Error level.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// a text handler to stderr at Info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(key any, err error) {
	if err != nil {
		l.Error("insert failed",
			"key", key,
			"error", err,
		)
	} else {
		l.Debug("insert completed",
			"key", key,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(key any, removed bool) {
	l.Debug("remove completed",
		"key", key,
		"removed", removed,
	)
}

// LogRangeLookup logs a range lookup operation.
func (l *Logger) LogRangeLookup(minKey any, requested, copied int) {
	l.Debug("range lookup completed",
		"min_key", minKey,
		"requested", requested,
		"copied", copied,
	)
}

// LogReset logs a reset operation.
func (l *Logger) LogReset(entries int64) {
	l.Info("tree reset",
		"entries", entries,
	)
}

package confgraph

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with confgraph-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
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

// LogSample logs a subgraph sampling outcome.
func (l *Logger) LogSample(ctx context.Context, name string, seed int64, kept int, miss bool) {
	if miss {
		l.DebugContext(ctx, "sampling miss",
			"name", name,
			"seed", seed,
		)
	} else {
		l.DebugContext(ctx, "subgraph sampled",
			"name", name,
			"seed", seed,
			"atoms", kept,
		)
	}
}

// LogPack logs a packing operation.
func (l *Logger) LogPack(ctx context.Context, molecules, conformers int) {
	l.InfoContext(ctx, "conformers packed",
		"molecules", molecules,
		"conformations", conformers,
	)
}

// LogSplit logs a dataset split.
func (l *Logger) LogSplit(ctx context.Context, train, valid, test int, seed int64) {
	l.InfoContext(ctx, "dataset split",
		"train", train,
		"valid", valid,
		"test", test,
		"seed", seed,
	)
}

// LogSnapshot logs a snapshot save/load.
func (l *Logger) LogSnapshot(ctx context.Context, name string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"name", name,
			"records", records,
		)
	}
}

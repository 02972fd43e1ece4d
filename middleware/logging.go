package middleware

import (
	"context"
	"time"

	"github.com/andrescamacho/mediator-go/mediator"
)

// Logger provides logging functionality for dispatch operations
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
	// Do nothing
}

// Logging creates middleware that logs every dispatch with its duration and
// outcome. The logger travels on the context; without one this is a no-op.
func Logging() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": elapsed.Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("ERROR", "dispatch failed", metadata)
			return nil, err
		}
		logger.Log("INFO", "dispatch completed", metadata)
		return response, nil
	}
}

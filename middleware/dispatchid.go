package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrescamacho/mediator-go/mediator"
)

const (
	dispatchIDKey contextKey = iota + 100 // offset from logger keys
)

// WithDispatchID injects a dispatch correlation ID into the context
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey, id)
}

// DispatchIDFromContext extracts the dispatch correlation ID from context.
// Returns an empty string when no dispatch ID middleware ran.
func DispatchIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(dispatchIDKey).(string); ok {
		return id
	}
	return ""
}

// DispatchID creates middleware that assigns a fresh correlation ID to each
// dispatch that does not already carry one. Nested dispatches issued by a
// handler through the same context reuse the outer ID.
func DispatchID() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if DispatchIDFromContext(ctx) == "" {
			ctx = WithDispatchID(ctx, uuid.New().String())
		}
		return next(ctx, request)
	}
}

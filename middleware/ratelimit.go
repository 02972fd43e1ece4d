package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/mediator-go/mediator"
)

// RateLimit creates middleware that throttles dispatches through a shared
// token-bucket limiter. Waiting respects the dispatch context, so a cancelled
// or expired context aborts before the handler runs.
func RateLimit(limiter *rate.Limiter) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		return next(ctx, request)
	}
}

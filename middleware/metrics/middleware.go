package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/mediator-go/mediator"
	"github.com/andrescamacho/mediator-go/middleware"
)

// Middleware creates middleware that records dispatch execution metrics
//
// This middleware wraps every dispatch and records:
// - Execution duration (histogram)
// - Success/failure counts (counter)
//
// Request names are extracted via reflection and simplified to remove package
// prefixes, so "*commands.PingCommand" is recorded as "PingCommand".
func Middleware(collector *DispatchCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		requestName := middleware.RequestName(request)

		start := time.Now()
		response, err := next(ctx, request)
		duration := time.Since(start).Seconds()

		collector.RecordDispatch(requestName, duration, err == nil)

		return response, err
	}
}

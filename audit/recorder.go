package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/mediator-go/mediator"
	"github.com/andrescamacho/mediator-go/middleware"
)

// Recorder writes dispatch activity to the audit store. It can observe
// requests as a notification (request seen, result-independent) and wrap the
// pipeline as middleware (outcome and duration).
type Recorder struct {
	store *Store
}

// NewRecorder creates a recorder backed by the given store
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

// Notify implements mediator.Notification. Register it against mediator.Any
// to audit every request that completes a dispatch.
func (r *Recorder) Notify(ctx context.Context, request mediator.Request) error {
	return r.store.Save(ctx, &Record{
		ID:          uuid.New().String(),
		DispatchID:  middleware.DispatchIDFromContext(ctx),
		RequestType: middleware.RequestName(request),
		Status:      StatusObserved,
		CreatedAt:   time.Now().UTC(),
	})
}

// Middleware returns pipeline middleware that records each dispatch outcome
// with its duration. Handler errors pass through unmodified; a failing write
// to the store surfaces as the dispatch error only when the handler succeeded.
func (r *Recorder) Middleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		start := time.Now()
		response, err := next(ctx, request)

		record := &Record{
			ID:          uuid.New().String(),
			DispatchID:  middleware.DispatchIDFromContext(ctx),
			RequestType: middleware.RequestName(request),
			Status:      StatusSuccess,
			DurationMs:  time.Since(start).Milliseconds(),
			CreatedAt:   time.Now().UTC(),
		}
		if err != nil {
			record.Status = StatusError
			record.Error = err.Error()
		}

		if saveErr := r.store.Save(ctx, record); saveErr != nil && err == nil {
			return nil, saveErr
		}
		return response, err
	}
}

var _ mediator.Notification = (*Recorder)(nil)

package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/mediator-go/mediator"
)

// RecordingNotification is a test double that remembers every request it saw
type RecordingNotification struct {
	mu   sync.Mutex
	seen []mediator.Request
}

// NewRecordingNotification creates an empty recorder
func NewRecordingNotification() *RecordingNotification {
	return &RecordingNotification{}
}

// Notify implements mediator.Notification
func (r *RecordingNotification) Notify(ctx context.Context, request mediator.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, request)
	return nil
}

// Seen returns a copy of the recorded requests
func (r *RecordingNotification) Seen() []mediator.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mediator.Request{}, r.seen...)
}

// Count returns how many requests were recorded
func (r *RecordingNotification) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

var _ mediator.Notification = (*RecordingNotification)(nil)

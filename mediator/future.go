package mediator

import "context"

// Future is the deferred result of SendAsync. It is safe to Await from
// multiple goroutines; the dispatch runs once.
type Future struct {
	done     chan struct{}
	response Response
	err      error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) complete(response Response, err error) {
	f.response = response
	f.err = err
	close(f.done)
}

// Await blocks until the dispatch completes or ctx is done.
func (f *Future) Await(ctx context.Context) (Response, error) {
	select {
	case <-f.done:
		return f.response, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the dispatch completes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

var _ Deferred = (*Future)(nil)

package mediator

import "context"

// pipeline composes the matched behaviors and the terminal handler into an
// onion-style invocation chain. The chain is virtual: each continuation
// captures the remaining suffix and advances exactly one step when called.
type pipeline struct {
	behaviors []Behavior
	handler   RequestHandler
}

// run executes the chain b0 → b1 → … → handler. A behavior that never calls
// next short-circuits the suffix and its own return value becomes the
// pipeline result. With no behaviors the pipeline degenerates to the bare
// handler call. Every hop's result passes through resolveDeferred, so a
// synchronous behavior can wrap a deferred handler and vice versa.
func (p *pipeline) run(ctx context.Context, request Request) (Response, error) {
	var step func(ctx context.Context, request Request, i int) (Response, error)
	step = func(ctx context.Context, request Request, i int) (Response, error) {
		if i >= len(p.behaviors) {
			// terminal link: the handler cannot call next
			response, err := p.handler.Handle(ctx, request)
			return resolveDeferred(ctx, response, err)
		}
		next := HandlerFunc(func(ctx context.Context, request Request) (Response, error) {
			return step(ctx, request, i+1)
		})
		response, err := p.behaviors[i].Handle(ctx, request, next)
		return resolveDeferred(ctx, response, err)
	}
	return step(ctx, request, 0)
}

// resolveDeferred unwraps Deferred results until a plain value remains.
// Errors pass through unmodified.
func resolveDeferred(ctx context.Context, response Response, err error) (Response, error) {
	if err != nil {
		return nil, err
	}
	for {
		deferred, ok := response.(Deferred)
		if !ok {
			return response, nil
		}
		response, err = deferred.Await(ctx)
		if err != nil {
			return nil, err
		}
	}
}

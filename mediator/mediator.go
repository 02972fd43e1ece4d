package mediator

import (
	"context"
	"reflect"
)

// Mediator dispatches requests to their handlers through the registered
// behavior pipeline and fans out to matching notifications afterwards
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	SendAsync(ctx context.Context, request Request) *Future
	Register(requestType reflect.Type, handler any) error
	RegisterBehavior(requestType reflect.Type, behavior any) error
	RegisterNotification(requestType reflect.Type, notification any) error
	Reset()
}

// mediator is the concrete implementation
type mediator struct {
	registry  *Registry
	validator Validator
	factory   Factory
}

// Option configures a mediator at construction time
type Option func(*mediator)

// WithValidator replaces the validation collaborator
func WithValidator(v Validator) Option {
	return func(m *mediator) { m.validator = v }
}

// WithFactory replaces the instance factory used to construct registered
// type references per dispatch. Use this to plug in a DI container.
func WithFactory(f Factory) Option {
	return func(m *mediator) { m.factory = f }
}

// WithRegistry shares an existing registry between mediator instances
func WithRegistry(r *Registry) Option {
	return func(m *mediator) { m.registry = r }
}

// NewMediator creates a new mediator instance with its own registry
func NewMediator(opts ...Option) Mediator {
	m := &mediator{
		registry:  NewRegistry(),
		validator: defaultValidator{},
		factory:   defaultFactory,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register binds a handler to a concrete request type. The first registration
// for a type wins; later registrations for the same type are silently ignored.
func (m *mediator) Register(requestType reflect.Type, handler any) error {
	if err := m.validator.ValidateHandler(requestType, handler); err != nil {
		return err
	}
	m.registry.AddHandler(requestType, handler)
	return nil
}

// RegisterBehavior binds a behavior to a request type, an interface the
// request type satisfies, or the Any wildcard
func (m *mediator) RegisterBehavior(requestType reflect.Type, behavior any) error {
	if err := m.validator.ValidateBehavior(requestType, behavior); err != nil {
		return err
	}
	m.registry.AddBehavior(requestType, behavior)
	return nil
}

// RegisterNotification binds a post-dispatch observer to a request type, an
// interface the request type satisfies, or the Any wildcard
func (m *mediator) RegisterNotification(requestType reflect.Type, notification any) error {
	if err := m.validator.ValidateNotification(requestType, notification); err != nil {
		return err
	}
	m.registry.AddNotification(requestType, notification)
	return nil
}

// Reset clears all registrations. Intended for test isolation, not hot-reload.
func (m *mediator) Reset() {
	m.registry.Reset()
}

// Send dispatches a request through the pipeline and blocks for the result
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	return m.dispatch(ctx, request)
}

// SendAsync dispatches a request on its own goroutine and returns a Future.
// Semantics are identical to Send; ordering within the dispatch is preserved
// because the whole call tree runs on that one goroutine.
func (m *mediator) SendAsync(ctx context.Context, request Request) *Future {
	future := newFuture()
	go func() {
		future.complete(m.dispatch(ctx, request))
	}()
	return future
}

// dispatch is the single call tree behind Send and SendAsync:
// validate → match → compose pipeline → run → fan out.
func (m *mediator) dispatch(ctx context.Context, request Request) (Response, error) {
	if err := m.validator.ValidateRequest(request); err != nil {
		return nil, err
	}

	requestType := reflect.TypeOf(request)
	target, found := m.registry.Handler(requestType)
	notifications := m.registry.MatchNotifications(requestType)

	if !found {
		// No handler but at least one observer: skip the pipeline, fan out,
		// and return an empty result. Otherwise the dispatch fails.
		if len(notifications) == 0 {
			return nil, m.validator.ValidateHandlerFound(requestType, nil)
		}
		if err := m.fanOut(ctx, request, notifications); err != nil {
			return nil, err
		}
		return nil, nil
	}

	handler, err := m.resolveHandler(target)
	if err != nil {
		return nil, err
	}

	matched := m.registry.MatchBehaviors(requestType)
	behaviors := make([]Behavior, 0, len(matched))
	for _, t := range matched {
		behavior, err := m.resolveBehavior(t)
		if err != nil {
			return nil, err
		}
		behaviors = append(behaviors, behavior)
	}

	p := &pipeline{behaviors: behaviors, handler: handler}
	result, err := p.run(ctx, request)
	if err != nil {
		return nil, err
	}

	// The result exists before fan-out starts; a failing notification aborts
	// the remaining observers and surfaces to the caller.
	if err := m.fanOut(ctx, request, notifications); err != nil {
		return nil, err
	}
	return result, nil
}

// fanOut invokes matched notifications sequentially, in matched order,
// fail-fast. Observers are not isolated from each other.
func (m *mediator) fanOut(ctx context.Context, request Request, targets []any) error {
	for _, t := range targets {
		notification, err := m.resolveNotification(t)
		if err != nil {
			return err
		}
		if err := notification.Notify(ctx, request); err != nil {
			return err
		}
	}
	return nil
}

// RegisterHandler registers a handler with type inference:
// mediator.RegisterHandler[*PingCommand](m, handler)
func RegisterHandler[T Request](m Mediator, handler any) error {
	return m.Register(TypeOf[T](), handler)
}

// RegisterBehaviorFor registers a behavior with type inference. T may be a
// concrete request type or an interface matched by satisfaction.
func RegisterBehaviorFor[T Request](m Mediator, behavior any) error {
	return m.RegisterBehavior(TypeOf[T](), behavior)
}

// RegisterNotificationFor registers a notification with type inference
func RegisterNotificationFor[T Request](m Mediator, notification any) error {
	return m.RegisterNotification(TypeOf[T](), notification)
}

// Use registers middleware against the wildcard so it wraps every dispatch
// (must be done before registering more specific behaviors if global
// middleware should run first)
func Use(m Mediator, mw Middleware) error {
	return m.RegisterBehavior(Any, mw)
}

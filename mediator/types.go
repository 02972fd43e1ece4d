package mediator

import (
	"context"
	"reflect"
)

// Request represents a command or query
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// RequestHandler handles a specific request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is a function that handles a request
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle implements RequestHandler
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Behavior wraps handler execution with cross-cutting concerns.
// A behavior decides whether to call next; returning without calling it
// short-circuits the rest of the pipeline.
type Behavior interface {
	Handle(ctx context.Context, request Request, next HandlerFunc) (Response, error)
}

// Middleware is the function form of Behavior
// Examples: authentication, logging, telemetry, rate limiting, validation
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// Handle implements Behavior
func (f Middleware) Handle(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
	return f(ctx, request, next)
}

// Notification observes a request after the pipeline has produced its result.
// Notifications are side-effecting and cannot alter the dispatch result.
type Notification interface {
	Notify(ctx context.Context, request Request) error
}

// NotificationFunc is the function form of Notification
type NotificationFunc func(ctx context.Context, request Request) error

// Notify implements Notification
func (f NotificationFunc) Notify(ctx context.Context, request Request) error {
	return f(ctx, request)
}

// Deferred is a response that has not been produced yet. Results returned by
// handlers, behaviors and continuations are resolved through Await at every
// pipeline hop, so synchronous and deferred steps compose freely.
type Deferred interface {
	Await(ctx context.Context) (Response, error)
}

// Any is the wildcard binding key: a behavior or notification registered
// against Any matches every request type. Handlers cannot bind to it.
var Any = reflect.TypeOf((*Request)(nil)).Elem()

// TypeOf returns the registry key for the request type T.
// Use a pointer type parameter when handlers receive pointer requests.
func TypeOf[T Request]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

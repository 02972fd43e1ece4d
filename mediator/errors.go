package mediator

import "errors"

// Sentinel errors returned by registration and dispatch. Callers match them
// with errors.Is; dispatch wraps them with the offending type name.
var (
	// ErrNilRequest is returned when Send or SendAsync receives a nil request
	ErrNilRequest = errors.New("mediator: request cannot be nil")

	// ErrHandlerNotFound is returned when no handler and no notification
	// matches the dispatched request type
	ErrHandlerNotFound = errors.New("mediator: no handler registered for request")

	// ErrNotCallable is returned when a registration target is neither a
	// role interface implementation, its function form, nor a resolvable type reference
	ErrNotCallable = errors.New("mediator: target is not callable")

	// ErrInvalidHandler is returned when a handler registration target has the
	// wrong shape, or binds to an interface or wildcard key
	ErrInvalidHandler = errors.New("mediator: invalid handler")

	// ErrInvalidBehavior is returned when a behavior registration target has the wrong shape
	ErrInvalidBehavior = errors.New("mediator: invalid behavior")

	// ErrInvalidNotification is returned when a notification registration target has the wrong shape
	ErrInvalidNotification = errors.New("mediator: invalid notification")
)

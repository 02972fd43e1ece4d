package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// Validator is the collaborator consulted before any registration takes
// effect and before any behavior runs. Replace it to customize what counts as
// a well-formed entry; every method returns a distinct error kind.
type Validator interface {
	ValidateRequest(request Request) error
	ValidateHandler(requestType reflect.Type, target any) error
	ValidateBehavior(requestType reflect.Type, target any) error
	ValidateNotification(requestType reflect.Type, target any) error
	ValidateHandlerFound(requestType reflect.Type, target any) error
}

// defaultValidator enforces the core contracts: non-nil requests, concrete
// handler bindings, and targets that are callable in one of the accepted shapes.
type defaultValidator struct{}

func (defaultValidator) ValidateRequest(request Request) error {
	if request == nil {
		return ErrNilRequest
	}
	return nil
}

func (defaultValidator) ValidateHandler(requestType reflect.Type, target any) error {
	if requestType == nil {
		return fmt.Errorf("%w: missing request type", ErrInvalidHandler)
	}
	if requestType.Kind() == reflect.Interface {
		// handlers bind to exactly one concrete type; interface and
		// wildcard keys are behavior/notification territory
		return fmt.Errorf("%w: cannot bind handler to interface type %s", ErrInvalidHandler, requestType)
	}
	return validateTarget(target, ErrInvalidHandler, func(t any) bool {
		if _, ok := t.(RequestHandler); ok {
			return true
		}
		_, ok := t.(func(ctx context.Context, request Request) (Response, error))
		return ok
	})
}

func (defaultValidator) ValidateBehavior(requestType reflect.Type, target any) error {
	if requestType == nil {
		return fmt.Errorf("%w: missing request type", ErrInvalidBehavior)
	}
	return validateTarget(target, ErrInvalidBehavior, func(t any) bool {
		if _, ok := t.(Behavior); ok {
			return true
		}
		_, ok := t.(func(ctx context.Context, request Request, next HandlerFunc) (Response, error))
		return ok
	})
}

func (defaultValidator) ValidateNotification(requestType reflect.Type, target any) error {
	if requestType == nil {
		return fmt.Errorf("%w: missing request type", ErrInvalidNotification)
	}
	return validateTarget(target, ErrInvalidNotification, func(t any) bool {
		if _, ok := t.(Notification); ok {
			return true
		}
		_, ok := t.(func(ctx context.Context, request Request) error)
		return ok
	})
}

func (defaultValidator) ValidateHandlerFound(requestType reflect.Type, target any) error {
	if target == nil {
		return fmt.Errorf("%w: %s", ErrHandlerNotFound, requestType)
	}
	return nil
}

// validateTarget accepts a role implementation, its raw function form, or a
// type reference the instance factory can construct. Anything else is either
// a malformed function (wrong signature) or not callable at all.
func validateTarget(target any, invalid error, implementsRole func(any) bool) error {
	if target == nil {
		return fmt.Errorf("%w: target is nil", ErrNotCallable)
	}
	if implementsRole(target) {
		return nil
	}
	if _, ok := target.(reflect.Type); ok {
		return nil
	}
	if reflect.TypeOf(target).Kind() == reflect.Func {
		return fmt.Errorf("%w: unexpected signature %T", invalid, target)
	}
	return fmt.Errorf("%w: %T", ErrNotCallable, target)
}

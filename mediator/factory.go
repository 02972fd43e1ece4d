package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// Factory converts a registered type reference into a live instance at the
// moment it is needed for a dispatch. The second argument distinguishes
// behavior construction so dependency-injection containers can branch on role.
type Factory func(typeRef reflect.Type, isBehavior bool) (any, error)

// defaultFactory constructs type references by parameterless construction:
// a pointer to a fresh zero value of the referenced struct type.
func defaultFactory(typeRef reflect.Type, isBehavior bool) (any, error) {
	t := typeRef
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: cannot construct %s", ErrNotCallable, typeRef)
	}
	return reflect.New(t).Interface(), nil
}

// resolveHandler turns a registered handler target into a RequestHandler,
// constructing type references through the factory per dispatch.
func (m *mediator) resolveHandler(target any) (RequestHandler, error) {
	switch h := target.(type) {
	case RequestHandler:
		return h, nil
	case func(ctx context.Context, request Request) (Response, error):
		return HandlerFunc(h), nil
	case reflect.Type:
		instance, err := m.factory(h, false)
		if err != nil {
			return nil, err
		}
		handler, ok := instance.(RequestHandler)
		if !ok {
			return nil, fmt.Errorf("%w: %s does not implement RequestHandler", ErrInvalidHandler, h)
		}
		return handler, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidHandler, target)
}

// resolveBehavior turns a registered behavior target into a Behavior.
func (m *mediator) resolveBehavior(target any) (Behavior, error) {
	switch b := target.(type) {
	case Behavior:
		return b, nil
	case func(ctx context.Context, request Request, next HandlerFunc) (Response, error):
		return Middleware(b), nil
	case reflect.Type:
		instance, err := m.factory(b, true)
		if err != nil {
			return nil, err
		}
		behavior, ok := instance.(Behavior)
		if !ok {
			return nil, fmt.Errorf("%w: %s does not implement Behavior", ErrInvalidBehavior, b)
		}
		return behavior, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidBehavior, target)
}

// resolveNotification turns a registered notification target into a Notification.
func (m *mediator) resolveNotification(target any) (Notification, error) {
	switch n := target.(type) {
	case Notification:
		return n, nil
	case func(ctx context.Context, request Request) error:
		return NotificationFunc(n), nil
	case reflect.Type:
		instance, err := m.factory(n, false)
		if err != nil {
			return nil, err
		}
		notification, ok := instance.(Notification)
		if !ok {
			return nil, fmt.Errorf("%w: %s does not implement Notification", ErrInvalidNotification, n)
		}
		return notification, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidNotification, target)
}

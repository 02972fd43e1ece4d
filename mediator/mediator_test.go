package mediator_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mediator-go/mediator"
)

// Test request types

type PingCommand struct {
	Message string
}

type EchoQuery struct {
	Text string
}

// Audited marks requests matched by interface-keyed behaviors/notifications
type Audited interface {
	AuditName() string
}

type AuditedCommand struct{}

func (*AuditedCommand) AuditName() string { return "audited" }

// Handlers

type pingHandler struct {
	calls int
}

func (h *pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	return "ok", nil
}

// recorder collects the requests a notification observed
type recorder struct {
	seen []mediator.Request
}

func (r *recorder) Notify(ctx context.Context, request mediator.Request) error {
	r.seen = append(r.seen, request)
	return nil
}

func TestSend_DispatchesToRegisteredHandler(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, handler))

	passThrough := mediator.Middleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return next(ctx, request)
	})
	require.NoError(t, mediator.RegisterBehaviorFor[*PingCommand](m, passThrough))

	seen := &recorder{}
	require.NoError(t, m.RegisterNotification(mediator.Any, seen))

	// Act
	request := &PingCommand{Message: "hello"}
	response, err := m.Send(context.Background(), request)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", response)
	assert.Equal(t, 1, handler.calls)
	require.Len(t, seen.seen, 1)
	assert.Same(t, request, seen.seen[0])
}

func TestRegister_FirstRegistrationWins(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	first := &pingHandler{}
	second := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, first))

	// Act - second registration for the same type is a silent no-op
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, second))
	_, err := m.Send(context.Background(), &PingCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestSend_NoHandlerNoNotification_Fails(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &PingCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, mediator.ErrHandlerNotFound)
}

func TestSend_NoHandlerWithNotification_FansOutAndReturnsEmpty(t *testing.T) {
	// Arrange - only an observer, no handler
	m := mediator.NewMediator()
	seen := &recorder{}
	require.NoError(t, mediator.RegisterNotificationFor[*EchoQuery](m, seen))

	// Act
	request := &EchoQuery{Text: "unheard"}
	response, err := m.Send(context.Background(), request)

	// Assert - no error, empty result, observer invoked exactly once
	require.NoError(t, err)
	assert.Nil(t, response)
	require.Len(t, seen.seen, 1)
	assert.Same(t, request, seen.seen[0])
}

func TestSend_BehaviorsRunInRegistrationOrder(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	var order []string

	for _, name := range []string{"b0", "b1", "b2"} {
		name := name
		mw := mediator.Middleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name)
			return next(ctx, request)
		})
		require.NoError(t, mediator.RegisterBehaviorFor[*PingCommand](m, mw))
	}

	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, handler))

	// Act
	_, err := m.Send(context.Background(), &PingCommand{})

	// Assert - b0 → b1 → b2 → handler, handler exactly once
	require.NoError(t, err)
	assert.Equal(t, []string{"b0", "b1", "b2"}, order)
	assert.Equal(t, 1, handler.calls)
}

func TestSend_BehaviorShortCircuitsPipeline(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, handler))

	shortCircuit := mediator.Middleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return "cached", nil // never calls next
	})
	require.NoError(t, mediator.RegisterBehaviorFor[*PingCommand](m, shortCircuit))

	laterRan := false
	later := mediator.Middleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		laterRan = true
		return next(ctx, request)
	})
	require.NoError(t, mediator.RegisterBehaviorFor[*PingCommand](m, later))

	// Act
	response, err := m.Send(context.Background(), &PingCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "cached", response)
	assert.Equal(t, 0, handler.calls)
	assert.False(t, laterRan)
}

func TestSend_WildcardMatchesTypesRegisteredLater(t *testing.T) {
	// Arrange - wildcard observer registered before the handler's type exists
	m := mediator.NewMediator()
	seen := &recorder{}
	require.NoError(t, m.RegisterNotification(mediator.Any, seen))

	var wildcardRan bool
	mw := mediator.Middleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		wildcardRan = true
		return next(ctx, request)
	})
	require.NoError(t, m.RegisterBehavior(mediator.Any, mw))

	require.NoError(t, mediator.RegisterHandler[*EchoQuery](m, &pingHandler{}))

	// Act
	_, err := m.Send(context.Background(), &EchoQuery{})

	// Assert
	require.NoError(t, err)
	assert.True(t, wildcardRan)
	assert.Len(t, seen.seen, 1)
}

func TestSend_InterfaceKeyMatchesBySatisfaction(t *testing.T) {
	// Arrange - behavior and notification bound to an interface key
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*AuditedCommand](m, &pingHandler{}))

	var matched bool
	mw := mediator.Middleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		matched = true
		return next(ctx, request)
	})
	require.NoError(t, mediator.RegisterBehaviorFor[Audited](m, mw))

	seen := &recorder{}
	require.NoError(t, mediator.RegisterNotificationFor[Audited](m, seen))

	// Act
	_, err := m.Send(context.Background(), &AuditedCommand{})

	// Assert
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Len(t, seen.seen, 1)

	// A non-Audited request must not match the interface key
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, &pingHandler{}))
	matched = false
	_, err = m.Send(context.Background(), &PingCommand{})
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Len(t, seen.seen, 1)
}

func TestRegister_HandlerCannotBindInterfaceKey(t *testing.T) {
	m := mediator.NewMediator()

	err := m.Register(mediator.Any, &pingHandler{})

	require.Error(t, err)
	assert.ErrorIs(t, err, mediator.ErrInvalidHandler)
}

func TestRegister_RejectsNonCallableAndBadSignatures(t *testing.T) {
	m := mediator.NewMediator()
	key := mediator.TypeOf[*PingCommand]()

	// Not callable at all
	err := m.Register(key, 42)
	assert.ErrorIs(t, err, mediator.ErrNotCallable)

	// A function with an undiscoverable shape
	err = m.Register(key, func(s string) {})
	assert.ErrorIs(t, err, mediator.ErrInvalidHandler)

	err = m.RegisterBehavior(key, func(s string) {})
	assert.ErrorIs(t, err, mediator.ErrInvalidBehavior)

	err = m.RegisterNotification(key, func(s string) {})
	assert.ErrorIs(t, err, mediator.ErrInvalidNotification)
}

func TestSend_NilRequest(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)

	assert.ErrorIs(t, err, mediator.ErrNilRequest)
}

func TestReset_EmptiesAllTables(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, &pingHandler{}))
	require.NoError(t, m.RegisterNotification(mediator.Any, &recorder{}))

	// Act
	m.Reset()
	_, err := m.Send(context.Background(), &PingCommand{})

	// Assert - previously registered type now fails to resolve
	assert.ErrorIs(t, err, mediator.ErrHandlerNotFound)
}

func TestSendAsync_ReturnsFuture(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "async-ok", nil
	})
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, handler))

	// Act
	future := m.SendAsync(context.Background(), &PingCommand{})
	response, err := future.Await(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "async-ok", response)
}

func TestSendAsync_AwaitHonorsContext(t *testing.T) {
	// Arrange - a handler that blocks until the test releases it
	m := mediator.NewMediator()
	release := make(chan struct{})
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		<-release
		return "late", nil
	})
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, handler))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Act
	future := m.SendAsync(context.Background(), &PingCommand{})
	_, err := future.Await(ctx)
	close(release)

	// Assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// deferredResponse is a pre-completed Deferred used to exercise uniform resolution
type deferredResponse struct {
	value mediator.Response
}

func (d *deferredResponse) Await(ctx context.Context) (mediator.Response, error) {
	return d.value, nil
}

func TestSend_ResolvesDeferredResultsAtEveryHop(t *testing.T) {
	// Arrange - deferred handler wrapped by a synchronous behavior
	m := mediator.NewMediator()
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return &deferredResponse{value: "resolved"}, nil
	})
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, handler))

	var seenByBehavior mediator.Response
	mw := mediator.Middleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		response, err := next(ctx, request)
		seenByBehavior = response
		// the behavior itself answers with a deferred value too
		return &deferredResponse{value: response}, err
	})
	require.NoError(t, mediator.RegisterBehaviorFor[*PingCommand](m, mw))

	// Act
	response, err := m.Send(context.Background(), &PingCommand{})

	// Assert - the continuation already resolved the handler's deferred value,
	// and the behavior's own deferred result was resolved before returning
	require.NoError(t, err)
	assert.Equal(t, "resolved", seenByBehavior)
	assert.Equal(t, "resolved", response)
}

func TestSend_ErrorsPropagateUnmodified(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	boom := errors.New("handler exploded")
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, boom
	})
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, handler))

	seen := &recorder{}
	require.NoError(t, m.RegisterNotification(mediator.Any, seen))

	// Act
	_, err := m.Send(context.Background(), &PingCommand{})

	// Assert - the error surfaces as-is and fan-out never starts
	assert.Same(t, boom, err)
	assert.Empty(t, seen.seen)
}

func TestSend_NotificationFailureAbortsRemainingObservers(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, &pingHandler{}))

	failing := mediator.NotificationFunc(func(ctx context.Context, request mediator.Request) error {
		return fmt.Errorf("observer down")
	})
	require.NoError(t, mediator.RegisterNotificationFor[*PingCommand](m, failing))

	later := &recorder{}
	require.NoError(t, m.RegisterNotification(mediator.Any, later))

	// Act
	_, err := m.Send(context.Background(), &PingCommand{})

	// Assert - fail-fast, the wildcard observer after the failure never runs
	require.Error(t, err)
	assert.Empty(t, later.seen)
}

// typedHandler is constructed per dispatch through the instance factory
type typedHandler struct{}

func (*typedHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return "constructed", nil
}

func TestSend_TypeReferenceResolvedThroughFactory(t *testing.T) {
	// Arrange - register a type reference, count factory constructions
	constructions := 0
	factory := func(typeRef reflect.Type, isBehavior bool) (any, error) {
		constructions++
		return reflect.New(typeRef.Elem()).Interface(), nil
	}
	m := mediator.NewMediator(mediator.WithFactory(factory))
	require.NoError(t, m.Register(mediator.TypeOf[*PingCommand](), reflect.TypeOf(&typedHandler{})))

	// Act - two dispatches construct two instances
	first, err := m.Send(context.Background(), &PingCommand{})
	require.NoError(t, err)
	second, err := m.Send(context.Background(), &PingCommand{})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "constructed", first)
	assert.Equal(t, "constructed", second)
	assert.Equal(t, 2, constructions)
}

func TestWithRegistry_SharesTablesAcrossMediators(t *testing.T) {
	// Arrange
	registry := mediator.NewRegistry()
	first := mediator.NewMediator(mediator.WithRegistry(registry))
	second := mediator.NewMediator(mediator.WithRegistry(registry))
	require.NoError(t, mediator.RegisterHandler[*PingCommand](first, &pingHandler{}))

	// Act
	response, err := second.Send(context.Background(), &PingCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", response)
}

func TestUse_RegistersWildcardMiddleware(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	var wrapped int
	require.NoError(t, mediator.Use(m, func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		wrapped++
		return next(ctx, request)
	}))
	require.NoError(t, mediator.RegisterHandler[*PingCommand](m, &pingHandler{}))
	require.NoError(t, mediator.RegisterHandler[*EchoQuery](m, &pingHandler{}))

	// Act
	_, err := m.Send(context.Background(), &PingCommand{})
	require.NoError(t, err)
	_, err = m.Send(context.Background(), &EchoQuery{})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 2, wrapped)
}

package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/mediator-go/mediator"
	"github.com/andrescamacho/mediator-go/test/helpers"
)

// DispatchContext holds state for dispatch scenarios
type DispatchContext struct {
	m        mediator.Mediator
	recorder *helpers.RecordingNotification
	order    []string
	response mediator.Response
	err      error
}

// InitializeDispatchScenario registers step definitions for the dispatch features
func InitializeDispatchScenario(sc *godog.ScenarioContext) {
	c := &DispatchContext{}

	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		c.m = mediator.NewMediator()
		c.recorder = helpers.NewRecordingNotification()
		c.order = nil
		c.response = nil
		c.err = nil
		return ctx, nil
	})

	sc.Step(`^a handler for "([^"]*)" returning "([^"]*)"$`, c.aHandlerReturning)
	sc.Step(`^a pass-through behavior for "([^"]*)"$`, c.aPassThroughBehavior)
	sc.Step(`^a wildcard notification recording requests$`, c.aWildcardNotification)
	sc.Step(`^a notification recording requests for "([^"]*)"$`, c.aNotificationFor)
	sc.Step(`^the following behaviors for "([^"]*)":$`, c.theFollowingBehaviors)
	sc.Step(`^a wildcard behavior named "([^"]*)"$`, c.aWildcardBehaviorNamed)
	sc.Step(`^I dispatch a "([^"]*)"$`, c.iDispatch)
	sc.Step(`^I dispatch a nil request$`, c.iDispatchNil)
	sc.Step(`^the mediator is reset$`, c.theMediatorIsReset)
	sc.Step(`^the dispatch should succeed$`, c.theDispatchShouldSucceed)
	sc.Step(`^the dispatch should fail because no handler was found$`, c.shouldFailHandlerNotFound)
	sc.Step(`^the dispatch should fail because the request was nil$`, c.shouldFailNilRequest)
	sc.Step(`^the response should be "([^"]*)"$`, c.theResponseShouldBe)
	sc.Step(`^the response should be empty$`, c.theResponseShouldBeEmpty)
	sc.Step(`^exactly (\d+) notification calls? should be recorded$`, c.notificationCallsRecorded)
	sc.Step(`^the invocation order should be "([^"]*)"$`, c.theInvocationOrderShouldBe)
}

func (c *DispatchContext) requestType(name string) (reflect.Type, error) {
	request, ok := helpers.RequestByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown request type %q", name)
	}
	return reflect.TypeOf(request), nil
}

func (c *DispatchContext) aHandlerReturning(name, response string) error {
	requestType, err := c.requestType(name)
	if err != nil {
		return err
	}
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		c.order = append(c.order, "handler")
		return response, nil
	})
	return c.m.Register(requestType, handler)
}

func (c *DispatchContext) aPassThroughBehavior(name string) error {
	requestType, err := c.requestType(name)
	if err != nil {
		return err
	}
	mw := mediator.Middleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return next(ctx, request)
	})
	return c.m.RegisterBehavior(requestType, mw)
}

func (c *DispatchContext) aWildcardNotification() error {
	return c.m.RegisterNotification(mediator.Any, c.recorder)
}

func (c *DispatchContext) aNotificationFor(name string) error {
	requestType, err := c.requestType(name)
	if err != nil {
		return err
	}
	return c.m.RegisterNotification(requestType, c.recorder)
}

func (c *DispatchContext) theFollowingBehaviors(name string, table *godog.Table) error {
	requestType, err := c.requestType(name)
	if err != nil {
		return err
	}

	// First row is the header: | name | calls next |
	for _, row := range table.Rows[1:] {
		behaviorName := cellValue(table, row, "name")
		callsNext := cellValue(table, row, "calls next") == "yes"

		mw := c.namedBehavior(behaviorName, callsNext)
		if err := c.m.RegisterBehavior(requestType, mw); err != nil {
			return err
		}
	}
	return nil
}

func (c *DispatchContext) aWildcardBehaviorNamed(behaviorName string) error {
	return c.m.RegisterBehavior(mediator.Any, c.namedBehavior(behaviorName, true))
}

// namedBehavior builds a behavior that records its invocation; when callsNext
// is false it short-circuits and answers "short-circuit:<name>"
func (c *DispatchContext) namedBehavior(behaviorName string, callsNext bool) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		c.order = append(c.order, behaviorName)
		if !callsNext {
			return "short-circuit:" + behaviorName, nil
		}
		return next(ctx, request)
	}
}

func (c *DispatchContext) iDispatch(name string) error {
	request, ok := helpers.RequestByName(name)
	if !ok {
		return fmt.Errorf("unknown request type %q", name)
	}
	c.response, c.err = c.m.Send(context.Background(), request)
	return nil
}

func (c *DispatchContext) iDispatchNil() error {
	c.response, c.err = c.m.Send(context.Background(), nil)
	return nil
}

func (c *DispatchContext) theMediatorIsReset() error {
	c.m.Reset()
	return nil
}

func (c *DispatchContext) theDispatchShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got error: %v", c.err)
	}
	return nil
}

func (c *DispatchContext) shouldFailHandlerNotFound() error {
	if !errors.Is(c.err, mediator.ErrHandlerNotFound) {
		return fmt.Errorf("expected ErrHandlerNotFound, got: %v", c.err)
	}
	return nil
}

func (c *DispatchContext) shouldFailNilRequest() error {
	if !errors.Is(c.err, mediator.ErrNilRequest) {
		return fmt.Errorf("expected ErrNilRequest, got: %v", c.err)
	}
	return nil
}

func (c *DispatchContext) theResponseShouldBe(expected string) error {
	actual, ok := c.response.(string)
	if !ok || actual != expected {
		return fmt.Errorf("expected response %q, got %v", expected, c.response)
	}
	return nil
}

func (c *DispatchContext) theResponseShouldBeEmpty() error {
	if c.response != nil {
		return fmt.Errorf("expected empty response, got %v", c.response)
	}
	return nil
}

func (c *DispatchContext) notificationCallsRecorded(expected int) error {
	if c.recorder.Count() != expected {
		return fmt.Errorf("expected %d recorded notifications, got %d", expected, c.recorder.Count())
	}
	return nil
}

func (c *DispatchContext) theInvocationOrderShouldBe(expected string) error {
	actual := strings.Join(c.order, ",")
	if actual != expected {
		return fmt.Errorf("expected order %q, got %q", expected, actual)
	}
	return nil
}

// cellValue gets a cell value from a table row by column name, using the
// first row as the header
func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, header := range table.Rows[0].Cells {
		if header.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

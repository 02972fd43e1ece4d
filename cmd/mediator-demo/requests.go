package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/mediator-go/mediator"
)

// Sample requests dispatched by the run command

// PingCommand expects a pong with its message echoed back
type PingCommand struct {
	Message string `validate:"required"`
	Fail    bool
}

// ShoutQuery upper-cases its text
type ShoutQuery struct {
	Text string `validate:"required"`
}

type pingHandler struct{}

func (*pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd := request.(*PingCommand)
	if cmd.Fail {
		return nil, fmt.Errorf("ping rejected: %s", cmd.Message)
	}
	return "pong: " + cmd.Message, nil
}

type shoutHandler struct{}

func (*shoutHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query := request.(*ShoutQuery)
	return strings.ToUpper(query.Text), nil
}

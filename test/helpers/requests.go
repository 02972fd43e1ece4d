package helpers

import (
	"github.com/andrescamacho/mediator-go/mediator"
)

// Request types shared by the BDD scenarios. The scenarios refer to them by
// name, so keep the names stable.

type PingCommand struct{}

type OrderCommand struct{}

type UnroutedCommand struct{}

// RequestByName maps a scenario name to a fresh request instance
func RequestByName(name string) (mediator.Request, bool) {
	switch name {
	case "PingCommand":
		return &PingCommand{}, true
	case "OrderCommand":
		return &OrderCommand{}, true
	case "UnroutedCommand":
		return &UnroutedCommand{}, true
	}
	return nil, false
}

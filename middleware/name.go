package middleware

import (
	"reflect"
	"strings"

	"github.com/andrescamacho/mediator-go/mediator"
)

// RequestName extracts a clean request name via reflection
// Examples:
//   - "*commands.CreateOrderCommand" → "CreateOrderCommand"
//   - "*queries.GetOrderStatusQuery" → "GetOrderStatusQuery"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := reflect.TypeOf(request).String()
	fullName = strings.TrimPrefix(fullName, "*")

	parts := strings.Split(fullName, ".")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return fullName
}

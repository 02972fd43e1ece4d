package middleware

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/mediator-go/mediator"
)

// Validation creates middleware that validates struct requests with
// go-playground/validator tags before the handler runs. Non-struct requests
// pass through untouched. A failing request never reaches the handler.
func Validation() mediator.Middleware {
	validate := validator.New()
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if isStruct(request) {
			if err := validate.Struct(request); err != nil {
				return nil, formatValidationError(request, err)
			}
		}
		return next(ctx, request)
	}
}

func isStruct(request mediator.Request) bool {
	t := reflect.TypeOf(request)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(request mediator.Request, err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var messages []string
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Field(),
			e.Tag(),
			e.Value(),
		))
	}
	return fmt.Errorf("%s validation failed:\n  %s", RequestName(request), strings.Join(messages, "\n  "))
}

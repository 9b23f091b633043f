package navigator

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when request validation fails.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports which request field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateName is returned when a user name is already taken.
var ErrDuplicateName = errors.New("user with this name already exists")

// ValidationError reports a field that violates a data-model constraint.
// Validation failures block persistence entirely.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MissingFieldError reports a required request field that was not supplied.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

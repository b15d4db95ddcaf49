package domain

import (
	"errors"
	"strings"
)

// ErrInvalidCredentials covers both unknown email and wrong password so a
// login failure never reveals which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError aggregates field constraint violations. The message joins
// every violation with commas so clients can map messages back to fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, ",")
}

// NewValidationError builds a ValidationError from violation messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package workout

import (
	"errors"
	"fmt"
)

var ErrSessionNotFound = errors.New("session not found")

// ValidationError is returned when an operation input is malformed or missing.
// The operation is rejected as a whole, nothing is persisted.
type ValidationError struct {
	Op    string
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Field, e.Msg)
}

// NotFoundError is returned when a session id does not resolve in the store.
type NotFoundError struct {
	Op string
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: session [%s] not found", e.Op, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrSessionNotFound
}

// ExternalServiceError wraps failures of the advice generator or the label detection
// service, including responses that could not be parsed.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Service, e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr) || errors.Is(err, ErrSessionNotFound)
}

func IsExternalService(err error) bool {
	var esErr *ExternalServiceError
	return errors.As(err, &esErr)
}

func newValidationError(op, field, msg string) *ValidationError {
	return &ValidationError{Op: op, Field: field, Msg: msg}
}

package usecase

import (
	"errors"
	"fmt"

	"home-services/pkg/utils"
)

// Sentinel errors returned by the services. Handlers map them to HTTP
// status codes with errors.Is; anything else is an internal error.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError carries per-field messages along with ErrValidation.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func validate(data any) error {
	if errs := utils.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Message: "validation failed", Fields: errs}
	}
	return nil
}

// clientError is an error whose message is safe to show to the caller.
type clientError struct {
	kind error
	msg  string
}

func (e *clientError) Error() string { return e.msg }
func (e *clientError) Unwrap() error { return e.kind }

func notFound(format string, args ...any) error {
	return &clientError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &clientError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func unauthorized(msg string) error {
	return &clientError{kind: ErrUnauthorized, msg: msg}
}

func forbidden(msg string) error {
	return &clientError{kind: ErrForbidden, msg: msg}
}

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
)

// APIFieldError is a field-tagged failure returned by the auth API. It wraps
// the status sentinel for the response code, so errors.Is still matches, and
// carries the field name for form-level highlighting.
type APIFieldError struct {
	Field   string
	Message string

	status error
}

func (e *APIFieldError) Error() string {
	return e.Message
}

func (e *APIFieldError) Unwrap() error {
	return e.status
}

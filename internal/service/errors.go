package service

import "errors"

var (
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrAccountInactive         = errors.New("account is inactive")
	ErrPermissionDenied        = errors.New("permission denied")
)

// ValidationError is a malformed or missing input field. Handlers map it to a
// 400 response tagged with the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a field-tagged validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError is a credential failure. Handlers map it to a 401 response tagged
// with the field the user should correct.
type AuthError struct {
	Field   string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NewAuthError builds a field-tagged authentication failure.
func NewAuthError(field, message string) *AuthError {
	return &AuthError{Field: field, Message: message}
}

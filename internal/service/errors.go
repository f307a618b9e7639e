package service

import "errors"

// ErrNotFound covers both a genuinely missing row and a row owned by another
// user; callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a rejected field before any mutation happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrLoginInProgress = errors.New("login already in progress")
var ErrSessionState = errors.New("operation not allowed in current session state")
var ErrUnauthenticated = errors.New("not authenticated")

// Messages the login flow reports to the user.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserNotFound       = "User not found"
	MsgLoginFailed        = "Login failed"
	MsgMissingFields      = "Please fill in all fields"
)

// ValidationError reports a record that fails a shape, enum, foreign-key or
// uniqueness check. Field uses the json name of the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an operation addressed to an id absent from the store.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// AuthError reports a credential mismatch or an unresolvable user reference.
// Message is shown to the user as is.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

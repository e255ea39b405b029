package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrInvalidState       = errors.New("invalid state")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Storage-level refinements of the kinds above, returned by repositories when
// a constraint in the database rejects a write.
var (
	ErrAlreadyEnrolled     = fmt.Errorf("%w: user already enrolled in event", ErrConflict)
	ErrDuplicateEmail      = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrEventHasEnrollments = fmt.Errorf("%w: event has enrollments", ErrInvalidState)
	ErrLocationInUse       = fmt.Errorf("%w: event location referenced by events", ErrInvalidState)
	ErrLocationReference   = fmt.Errorf("%w: referenced location does not exist", ErrValidation)
)

// Error is a failure with a message meant for API clients. It unwraps to its
// Kind so callers can keep using errors.Is against the sentinels.
type Error struct {
	Kind    error
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError returns an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidationError joins the messages the way clients expect to read them.
func NewValidationError(messages []string) *Error {
	return &Error{
		Kind:    ErrValidation,
		Message: strings.Join(messages, ", "),
		Details: messages,
	}
}

// MessageOf returns the client-facing message carried by err, if any.
func MessageOf(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Message, true
	}
	return "", false
}

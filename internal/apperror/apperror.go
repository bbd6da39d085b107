// Package apperror defines the error taxonomy shared by services and HTTP adaptors.
package apperror

import (
	"errors"
	"net/http"
)

// Kind is the machine-checkable category of a failure.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindStorageFailure  Kind = "storage_failure"
)

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the domain error returned by services.
type Error struct {
	Kind    Kind              // category
	Message string            // human-readable, safe to show to callers
	Fields  map[string]string // per-field validation messages, if any
	Cause   error             // underlying error, never shown to callers
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

var (
	ErrInvalidInput    = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "unauthenticated"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
)

func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// Validation builds an InvalidInput error carrying per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindInvalidInput, Message: "validation failed", Fields: fields}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Storage wraps a persistence failure. The message stays generic.
func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorageFailure, Message: message, Cause: cause}
}

// KindOf reports the kind of err, defaulting to KindStorageFailure for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorageFailure
}

// Package apperr defines the error taxonomy used across the service and its
// mapping to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for status-code mapping at the HTTP boundary.
type Kind int

const (
	// Internal is an unclassified server-side failure.
	Internal Kind = iota
	// Validation is missing or malformed caller input.
	Validation
	// Auth is a missing, invalid or expired session or reset token.
	// Messages stay deliberately non-specific to avoid account enumeration.
	Auth
	// Conflict is a duplicate-registration failure.
	Conflict
	// Upstream is an unreachable or failing weather provider.
	Upstream
	// Config is a missing or invalid server-side configuration value.
	Config
	// NotFound is an unmatched route.
	NotFound
)

// Error is a classified error with a caller-facing message.
type Error struct {
	// Kind selects the default HTTP status.
	Kind Kind
	// Message is the caller-facing error text.
	Message string
	// Err is the wrapped cause, if any. Never shown to callers.
	Err error
	// status overrides the kind's default HTTP status when non-zero.
	status int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithStatus returns e with an explicit HTTP status overriding the kind default.
func (e *Error) WithStatus(code int) *Error {
	e.status = code
	return e
}

// New constructs a classified error with a caller-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs a classified error with a formatted caller-facing message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs a classified error wrapping a cause. The cause is kept for
// logs and errors.Is/As but never rendered to the caller.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// statusByKind maps each kind to its default HTTP status.
var statusByKind = map[Kind]int{
	Internal:   http.StatusInternalServerError,
	Validation: http.StatusBadRequest,
	Auth:       http.StatusUnauthorized,
	Conflict:   http.StatusConflict,
	Upstream:   http.StatusInternalServerError,
	Config:     http.StatusInternalServerError,
	NotFound:   http.StatusNotFound,
}

// StatusOf returns the HTTP status for err. Errors that are not *Error map
// to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		if e.status != 0 {
			return e.status
		}
		if code, ok := statusByKind[e.Kind]; ok {
			return code
		}
	}
	return http.StatusInternalServerError
}

// MessageOf returns the caller-facing message for err. Errors that are not
// *Error yield a generic message so internal details never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// Package fault classifies errors into the kinds the service distinguishes:
// missing references, bad caller input, and geocode upstream failures. The
// HTTP layer maps kinds to status codes; everything else stays a plain
// wrapped error.
package fault

import (
	"errors"
	"fmt"
)

// Code identifies an error kind.
type Code string

const (
	// CodeNotFound marks a lookup of an entity or owner reference that does
	// not exist.
	CodeNotFound Code = "not_found"

	// CodeInvalidInput marks a caller error, e.g. supplying both address and
	// coordinates on a user write.
	CodeInvalidInput Code = "invalid_input"

	// CodeUpstream marks a geocode transport or API failure outside the
	// caller's control.
	CodeUpstream Code = "upstream_unavailable"

	// CodeInternal is the fallback for unclassified errors.
	CodeInternal Code = "internal"
)

// Error is an error carrying a Code. It wraps an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error. A nil err yields nil.
func Wrap(code Code, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first *Error in the chain, or CodeInternal.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return CodeInternal
}

package apperr

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. Matching is done by code only.
var (
	ErrNotFound          = &Error{Code: CodeNotFound}
	ErrForbidden         = &Error{Code: CodeForbidden}
	ErrInvalidState      = &Error{Code: CodeInvalidState}
	ErrInvalidTransition = &Error{Code: CodeInvalidTransition}
	ErrCapacityExceeded  = &Error{Code: CodeCapacityExceeded}
	ErrAlreadyMember     = &Error{Code: CodeAlreadyMember}
	ErrInvalidArgument   = &Error{Code: CodeInvalidArgument}
	ErrUnauthenticated   = &Error{Code: CodeUnauthenticated}
	ErrConfiguration     = &Error{Code: CodeConfiguration}
	ErrInternal          = &Error{Code: CodeInternal}
)

// Error is the domain error type shared by the coordinators and the API.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}

	return false
}

func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Internal wraps a storage or infrastructure failure. Domain errors pass through unchanged.
func Internal(message string, cause error) error {
	if cause == nil {
		return nil
	}

	var e *Error
	if errors.As(cause, &e) {
		return cause
	}

	return Wrap(CodeInternal, message, cause)
}

// CodeOf extracts the code from err, or CodeInternal if err is not a domain error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return CodeInternal
}

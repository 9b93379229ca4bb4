package apierr

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error code carried across the RPC
// boundary.
type Code string

const (
	// CodeInvalidRequest indicates malformed or out-of-range caller input.
	CodeInvalidRequest Code = "InvalidRequest"
	// CodeNotFound indicates a referenced project is absent from the registry.
	CodeNotFound Code = "NotFound"
	// CodeUnavailable indicates an I/O failure, subprocess failure or
	// timeout, or malformed persisted data.
	CodeUnavailable Code = "Unavailable"
)

// Error pairs a Code with a human-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that records cause for unwrapping while keeping the
// wire message free of internal detail.
func Wrap(cause error, code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// CodeOf extracts the Code from err, defaulting to CodeUnavailable for
// errors that did not originate at a validated boundary.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnavailable
}

// MessageOf extracts the wire message from err. Non-Error values fall back
// to their Error() string.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

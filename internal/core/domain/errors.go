package domain

import (
	"errors"
	"fmt"
)

// Error represents a client-side error with a structured error code.
//
// Codes use the format NP-<AREA>-<HTTPSTATUS><SEQ>, where AREA is AUTH, SESS,
// API or STOR. Errors compare by code through errors.Is, so sentinel values
// below can be matched even after WithDetails/WithCause copies.
type Error struct {
	Code    string // Error code (e.g. "NP-AUTH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// ErrorCode extracts the code from an error if it is a domain Error.
func ErrorCode(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Authentication errors (AUTH).
var (
	// ErrLoginFailed indicates the login call was rejected. The message is
	// the generic fallback; the server-supplied error text, when present,
	// is attached via WithDetails.
	ErrLoginFailed = NewError("NP-AUTH-4010", "Login failed")

	// ErrUnauthorized indicates the server rejected the session credential.
	ErrUnauthorized = NewError("NP-AUTH-4011", "session rejected")
)

// Session errors (SESS).
var (
	// ErrNoSession indicates no restorable session is present in the
	// credential store.
	ErrNoSession = NewError("NP-SESS-4040", "no stored session")
)

// API errors (API).
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = NewError("NP-API-4040", "resource not found")

	// ErrBadRequest indicates the server rejected the request payload.
	ErrBadRequest = NewError("NP-API-4000", "bad request")

	// ErrServer indicates a server-side failure.
	ErrServer = NewError("NP-API-5000", "server error")
)

// Storage errors (STOR).
var (
	// ErrStoreWrite indicates the credential store could not persist a value.
	ErrStoreWrite = NewError("NP-STOR-5000", "credential store write failed")

	// ErrStoreSeal indicates the sealed credential file could not be opened
	// with the configured key.
	ErrStoreSeal = NewError("NP-STOR-4000", "credential file seal mismatch")
)

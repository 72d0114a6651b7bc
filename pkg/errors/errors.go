// Package errors provides structured error types for the openlens application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP façade
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map onto the upstream failure taxonomy:
//   - RATE_LIMITED: the API refused the request due to rate limiting
//   - PAGINATION_EXHAUSTED: a search page ran past what the API will serve
//   - FEATURE_DISABLED: a repository feature (e.g. issues) is turned off
//   - INVALID_CREDENTIAL: the supplied token was rejected by the identity endpoint
//   - UPSTREAM_ERROR: any other non-success response from the API
//   - TRANSPORT_FAILURE: the request never produced a response
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUpstream, "endpoint error (status %d)", status)
//	if errors.Is(err, errors.ErrCodeUpstream) {
//	    // Handle upstream error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Upstream failure taxonomy
	ErrCodeRateLimited         Code = "RATE_LIMITED"
	ErrCodePaginationExhausted Code = "PAGINATION_EXHAUSTED"
	ErrCodeFeatureDisabled     Code = "FEATURE_DISABLED"
	ErrCodeInvalidCredential   Code = "INVALID_CREDENTIAL"
	ErrCodeUpstream            Code = "UPSTREAM_ERROR"
	ErrCodeTransport           Code = "TRANSPORT_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidOwner Code = "INVALID_OWNER"
	ErrCodeInvalidRepo  Code = "INVALID_REPO"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeEmptyInput indicates a required input value was empty.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
	// ErrCodeInvalidCharacters indicates an input value contained characters
	// outside the allowed set.
	ErrCodeInvalidCharacters ErrorCode = "INVALID_CHARACTERS"
	// ErrCodeBadFormat indicates an input value did not match the expected
	// syntactic shape, independent of its semantic validity.
	ErrCodeBadFormat ErrorCode = "BAD_FORMAT"
	// ErrCodeUnparsableDate indicates a well-formed date string that does not
	// denote a real calendar date.
	ErrCodeUnparsableDate ErrorCode = "UNPARSABLE_DATE"
	// ErrCodeOutOfRange indicates a value outside its allowed range.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message
// safe to return to clients, and the underlying cause which is logged but never
// surfaced past the HTTP boundary.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a code and client-safe message.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Is delegates to the standard library so callers importing this package
// under the errors name keep the full matching API.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As delegates to the standard library, see Is.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// HTTPStatus maps an error code to the HTTP status used when the error
// crosses the request boundary. This is the single mapping point from the
// error taxonomy to the wire.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeEmptyInput, ErrCodeInvalidCharacters, ErrCodeBadFormat,
		ErrCodeUnparsableDate, ErrCodeOutOfRange:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

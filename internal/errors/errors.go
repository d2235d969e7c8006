// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Type identifies the category of error
type Type string

const (
	// TypeMissingField indicates a required request field was absent or empty
	TypeMissingField Type = "MISSING_FIELD"

	// TypeInvalidType indicates a field was present but not a valid value
	TypeInvalidType Type = "INVALID_TYPE"

	// TypeMethodNotAllowed indicates the wrong HTTP verb
	TypeMethodNotAllowed Type = "METHOD_NOT_ALLOWED"

	// TypeRateLimited indicates the caller exceeded the request budget
	TypeRateLimited Type = "RATE_LIMITED"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// As extracts a typed *Error from anywhere in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := As(err); ok {
		return e.Is(t)
	}
	return false
}

// HTTPStatus maps an error to the status code reported to callers.
// Untyped errors are internal.
func HTTPStatus(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Type {
	case TypeMissingField, TypeInvalidType:
		return http.StatusBadRequest
	case TypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case TypeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// MissingField creates a missing field error
func MissingField(message string) *Error {
	return New(TypeMissingField, message)
}

// InvalidType creates an invalid type error
func InvalidType(message string) *Error {
	return New(TypeInvalidType, message)
}

// MethodNotAllowed creates a method not allowed error
func MethodNotAllowed(message string) *Error {
	return New(TypeMethodNotAllowed, message)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a category of failure shared across the CLI, web,
// and MCP surfaces.
type ErrorCode string

const (
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrAlreadyExists       ErrorCode = "ALREADY_EXISTS"       // 409
	ErrContentTooLarge     ErrorCode = "CONTENT_TOO_LARGE"    // 413
	ErrProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE" // 502
	ErrCancelled           ErrorCode = "CANCELLED"            // 499
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// Error is a structured error with a stable code, an HTTP-ish status, and
// optional machine-readable details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing text, word, or note.
func NewNotFound(kind, identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewAlreadyExists creates a 409 error for title collisions.
func NewAlreadyExists(kind, name string) *Error {
	return &Error{
		Code:    ErrAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("%s %q already exists", kind, name),
		Details: map[string]any{"kind": kind, "name": name},
	}
}

// NewContentTooLarge creates a 413 error when a text exceeds the size limit.
func NewContentTooLarge(max, actual int) *Error {
	return &Error{
		Code:    ErrContentTooLarge,
		Status:  413,
		Message: fmt.Sprintf("content exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewProviderUnavailable creates a 502 error when an AI provider cannot be
// reached or is not configured.
func NewProviderUnavailable(provider string, err error) *Error {
	e := &Error{
		Code:    ErrProviderUnavailable,
		Status:  502,
		Message: fmt.Sprintf("provider %q unavailable", provider),
		Details: map[string]any{"provider": provider},
	}
	if err != nil {
		e.Details["cause"] = err.Error()
	}
	return e
}

// NewCancelled creates an error for a request cancelled by its context.
func NewCancelled() *Error {
	return &Error{
		Code:    ErrCancelled,
		Status:  499,
		Message: "request cancelled",
	}
}

// NewInternal creates a 500 error for unexpected internal errors. The
// message stays generic; the original error goes into Details for logging.
func NewInternal(err error) *Error {
	e := &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: map[string]any{},
	}
	if err != nil {
		e.Details["internal_error"] = err.Error()
	}
	return e
}

// Is reports whether err is (or wraps) an Error with the given code.
func Is(err error, code ErrorCode) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

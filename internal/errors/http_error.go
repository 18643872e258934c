package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the booking backend.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return e.Message
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// StatusOf returns the HTTP status carried by err, or 0 when err did not come
// from the backend (network failure, context cancellation, ...).
func StatusOf(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// MessageOf returns the backend message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return StatusOf(err) == http.StatusForbidden }
func IsNotFound(err error) bool     { return StatusOf(err) == http.StatusNotFound }
func IsBadRequest(err error) bool   { return StatusOf(err) == http.StatusBadRequest }

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *APIError { return NewAPIError(http.StatusUnauthorized, msg) }
	ErrNotFound     = func(msg string) *APIError { return NewAPIError(http.StatusNotFound, msg) }
)

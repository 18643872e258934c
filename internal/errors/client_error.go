package errors

import (
	stderrors "errors"
)

// Client-side failures raised before any request leaves the portal.
var (
	ErrNotAuthenticated        = stderrors.New("not authenticated")
	ErrForbidden               = stderrors.New("admin role required")
	ErrCheckoutInProgress      = stderrors.New("a payment is already being processed")
	ErrRejectionReasonRequired = stderrors.New("rejection reason is required")
	ErrInvalidDateRange        = stderrors.New("check-out date must be after check-in date")
	ErrViewUnmounted           = stderrors.New("view was unmounted")
)

// ValidationError reports the first invalid form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if stderrors.As(err, &v) {
		return v, true
	}
	return nil, false
}

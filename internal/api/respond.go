package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
	"hotelbooking/internal/views"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondErr maps err onto a portal status and, when the app moved because
// of it, reports where to.
func respondErr(w http.ResponseWriter, err error, nav *service.Navigation) {
	body := ErrorResponse{Error: err.Error(), Navigation: nav}
	if verr, ok := apperrors.AsValidation(err); ok {
		body.Field = verr.Field
	}
	respondJSON(w, statusFor(err), body)
}

func statusFor(err error) int {
	var perr *service.ProviderError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrCheckoutInProgress), errors.Is(err, apperrors.ErrViewUnmounted):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrRejectionReasonRequired), errors.Is(err, apperrors.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.As(err, &perr):
		return http.StatusPaymentRequired
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	if _, ok := apperrors.AsValidation(err); ok {
		return http.StatusBadRequest
	}
	switch code := apperrors.StatusOf(err); {
	case code >= 400 && code < 500:
		return code
	case code >= 500:
		return http.StatusBadGateway
	case service.IsUnreachable(err):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func page(app *views.App, state any) PageResponse {
	return PageResponse{Location: app.Location(), Redirect: app.PendingRedirect(), State: state}
}

// guarded reports a navigation refused by a route guard. It returns false
// when err is something else.
func guarded(w http.ResponseWriter, app *views.App, err error) bool {
	if errors.Is(err, apperrors.ErrNotAuthenticated) || errors.Is(err, apperrors.ErrForbidden) {
		loc := app.Location()
		respondErr(w, err, &loc)
		return true
	}
	return false
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("", "Invalid request body")
	}
	return nil
}

// render answers with the current page. A failed mount still carries the
// view's state, so it is sent with the mapped status.
func render(w http.ResponseWriter, app *views.App, err error, state func() any) {
	if err != nil && guarded(w, app, err) {
		return
	}
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	respondJSON(w, status, page(app, state()))
}

package api

import (
	"errors"
	"net/http"

	"hotelbooking/internal/service"
	"hotelbooking/internal/views"
)

type CheckoutHandler struct {
	App      *views.App
	Checkout *views.Checkout
}

func NewCheckoutHandler(app *views.App, checkout *views.Checkout) *CheckoutHandler {
	return &CheckoutHandler{App: app, Checkout: checkout}
}

// GetCheckout opens the checkout page. An empty cart answers with the
// scheduled redirect back to the cart.
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	err := h.App.Navigate(service.Navigation{Path: "/checkout"})
	render(w, h.App, err, func() any { return h.Checkout.State() })
}

// SubmitPayment tokenizes the card and confirms the cart.
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var form service.CheckoutForm
	if err := decode(r, &form); err != nil {
		respondErr(w, err, nil)
		return
	}
	if err := h.App.Ensure("/checkout"); err != nil {
		if !guarded(w, h.App, err) {
			respondErr(w, err, nil)
		}
		return
	}

	result, err := h.Checkout.Submit(r.Context(), form)
	if result == nil {
		if err == nil {
			err = errors.New("checkout produced no result")
		}
		respondErr(w, err, nil)
		return
	}

	status := statusFor(err)
	if err == nil && result.State == service.CheckoutFailed {
		status = http.StatusConflict
	}
	respondJSON(w, status, CheckoutResponse{Location: h.App.Location(), Result: result})
}

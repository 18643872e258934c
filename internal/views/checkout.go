package views

import (
	"context"
	"errors"

	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
)

type CheckoutViewState struct {
	Page       *service.CheckoutPage   `json:"page,omitempty"`
	Result     *service.CheckoutResult `json:"result,omitempty"`
	State      service.CheckoutState   `json:"state"`
	Processing bool                    `json:"processing"`
	Error      string                  `json:"error,omitempty"`
}

type Checkout struct {
	base
	checkout *service.CheckoutService
	page     *service.CheckoutPage
	result   *service.CheckoutResult
	err      string
}

func NewCheckout(checkout *service.CheckoutService, nav Navigator) *Checkout {
	return &Checkout{base: base{nav: nav}, checkout: checkout}
}

// Mount loads the order summary. An empty cart schedules the redirect the
// service asks for.
func (v *Checkout) Mount(ctx context.Context, _ Navigation) error {
	scope := v.begin(ctx)
	var redirect *Navigation
	err := run(&v.base, scope.Context(), v.checkout.Load, func(page *service.CheckoutPage, err error) {
		v.page, v.result, v.err = page, nil, errorText(err)
		if page != nil {
			redirect = page.Navigation
		}
	})
	v.navigate(redirect)
	return err
}

func (v *Checkout) Unmount() { v.end() }

func (v *Checkout) State() CheckoutViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return CheckoutViewState{
		Page:       v.page,
		Result:     v.result,
		State:      v.checkout.State(),
		Processing: v.checkout.Processing(),
		Error:      v.err,
	}
}

// Submit pays for the cart. On success the app moves to the bookings list
// with the new booking as navigation state.
func (v *Checkout) Submit(ctx context.Context, form service.CheckoutForm) (*service.CheckoutResult, error) {
	var out *service.CheckoutResult
	err := run(&v.base, ctx, func(ctx context.Context) (*service.CheckoutResult, error) {
		return v.checkout.Submit(ctx, form)
	}, func(res *service.CheckoutResult, err error) {
		if errors.Is(err, apperrors.ErrCheckoutInProgress) {
			return
		}
		v.result, v.err = res, errorText(err)
		out = res
	})
	if out != nil {
		v.navigate(out.Navigation)
	}
	return out, err
}

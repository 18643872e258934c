package views

import (
	"context"
	"errors"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
)

type CartState struct {
	Item    *entities.CartItem `json:"item,omitempty"`
	Message string             `json:"message,omitempty"`
	// Stale is set when the backend could not be reached and Item comes from
	// the local snapshot.
	Stale bool   `json:"stale,omitempty"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

type Cart struct {
	base
	cart  *service.CartService
	state CartState
}

func NewCart(cart *service.CartService, nav Navigator) *Cart {
	return &Cart{base: base{nav: nav}, cart: cart}
}

func (v *Cart) Mount(ctx context.Context, _ Navigation) error {
	scope := v.begin(ctx)
	return v.load(scope.Context())
}

func (v *Cart) Unmount() { v.end() }

func (v *Cart) Reload(ctx context.Context) error { return v.load(ctx) }

func (v *Cart) load(ctx context.Context) error {
	return run(&v.base, ctx, v.cart.GetCart, func(state entities.CartState, err error) {
		v.state = CartState{}
		switch {
		case err != nil && service.IsUnreachable(err):
			if item, ok := v.cart.CachedItem(); ok {
				v.state.Item = &item
				v.state.Stale = true
			}
			v.state.Error = "Unable to reach the booking service"
		case err != nil:
			v.state.Error = err.Error()
		default:
			switch st := state.(type) {
			case entities.CartOccupied:
				item := st.Item
				v.state.Item = &item
			case entities.CartEmpty:
				v.state.Message = st.Message
			}
		}
		v.state.Count = v.cart.Count()
	})
}

func (v *Cart) State() CartState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	if s.Item != nil {
		item := *s.Item
		s.Item = &item
	}
	return s
}

func (v *Cart) Clear(ctx context.Context) error {
	return run(&v.base, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, v.cart.ClearCart(ctx)
	}, func(_ struct{}, err error) {
		if err != nil {
			v.state.Error = err.Error()
			return
		}
		v.state = CartState{Message: "Cart is empty"}
	})
}

// Proceed moves to checkout when the cart holds a room.
func (v *Cart) Proceed() error {
	v.mu.Lock()
	empty := v.state.Item == nil || v.state.Stale
	v.mu.Unlock()
	if empty {
		return errors.New("cart is empty")
	}
	if !v.Mounted() {
		return apperrors.ErrViewUnmounted
	}
	v.navigate(&Navigation{Path: "/checkout"})
	return nil
}

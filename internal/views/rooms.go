package views

import (
	"context"
	"errors"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
)

type RoomsState struct {
	Query   entities.RoomSearchRequest   `json:"query"`
	Results *entities.RoomSearchResponse `json:"results,omitempty"`
	Error   string                       `json:"error,omitempty"`
}

// Rooms searches availability and puts a room in the cart.
type Rooms struct {
	base
	rooms *service.RoomService
	cart  *service.CartService
	state RoomsState
}

func NewRooms(rooms *service.RoomService, cart *service.CartService, nav Navigator) *Rooms {
	return &Rooms{base: base{nav: nav}, rooms: rooms, cart: cart}
}

func (v *Rooms) Mount(ctx context.Context, _ Navigation) error {
	v.begin(ctx)
	v.mu.Lock()
	v.state = RoomsState{}
	v.mu.Unlock()
	return nil
}

func (v *Rooms) Unmount() { v.end() }

func (v *Rooms) State() RoomsState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Rooms) Search(ctx context.Context, req entities.RoomSearchRequest) (*entities.RoomSearchResponse, error) {
	var out *entities.RoomSearchResponse
	err := run(&v.base, ctx, func(ctx context.Context) (*entities.RoomSearchResponse, error) {
		return v.rooms.Search(ctx, req)
	}, func(resp *entities.RoomSearchResponse, err error) {
		v.state.Query = req
		v.state.Results = resp
		v.state.Error = errorText(err)
		out = resp
	})
	return out, err
}

// AddToCart books roomID for the given dates, falling back to the last
// search's dates, then moves to the cart. Anonymous users are sent to login.
func (v *Rooms) AddToCart(ctx context.Context, roomID int, checkIn, checkOut string) (*service.AddResult, error) {
	v.mu.Lock()
	if checkIn == "" {
		checkIn = v.state.Query.CheckInDate
	}
	if checkOut == "" {
		checkOut = v.state.Query.CheckOutDate
	}
	v.mu.Unlock()

	var out *service.AddResult
	err := run(&v.base, ctx, func(ctx context.Context) (*service.AddResult, error) {
		return v.cart.AddToCart(ctx, entities.AddRoomRequest{RoomID: roomID, CheckInDate: checkIn, CheckOutDate: checkOut})
	}, func(res *service.AddResult, err error) {
		v.state.Error = errorText(err)
		out = res
	})
	if errors.Is(err, apperrors.ErrViewUnmounted) {
		return nil, err
	}
	if out != nil && out.Navigation != nil {
		v.navigate(out.Navigation)
		return out, err
	}
	if err == nil {
		v.navigate(&Navigation{Path: "/cart"})
	}
	return out, err
}

package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
)

const emptyCartMessage = "Cart is empty"

type BookingRepository struct {
	API *APIClient
}

func NewBookingRepository(api *APIClient) *BookingRepository {
	return &BookingRepository{API: api}
}

func (r *BookingRepository) AddToCart(ctx context.Context, req entities.AddRoomRequest) (entities.CartState, error) {
	var raw json.RawMessage
	if err := r.API.do(ctx, request{method: http.MethodPost, path: "/api/Bookings/cart", body: req}, &raw); err != nil {
		return nil, err
	}
	return decodeCart(raw)
}

// GetCart returns the server-side cart of the current session. A 404 is
// reported by some backend versions for a session without a cart.
func (r *BookingRepository) GetCart(ctx context.Context) (entities.CartState, error) {
	var raw json.RawMessage
	err := r.API.do(ctx, request{method: http.MethodGet, path: "/api/Bookings/cart"}, &raw)
	if apperrors.IsNotFound(err) {
		return entities.CartEmpty{Message: emptyCartMessage}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCart(raw)
}

// ClearCart is idempotent: clearing an already empty cart succeeds.
func (r *BookingRepository) ClearCart(ctx context.Context) error {
	err := r.API.do(ctx, request{method: http.MethodDelete, path: "/api/Bookings/cart"}, nil)
	if apperrors.IsNotFound(err) {
		return nil
	}
	return err
}

func (r *BookingRepository) ConfirmCart(ctx context.Context, req entities.BookingConfirmationRequest, idempotencyKey string) (*entities.BookingConfirmationResponse, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[idempotencyHeader] = idempotencyKey
	}
	var resp entities.BookingConfirmationResponse
	err := r.API.do(ctx, request{method: http.MethodPost, path: "/api/Bookings/confirm", body: req, headers: headers}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *BookingRepository) ListBookings(ctx context.Context) ([]entities.Booking, error) {
	var bookings []entities.Booking
	if err := r.API.do(ctx, request{method: http.MethodGet, path: "/api/Bookings"}, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id int) (*entities.Booking, error) {
	var booking entities.Booking
	if err := r.API.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/api/Bookings/%d", id)}, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

type cartPayload struct {
	Message string `json:"message"`
	entities.CartItem
}

// decodeCart maps the backend's cart shapes onto CartState. The backend
// answers with an item, an array holding at most one item, or an object
// carrying only a message when the cart is empty.
func decodeCart(raw json.RawMessage) (entities.CartState, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return entities.CartEmpty{Message: emptyCartMessage}, nil
	}

	var payload cartPayload
	if trimmed[0] == '[' {
		var items []cartPayload
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding cart: %w", err)
		}
		if len(items) == 0 {
			return entities.CartEmpty{Message: emptyCartMessage}, nil
		}
		payload = items[0]
	} else if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}

	if payload.RoomID == 0 {
		msg := payload.Message
		if msg == "" {
			msg = emptyCartMessage
		}
		return entities.CartEmpty{Message: msg}, nil
	}
	return entities.CartOccupied{Item: payload.CartItem}, nil
}

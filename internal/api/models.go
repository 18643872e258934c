package api

import (
	"hotelbooking/internal/service"
)

// Cart
type AddToCartRequest struct {
	RoomID       int    `json:"roomId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// Admin
type RejectRequest struct {
	Reason string `json:"reason"`
}

// PageResponse wraps a view's state with where the app is now and any
// navigation still scheduled.
type PageResponse struct {
	Location service.Navigation  `json:"location"`
	Redirect *service.Navigation `json:"redirect,omitempty"`
	State    any                 `json:"state,omitempty"`
}

type CheckoutResponse struct {
	Location service.Navigation      `json:"location"`
	Result   *service.CheckoutResult `json:"result"`
}

type ErrorResponse struct {
	Error      string              `json:"error"`
	Field      string              `json:"field,omitempty"`
	Navigation *service.Navigation `json:"navigation,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package service

import (
	"context"

	"hotelbooking/internal/entities"
)

type CartRepository interface {
	AddToCart(ctx context.Context, req entities.AddRoomRequest) (entities.CartState, error)
	GetCart(ctx context.Context) (entities.CartState, error)
	ClearCart(ctx context.Context) error
	ConfirmCart(ctx context.Context, req entities.BookingConfirmationRequest, idempotencyKey string) (*entities.BookingConfirmationResponse, error)
}

type BookingRepository interface {
	ListBookings(ctx context.Context) ([]entities.Booking, error)
	GetBookingByID(ctx context.Context, id int) (*entities.Booking, error)
}

type AdminRepository interface {
	ListAllBookings(ctx context.Context) ([]entities.Booking, error)
	ConfirmBooking(ctx context.Context, id int) error
	RejectBooking(ctx context.Context, id int, reason string) error
}

type RoomRepository interface {
	GetRoomTypes(ctx context.Context) ([]entities.RoomType, error)
	GetAvailableRooms(ctx context.Context, checkIn, checkOut string) ([]entities.Room, error)
	SearchRooms(ctx context.Context, req entities.RoomSearchRequest) (*entities.RoomSearchResponse, error)
}

type AuthRepository interface {
	Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error)
	Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error)
}

type HealthRepository interface {
	Check(ctx context.Context) (*entities.HealthStatus, error)
}

// KeyValueStore is the durable client storage.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

type Session interface {
	Token() string
	User() *entities.User
	IsAuthenticated() bool
	IsAdmin() bool
	Save(token string, user *entities.User) error
	Clear() error
}

type ReceiptSender interface {
	SendBookingReceipt(r entities.ReceiptData)
}

// Navigation tells the UI shell where to go next. State carries the
// navigation-time payload (the new booking after checkout).
type Navigation struct {
	Path      string            `json:"path"`
	ReturnURL string            `json:"returnUrl,omitempty"`
	State     *entities.Booking `json:"state,omitempty"`
	DelayMs   int64             `json:"delayMs,omitempty"`
}

type Action string

const (
	ActionAddToCart Action = "add-to-cart"
	ActionCheckout  Action = "checkout"
)

var loginWarnings = map[Action]string{
	ActionAddToCart: "Please login to add items to your cart",
	ActionCheckout:  "Please login to proceed with booking",
}

// requireLogin returns nil when the session is live. Otherwise it raises the
// action's login warning and returns the redirect to the login page.
func requireLogin(session Session, notifier Notifier, action Action, returnURL string) *Navigation {
	if session.IsAuthenticated() {
		return nil
	}
	msg, ok := loginWarnings[action]
	if !ok {
		msg = "Please login to continue"
	}
	notifyWarning(notifier, msg)
	return &Navigation{Path: "/login", ReturnURL: returnURL}
}

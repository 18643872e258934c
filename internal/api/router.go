package api

import (
	"net/http"

	"hotelbooking/internal/auth"

	"github.com/gorilla/mux"
)

type Handlers struct {
	User     *UserHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
	Auth     *AuthHandler
	System   *SystemHandler
	Live     http.HandlerFunc
}

// NewRouter mounts the portal API. Page reads go through the app's route
// guards so an anonymous visitor learns where to log in; mutations sit
// behind the session middleware.
func NewRouter(h Handlers, session *auth.SessionStore) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.System.Liveness).Methods("GET")
	r.HandleFunc("/api/status", h.System.Status).Methods("GET")
	r.HandleFunc("/api/location", h.System.Location).Methods("GET")
	r.HandleFunc("/api/toasts", h.System.ListToasts).Methods("GET")
	r.HandleFunc("/api/toasts/{id}", h.System.DismissToast).Methods("DELETE")
	r.HandleFunc("/api/logs", h.System.ListLogs).Methods("GET")
	r.HandleFunc("/api/logs", h.System.ClearLogs).Methods("DELETE")
	r.HandleFunc("/api/logs/export", h.System.ExportLogs).Methods("GET")

	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/api/auth/register", h.Auth.Register).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.Auth.Logout).Methods("POST")
	r.HandleFunc("/api/auth/me", h.Auth.Me).Methods("GET")

	r.HandleFunc("/api/home", h.User.GetHome).Methods("GET")
	r.HandleFunc("/api/rooms/types", h.User.GetRoomTypes).Methods("GET")
	r.HandleFunc("/api/rooms/available", h.User.GetAvailableRooms).Methods("GET")
	r.HandleFunc("/api/rooms/search", h.User.SearchRooms).Methods("GET")
	r.HandleFunc("/api/cart", h.User.GetCart).Methods("GET")
	r.HandleFunc("/api/cart", h.User.AddToCart).Methods("POST")
	r.HandleFunc("/api/checkout", h.Checkout.GetCheckout).Methods("GET")
	r.HandleFunc("/api/bookings", h.User.GetBookings).Methods("GET")
	r.HandleFunc("/api/profile", h.User.GetProfile).Methods("GET")
	r.HandleFunc("/api/admin/dashboard", h.Admin.GetDashboard).Methods("GET")

	if h.Live != nil {
		r.HandleFunc("/ws/bookings", h.Live)
	}

	// Admin endpoints (protected). Registered before the wider /api
	// subrouter so its prefix is tried first.
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(session))
	admin.HandleFunc("/bookings/{id}/confirm", h.Admin.ConfirmBooking).Methods("PUT")
	admin.HandleFunc("/bookings/{id}/reject", h.Admin.RejectBooking).Methods("PUT")

	// Session endpoints (protected)
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.AuthMiddleware(session))
	protected.HandleFunc("/cart", h.User.ClearCart).Methods("DELETE")
	protected.HandleFunc("/checkout", h.Checkout.SubmitPayment).Methods("POST")
	protected.HandleFunc("/bookings/{id}/cancel", h.User.CancelBooking).Methods("POST")
	protected.HandleFunc("/profile/bookings/{id}/receipt", h.User.DownloadReceipt).Methods("GET")

	return r
}

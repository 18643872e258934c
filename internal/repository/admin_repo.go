package repository

import (
	"context"
	"fmt"
	"net/http"

	"hotelbooking/internal/entities"
)

// AdminRepository covers the endpoints reserved to the Admin role. The
// backend enforces the role; the portal only guards its own routes.
type AdminRepository struct {
	API *APIClient
}

func NewAdminRepository(api *APIClient) *AdminRepository {
	return &AdminRepository{API: api}
}

func (r *AdminRepository) ListAllBookings(ctx context.Context) ([]entities.Booking, error) {
	var bookings []entities.Booking
	if err := r.API.do(ctx, request{method: http.MethodGet, path: "/api/Admin/bookings"}, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *AdminRepository) ConfirmBooking(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/Bookings/%d/confirm", id)
	return r.API.do(ctx, request{method: http.MethodPut, path: path, body: struct{}{}}, nil)
}

func (r *AdminRepository) RejectBooking(ctx context.Context, id int, reason string) error {
	path := fmt.Sprintf("/api/Bookings/%d/reject", id)
	return r.API.do(ctx, request{method: http.MethodPut, path: path, body: entities.RejectBookingRequest{Reason: reason}}, nil)
}

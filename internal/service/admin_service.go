package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/utils"
)

type DashboardStats struct {
	TotalBookings int     `json:"totalBookings"`
	Pending       int     `json:"pending"`
	Confirmed     int     `json:"confirmed"`
	Cancelled     int     `json:"cancelled"`
	Completed     int     `json:"completed"`
	Rejected      int     `json:"rejected"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

type Dashboard struct {
	Stats          DashboardStats      `json:"stats"`
	Bookings       []entities.Booking  `json:"bookings"`
	RoomTypes      []entities.RoomType `json:"roomTypes"`
	AvailableToday []entities.Room     `json:"availableToday"`
}

// AdminService backs the admin dashboard. Every mutation is followed by a
// fresh listing; the local copy is never patched.
type AdminService struct {
	admin    AdminRepository
	rooms    RoomRepository
	session  Session
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewAdminService(admin AdminRepository, rooms RoomRepository, session Session, notifier Notifier, logger *slog.Logger) *AdminService {
	return &AdminService{admin: admin, rooms: rooms, session: session, notifier: notifier, logger: logger, now: time.Now}
}

func (s *AdminService) authorize() error {
	if !s.session.IsAuthenticated() {
		return apperrors.ErrNotAuthenticated
	}
	if !s.session.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *AdminService) ListBookings(ctx context.Context) ([]entities.Booking, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	bookings, err := s.admin.ListAllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing all bookings: %w", err)
	}
	return bookings, nil
}

// Dashboard loads bookings, statistics, room types and tonight's free rooms.
// Room catalog failures only leave their sections empty.
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{Stats: ComputeStats(bookings), Bookings: bookings}

	if d.RoomTypes, err = s.rooms.GetRoomTypes(ctx); err != nil {
		s.logger.Warn("loading room types failed", "error", err)
	}
	today := utils.StartOfDay(s.now())
	from := today.Format(utils.DateLayout)
	to := today.AddDate(0, 0, 1).Format(utils.DateLayout)
	if d.AvailableToday, err = s.rooms.GetAvailableRooms(ctx, from, to); err != nil {
		s.logger.Warn("loading today's availability failed", "error", err)
	}
	return d, nil
}

// ComputeStats counts bookings per status, ignoring case. Revenue is the
// total cost of confirmed and completed bookings.
func ComputeStats(bookings []entities.Booking) DashboardStats {
	stats := DashboardStats{TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch strings.ToLower(string(b.Status)) {
		case "pending":
			stats.Pending++
		case "confirmed":
			stats.Confirmed++
			stats.TotalRevenue += b.TotalCost
		case "cancelled":
			stats.Cancelled++
		case "completed":
			stats.Completed++
			stats.TotalRevenue += b.TotalCost
		case "rejected":
			stats.Rejected++
		}
	}
	return stats
}

// ConfirmBooking confirms a booking and returns the refreshed listing.
func (s *AdminService) ConfirmBooking(ctx context.Context, id int) ([]entities.Booking, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	if err := s.admin.ConfirmBooking(ctx, id); err != nil {
		notifyError(s.notifier, apperrors.MessageOf(err, "Failed to confirm booking"))
		s.logger.Error("admin confirm failed", "bookingId", id, "status", apperrors.StatusOf(err), "error", err)
		return nil, err
	}
	notifySuccess(s.notifier, fmt.Sprintf("Booking #%d confirmed", id))
	s.logger.Info("booking confirmed by admin", "bookingId", id)
	return s.ListBookings(ctx)
}

// RejectBooking requires a non-blank reason; without one no request is sent.
func (s *AdminService) RejectBooking(ctx context.Context, id int, reason string) ([]entities.Booking, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		notifyWarning(s.notifier, "Please provide a reason for rejection")
		return nil, apperrors.ErrRejectionReasonRequired
	}
	if err := s.admin.RejectBooking(ctx, id, reason); err != nil {
		notifyError(s.notifier, apperrors.MessageOf(err, "Failed to reject booking"))
		s.logger.Error("admin reject failed", "bookingId", id, "status", apperrors.StatusOf(err), "error", err)
		return nil, err
	}
	notifySuccess(s.notifier, fmt.Sprintf("Booking #%d rejected", id))
	s.logger.Info("booking rejected by admin", "bookingId", id, "reason", reason)
	return s.ListBookings(ctx)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/utils"
)

// CancellationRequestsKey stores the ids of bookings the user asked to
// cancel. There is no cancellation endpoint on the backend yet, so a request
// is recorded locally and the booking status is left alone.
const CancellationRequestsKey = "cancellation_requests"

type CancellationResult struct {
	BookingID        int  `json:"bookingId"`
	Requested        bool `json:"requested"`
	AlreadyRequested bool `json:"alreadyRequested"`
}

type BookingService struct {
	repo     BookingRepository
	store    KeyValueStore
	session  Session
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu sync.Mutex
}

func NewBookingService(repo BookingRepository, store KeyValueStore, session Session, notifier Notifier, logger *slog.Logger) *BookingService {
	return &BookingService{repo: repo, store: store, session: session, notifier: notifier, logger: logger, now: time.Now}
}

func (s *BookingService) ListBookings(ctx context.Context) ([]entities.Booking, error) {
	if !s.session.IsAuthenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int) (*entities.Booking, error) {
	if !s.session.IsAuthenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.repo.GetBookingByID(ctx, id)
}

// CancelBooking records a cancellation request. Repeating it is a no-op that
// reports AlreadyRequested.
func (s *BookingService) CancelBooking(ctx context.Context, id int) (*CancellationResult, error) {
	if !s.session.IsAuthenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.loadRequests()
	if err != nil {
		return nil, err
	}
	if _, ok := ids[id]; ok {
		return &CancellationResult{BookingID: id, Requested: true, AlreadyRequested: true}, nil
	}
	ids[id] = struct{}{}
	if err := s.saveRequests(ids); err != nil {
		notifyError(s.notifier, "Failed to record cancellation request")
		return nil, err
	}

	notifyInfo(s.notifier, fmt.Sprintf("Cancellation request for booking #%d has been recorded", id))
	s.logger.Warn("cancellation recorded locally, no backend endpoint available", "bookingId", id)
	return &CancellationResult{BookingID: id, Requested: true}, nil
}

// CancellationRequests returns the set of booking ids with a pending request.
func (s *BookingService) CancellationRequests() map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.loadRequests()
	if err != nil {
		s.logger.Warn("reading cancellation requests failed", "error", err)
		return map[int]bool{}
	}
	out := make(map[int]bool, len(ids))
	for id := range ids {
		out[id] = true
	}
	return out
}

func (s *BookingService) loadRequests() (map[int]struct{}, error) {
	raw, ok, err := s.store.Get(CancellationRequestsKey)
	if err != nil {
		return nil, err
	}
	ids := map[int]struct{}{}
	if !ok || raw == "" {
		return ids, nil
	}
	var list []int
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decoding cancellation requests: %w", err)
	}
	for _, id := range list {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (s *BookingService) saveRequests(ids map[int]struct{}) error {
	list := make([]int, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Ints(list)
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.store.Set(CancellationRequestsKey, string(raw))
}

// Receipt renders the plain-text receipt of one booking.
func (s *BookingService) Receipt(ctx context.Context, id int) (string, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return "", err
	}
	return ReceiptText(ReceiptFromBooking(*booking)), nil
}

// SplitBookings separates upcoming stays (check-in today or later, not
// cancelled, soonest first) from past ones (checked out or cancelled, most
// recent first). Bookings that fit neither, such as a stay in progress, are
// left out of both.
func SplitBookings(bookings []entities.Booking, now time.Time) (upcoming, past []entities.Booking) {
	today := utils.StartOfDay(now)
	for _, b := range bookings {
		cancelled := strings.EqualFold(string(b.Status), string(entities.BookingStatusCancelled))
		in, inErr := utils.ParseDate(b.CheckInDate)
		out, outErr := utils.ParseDate(b.CheckOutDate)

		if !cancelled && inErr == nil && !utils.StartOfDay(in).Before(today) {
			upcoming = append(upcoming, b)
		}
		if cancelled || (outErr == nil && utils.StartOfDay(out).Before(today)) {
			past = append(past, b)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return dateKey(upcoming[i].CheckInDate) < dateKey(upcoming[j].CheckInDate)
	})
	sort.SliceStable(past, func(i, j int) bool {
		return dateKey(past[i].CheckInDate) > dateKey(past[j].CheckInDate)
	})
	return upcoming, past
}

func dateKey(s string) int64 {
	t, err := utils.ParseDate(s)
	if err != nil {
		return 0
	}
	return t.Unix()
}

package views

import (
	"context"
	"time"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"
)

type ProfileState struct {
	User     *entities.User `json:"user,omitempty"`
	Upcoming []BookingRow   `json:"upcoming"`
	Past     []BookingRow   `json:"past"`
	Error    string         `json:"error,omitempty"`
}

type Profile struct {
	base
	bookings *service.BookingService
	session  service.Session
	now      func() time.Time

	listed []entities.Booking
	err    string
}

func NewProfile(bookings *service.BookingService, session service.Session) *Profile {
	return &Profile{bookings: bookings, session: session, now: time.Now}
}

func (v *Profile) Mount(ctx context.Context, _ Navigation) error {
	scope := v.begin(ctx)
	return run(&v.base, scope.Context(), v.bookings.ListBookings, func(list []entities.Booking, err error) {
		v.listed, v.err = list, errorText(err)
	})
}

func (v *Profile) Unmount() { v.end() }

func (v *Profile) State() ProfileState {
	requested := v.bookings.CancellationRequests()
	rows := func(list []entities.Booking) []BookingRow {
		out := make([]BookingRow, 0, len(list))
		for _, b := range list {
			out = append(out, BookingRow{Booking: b, CancellationRequested: requested[b.ID]})
		}
		return out
	}

	v.mu.Lock()
	listed, errText := v.listed, v.err
	v.mu.Unlock()

	upcoming, past := service.SplitBookings(listed, v.now())
	return ProfileState{
		User:     v.session.User(),
		Upcoming: rows(upcoming),
		Past:     rows(past),
		Error:    errText,
	}
}

// Receipt renders the downloadable receipt of one booking.
func (v *Profile) Receipt(ctx context.Context, id int) (string, error) {
	var out string
	err := run(&v.base, ctx, func(ctx context.Context) (string, error) {
		return v.bookings.Receipt(ctx, id)
	}, func(text string, err error) {
		out = text
	})
	return out, err
}

func (v *Profile) Cancel(ctx context.Context, id int) (*service.CancellationResult, error) {
	var out *service.CancellationResult
	err := run(&v.base, ctx, func(ctx context.Context) (*service.CancellationResult, error) {
		return v.bookings.CancelBooking(ctx, id)
	}, func(res *service.CancellationResult, err error) {
		out = res
		v.err = errorText(err)
	})
	return out, err
}

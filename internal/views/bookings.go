package views

import (
	"context"
	"log/slog"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"
)

type BookingRow struct {
	entities.Booking
	Highlighted           bool `json:"highlighted"`
	CancellationRequested bool `json:"cancellationRequested"`
}

type BookingsState struct {
	Bookings    []BookingRow `json:"bookings"`
	HighlightID int          `json:"highlightId,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Bookings lists the user's bookings. A booking just created by checkout
// arrives through navigation state and the booking-state bus; it is shown
// first and highlighted until a reload from the backend contains it.
type Bookings struct {
	base
	bookings *service.BookingService
	bus      *service.BookingStateService
	logger   *slog.Logger

	listed []entities.Booking
	fresh  *entities.Booking
	err    string
}

func NewBookings(bookings *service.BookingService, bus *service.BookingStateService, logger *slog.Logger) *Bookings {
	return &Bookings{bookings: bookings, bus: bus, logger: logger}
}

func (v *Bookings) Mount(ctx context.Context, nav Navigation) error {
	scope := v.begin(ctx)

	// Subscribe before reading the pending slot so a booking published in
	// between arrives on the channel; merging absorbs the overlap.
	ch := v.bus.Subscribe()

	v.mu.Lock()
	v.listed, v.fresh, v.err = nil, nil, ""
	if nav.State != nil {
		v.mergeLocked(*nav.State)
	}
	if pending, ok := v.bus.GetNewBooking(); ok {
		v.mergeLocked(pending)
	}
	v.mu.Unlock()

	go v.listen(scope, ch)

	return run(&v.base, scope.Context(), v.bookings.ListBookings, func(list []entities.Booking, err error) {
		v.applyLocked(list, err, true)
	})
}

// Unmount drops the pending booking along with the view.
func (v *Bookings) Unmount() {
	v.end()
	v.mu.Lock()
	v.fresh = nil
	v.mu.Unlock()
	v.bus.ClearNewBooking()
}

func (v *Bookings) listen(scope *Scope, ch <-chan entities.Booking) {
	defer v.bus.Unsubscribe(ch)
	for {
		select {
		case <-scope.Context().Done():
			return
		case b, ok := <-ch:
			if !ok {
				return
			}
			v.mu.Lock()
			if v.scope == scope && scope.Alive() {
				v.mergeLocked(b)
			}
			v.mu.Unlock()
		}
	}
}

// Reload refetches the list. As with the mount-time fetch, a listing that
// contains the highlighted booking releases the highlight.
func (v *Bookings) Reload(ctx context.Context) error {
	return run(&v.base, ctx, v.bookings.ListBookings, func(list []entities.Booking, err error) {
		v.applyLocked(list, err, true)
	})
}

func (v *Bookings) applyLocked(list []entities.Booking, err error, release bool) {
	if err != nil {
		v.err = err.Error()
		return
	}
	v.err = ""
	v.listed = list
	if v.fresh != nil && release && indexOf(list, v.fresh.ID) >= 0 {
		v.logger.Debug("new booking confirmed by listing", "bookingId", v.fresh.ID)
		v.fresh = nil
		v.bus.ClearNewBooking()
	}
}

// mergeLocked records b as the fresh booking. The same id arriving twice
// changes nothing.
func (v *Bookings) mergeLocked(b entities.Booking) {
	if v.fresh != nil && v.fresh.ID == b.ID {
		return
	}
	copied := b
	v.fresh = &copied
}

// Cancel records a cancellation request for id.
func (v *Bookings) Cancel(ctx context.Context, id int) (*service.CancellationResult, error) {
	var out *service.CancellationResult
	err := run(&v.base, ctx, func(ctx context.Context) (*service.CancellationResult, error) {
		return v.bookings.CancelBooking(ctx, id)
	}, func(res *service.CancellationResult, err error) {
		out = res
		v.err = errorText(err)
	})
	return out, err
}

func (v *Bookings) State() BookingsState {
	requested := v.bookings.CancellationRequests()

	v.mu.Lock()
	defer v.mu.Unlock()
	s := BookingsState{Error: v.err, Bookings: make([]BookingRow, 0, len(v.listed)+1)}
	skip := -1
	if v.fresh != nil {
		s.HighlightID = v.fresh.ID
		first := *v.fresh
		if skip = indexOf(v.listed, v.fresh.ID); skip >= 0 {
			first = v.listed[skip]
		}
		s.Bookings = append(s.Bookings, BookingRow{Booking: first, Highlighted: true})
	}
	for i, b := range v.listed {
		if i != skip {
			s.Bookings = append(s.Bookings, BookingRow{Booking: b})
		}
	}
	for i := range s.Bookings {
		s.Bookings[i].CancellationRequested = requested[s.Bookings[i].ID]
	}
	return s
}

func indexOf(list []entities.Booking, id int) int {
	for i, b := range list {
		if b.ID == id {
			return i
		}
	}
	return -1
}

package service

import (
	"log/slog"
	"sync"

	"hotelbooking/internal/entities"
)

const subscriberBuffer = 8

// BookingStateService carries a just-created booking to the bookings list
// before the backend listing reflects it. Each booking id is delivered to
// subscribers at most once until ClearNewBooking.
type BookingStateService struct {
	mu          sync.Mutex
	pending     *entities.Booking
	seen        map[int]struct{}
	subscribers map[<-chan entities.Booking]chan entities.Booking
	logger      *slog.Logger
}

func NewBookingStateService(logger *slog.Logger) *BookingStateService {
	return &BookingStateService{
		seen:        make(map[int]struct{}),
		subscribers: make(map[<-chan entities.Booking]chan entities.Booking),
		logger:      logger,
	}
}

// SetNewBooking replaces the pending booking and notifies subscribers unless
// this id was already delivered.
func (s *BookingStateService) SetNewBooking(b entities.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := b
	s.pending = &copied
	if _, dup := s.seen[b.ID]; dup {
		s.logger.Debug("booking already announced", "bookingId", b.ID)
		return
	}
	s.seen[b.ID] = struct{}{}

	for _, ch := range s.subscribers {
		select {
		case ch <- b:
		default:
			s.logger.Warn("booking subscriber is full, dropping event", "bookingId", b.ID)
		}
	}
	s.logger.Info("new booking published", "bookingId", b.ID, "subscribers", len(s.subscribers))
}

// GetNewBooking reads the pending booking without consuming it.
func (s *BookingStateService) GetNewBooking() (entities.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return entities.Booking{}, false
	}
	return *s.pending, true
}

func (s *BookingStateService) ClearNewBooking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.seen = make(map[int]struct{})
}

func (s *BookingStateService) Subscribe() <-chan entities.Booking {
	ch := make(chan entities.Booking, subscriberBuffer)
	s.mu.Lock()
	s.subscribers[ch] = ch
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (s *BookingStateService) Unsubscribe(ch <-chan entities.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if send, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(send)
	}
}

package views

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"
	"hotelbooking/internal/service/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakeSession struct {
	mu    sync.Mutex
	token string
	admin bool
}

func (s *fakeSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeSession) User() *entities.User {
	if s.Token() == "" {
		return nil
	}
	u := &entities.User{Email: "ana@hotel.local", FirstName: "Ana", LastName: "Ruiz"}
	if s.admin {
		u.Roles = []string{entities.AdminRole}
	}
	return u
}

func (s *fakeSession) IsAuthenticated() bool { return s.Token() != "" }

func (s *fakeSession) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.admin
}

func (s *fakeSession) Save(token string, _ *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *fakeSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

type nopNotifier struct{}

func (nopNotifier) Notify(service.Notification) {}

// portal wires the services and views the way main does, over mocks.
type portal struct {
	session   *fakeSession
	store     *memStore
	cartRepo  *mocks.MockCartRepository
	bookRepo  *mocks.MockBookingRepository
	adminRepo *mocks.MockAdminRepository
	roomRepo  *mocks.MockRoomRepository
	tokenizer *mocks.MockTokenizer
	bus       *service.BookingStateService
	cart      *service.CartService
	checkout  *service.CheckoutService
	bookings  *service.BookingService

	app          *App
	cartView     *Cart
	checkoutView *Checkout
	bookingsView *Bookings
	profileView  *Profile
	adminView    *Admin
}

func newPortal(t *testing.T, redirectDelay time.Duration) *portal {
	t.Helper()
	logger := discardLogger()
	p := &portal{
		session:   &fakeSession{token: "token"},
		store:     newMemStore(),
		cartRepo:  new(mocks.MockCartRepository),
		bookRepo:  new(mocks.MockBookingRepository),
		adminRepo: new(mocks.MockAdminRepository),
		roomRepo:  new(mocks.MockRoomRepository),
		tokenizer: new(mocks.MockTokenizer),
		bus:       service.NewBookingStateService(logger),
	}
	p.cart = service.NewCartService(p.cartRepo, p.session, p.store, nopNotifier{}, logger)
	p.checkout = service.NewCheckoutService(p.cartRepo, p.cart, p.tokenizer, p.bus, nil, p.session, nopNotifier{}, logger, redirectDelay)
	p.bookings = service.NewBookingService(p.bookRepo, p.store, p.session, nopNotifier{}, logger)
	admin := service.NewAdminService(p.adminRepo, p.roomRepo, p.session, nopNotifier{}, logger)

	p.app = NewApp(context.Background(), p.session, logger)
	p.cartView = NewCart(p.cart, p.app)
	p.checkoutView = NewCheckout(p.checkout, p.app)
	p.bookingsView = NewBookings(p.bookings, p.bus, logger)
	p.profileView = NewProfile(p.bookings, p.session)
	p.adminView = NewAdmin(admin, p.app)

	p.app.Register("/cart", p.cartView)
	p.app.RegisterProtected("/checkout", p.checkoutView)
	p.app.RegisterProtected("/bookings", p.bookingsView)
	p.app.RegisterProtected("/profile", p.profileView)
	p.app.RegisterAdmin("/admin", p.adminView)
	t.Cleanup(p.app.Close)
	return p
}

var deluxeItem = entities.CartItem{
	RoomID:         12,
	RoomNumber:     "101",
	RoomTypeName:   "Deluxe Room",
	PricePerNight:  150,
	CheckInDate:    "2025-12-01",
	CheckOutDate:   "2025-12-05",
	NumberOfNights: 4,
	TotalCost:      600,
}

var paidForm = service.CheckoutForm{
	FullName:       "Ana Ruiz",
	Email:          "ana@hotel.local",
	CardholderName: "ANA RUIZ",
	Phone:          "+34600000000",
	Card:           service.CardDetails{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"},
}

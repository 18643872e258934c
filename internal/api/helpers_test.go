package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"hotelbooking/internal/auth"
	"hotelbooking/internal/entities"
	"hotelbooking/internal/logging"
	"hotelbooking/internal/service"
	"hotelbooking/internal/service/mocks"
	"hotelbooking/internal/views"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

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

// testServer wires the portal the way main does, over repository mocks.
type testServer struct {
	session   *auth.SessionStore
	cartRepo  *mocks.MockCartRepository
	bookRepo  *mocks.MockBookingRepository
	adminRepo *mocks.MockAdminRepository
	roomRepo  *mocks.MockRoomRepository
	authRepo  *mocks.MockAuthRepository
	tokenizer *mocks.MockTokenizer
	toasts    *service.ToastService
	logs      *logging.Buffer
	app       *views.App
	router    *mux.Router
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	logs := logging.NewBuffer(logging.DefaultCapacity, nil)
	logger := logs.Logger()
	store := &memStore{data: map[string]string{}}
	session, err := auth.NewSessionStore(store, nil)
	require.NoError(t, err)

	s := &testServer{
		session:   session,
		cartRepo:  new(mocks.MockCartRepository),
		bookRepo:  new(mocks.MockBookingRepository),
		adminRepo: new(mocks.MockAdminRepository),
		roomRepo:  new(mocks.MockRoomRepository),
		authRepo:  new(mocks.MockAuthRepository),
		tokenizer: new(mocks.MockTokenizer),
		toasts:    service.NewToastService(logger),
		logs:      logs,
	}

	bus := service.NewBookingStateService(logger)
	cart := service.NewCartService(s.cartRepo, session, store, s.toasts, logger)
	checkout := service.NewCheckoutService(s.cartRepo, cart, s.tokenizer, bus, nil, session, s.toasts, logger, 50*time.Millisecond)
	bookings := service.NewBookingService(s.bookRepo, store, session, s.toasts, logger)
	admin := service.NewAdminService(s.adminRepo, s.roomRepo, session, s.toasts, logger)
	authSvc := service.NewAuthService(s.authRepo, session, cart, s.toasts, logger)
	rooms := service.NewRoomService(s.roomRepo, logger)
	health := service.NewHealthMonitor(new(mocks.MockHealthRepository), logger)

	s.app = views.NewApp(context.Background(), session, logger)
	home := views.NewHome(rooms, health)
	search := views.NewRooms(rooms, cart, s.app)
	cartView := views.NewCart(cart, s.app)
	checkoutView := views.NewCheckout(checkout, s.app)
	bookingsView := views.NewBookings(bookings, bus, logger)
	profileView := views.NewProfile(bookings, session)
	adminView := views.NewAdmin(admin, s.app)

	s.app.Register("/", home)
	s.app.Register("/rooms", search)
	s.app.Register("/cart", cartView)
	s.app.RegisterProtected("/checkout", checkoutView)
	s.app.RegisterProtected("/bookings", bookingsView)
	s.app.RegisterProtected("/profile", profileView)
	s.app.RegisterAdmin("/admin", adminView)
	t.Cleanup(s.app.Close)

	s.router = NewRouter(Handlers{
		User:     NewUserHandler(s.app, rooms, home, search, cartView, bookingsView, profileView),
		Checkout: NewCheckoutHandler(s.app, checkoutView),
		Admin:    NewAdminHandler(s.app, adminView),
		Auth:     NewAuthHandler(s.app, authSvc),
		System:   NewSystemHandler(s.app, health, s.toasts, logs),
	}, session)
	return s
}

func (s *testServer) login(t *testing.T, roles ...string) {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "u-7",
		"email": "ana@hotel.local",
		"name":  "Ana Ruiz",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if len(roles) > 0 {
		claims["role"] = roles
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, s.session.Save(token, nil))
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
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

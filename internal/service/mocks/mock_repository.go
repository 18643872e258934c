package mocks

import (
	"context"

	"hotelbooking/internal/entities"

	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of service.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) AddToCart(ctx context.Context, req entities.AddRoomRequest) (entities.CartState, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.CartState), args.Error(1)
}

func (m *MockCartRepository) GetCart(ctx context.Context) (entities.CartState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.CartState), args.Error(1)
}

func (m *MockCartRepository) ClearCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartRepository) ConfirmCart(ctx context.Context, req entities.BookingConfirmationRequest, idempotencyKey string) (*entities.BookingConfirmationResponse, error) {
	args := m.Called(ctx, req, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BookingConfirmationResponse), args.Error(1)
}

// MockBookingRepository is a mock implementation of service.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListBookings(ctx context.Context) ([]entities.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookingByID(ctx context.Context, id int) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

// MockAdminRepository is a mock implementation of service.AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) ListAllBookings(ctx context.Context) ([]entities.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Booking), args.Error(1)
}

func (m *MockAdminRepository) ConfirmBooking(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminRepository) RejectBooking(ctx context.Context, id int, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

// MockRoomRepository is a mock implementation of service.RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetRoomTypes(ctx context.Context) ([]entities.RoomType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.RoomType), args.Error(1)
}

func (m *MockRoomRepository) GetAvailableRooms(ctx context.Context, checkIn, checkOut string) ([]entities.Room, error) {
	args := m.Called(ctx, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Room), args.Error(1)
}

func (m *MockRoomRepository) SearchRooms(ctx context.Context, req entities.RoomSearchRequest) (*entities.RoomSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RoomSearchResponse), args.Error(1)
}

// MockAuthRepository is a mock implementation of service.AuthRepository
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthResponse), args.Error(1)
}

func (m *MockAuthRepository) Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthResponse), args.Error(1)
}

// MockHealthRepository is a mock implementation of service.HealthRepository
type MockHealthRepository struct {
	mock.Mock
}

func (m *MockHealthRepository) Check(ctx context.Context) (*entities.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HealthStatus), args.Error(1)
}

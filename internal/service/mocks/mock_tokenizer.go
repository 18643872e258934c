package mocks

import (
	"context"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenizer is a mock implementation of service.PaymentTokenizer
type MockTokenizer struct {
	mock.Mock
}

func (m *MockTokenizer) CreatePaymentMethod(ctx context.Context, card service.CardDetails, billing service.BillingDetails) (string, error) {
	args := m.Called(ctx, card, billing)
	return args.String(0), args.Error(1)
}

// MockReceiptSender is a mock implementation of service.ReceiptSender
type MockReceiptSender struct {
	mock.Mock
}

func (m *MockReceiptSender) SendBookingReceipt(r entities.ReceiptData) {
	m.Called(r)
}

package views

import (
	"context"
	"testing"
	"time"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckoutFlow_HappyPathHighlightsNewBooking(t *testing.T) {
	p := newPortal(t, 2*time.Second)
	ctx := context.Background()

	p.cartRepo.On("GetCart", mock.Anything).Return(entities.CartOccupied{Item: deluxeItem}, nil).Once()
	p.cartRepo.On("GetCart", mock.Anything).Return(entities.CartEmpty{Message: "Cart is empty"}, nil)
	p.tokenizer.On("CreatePaymentMethod", mock.Anything, paidForm.Card, mock.Anything).Return("pm_test_123", nil)
	p.cartRepo.On("ConfirmCart", mock.Anything, entities.BookingConfirmationRequest{PaymentMethodID: "pm_test_123"}, mock.Anything).
		Return(&entities.BookingConfirmationResponse{
			Message: "Booking confirmed",
			Booking: &entities.Booking{ID: 4501, RoomNumber: "101", RoomTypeName: "Deluxe Room", TotalCost: 600, Status: entities.BookingStatusConfirmed},
		}, nil)
	p.cartRepo.On("ClearCart", mock.Anything).Return(nil)
	older := entities.Booking{ID: 4400, RoomNumber: "204", Status: entities.BookingStatusCompleted}
	// the listing lags behind the confirmation at first
	p.bookRepo.On("ListBookings", mock.Anything).Return([]entities.Booking{older}, nil).Once()
	p.bookRepo.On("ListBookings", mock.Anything).Return([]entities.Booking{{ID: 4501, Status: entities.BookingStatusConfirmed}, older}, nil)

	require.NoError(t, p.app.Navigate(Navigation{Path: "/checkout"}))
	page := p.checkoutView.State().Page
	require.NotNil(t, page.Summary)
	assert.Equal(t, 600.0, page.Summary.TotalAmount)

	result, err := p.checkoutView.Submit(ctx, paidForm)
	require.NoError(t, err)
	assert.Equal(t, service.CheckoutSucceeded, result.State)

	assert.Equal(t, "/bookings", p.app.Location().Path)
	assert.False(t, p.checkoutView.Mounted())

	state := p.bookingsView.State()
	require.Len(t, state.Bookings, 2)
	assert.Equal(t, 4501, state.HighlightID)
	assert.Equal(t, 4501, state.Bookings[0].ID)
	assert.True(t, state.Bookings[0].Highlighted)
	assert.False(t, state.Bookings[1].Highlighted)

	cart, err := p.cart.GetCart(ctx)
	require.NoError(t, err)
	assert.IsType(t, entities.CartEmpty{}, cart)

	require.NoError(t, p.bookingsView.Reload(ctx))
	state = p.bookingsView.State()
	assert.Zero(t, state.HighlightID)
	assert.Len(t, state.Bookings, 2)
	_, pending := p.bus.GetNewBooking()
	assert.False(t, pending)
}

func TestCheckoutFlow_EmptyCartRedirectsAfterDelay(t *testing.T) {
	p := newPortal(t, 30*time.Millisecond)
	p.cartRepo.On("GetCart", mock.Anything).Return(entities.CartEmpty{Message: "Cart is empty"}, nil)

	require.NoError(t, p.app.Navigate(Navigation{Path: "/checkout"}))
	assert.Equal(t, "/checkout", p.app.Location().Path)
	require.NotNil(t, p.app.PendingRedirect())
	assert.Equal(t, "/cart", p.app.PendingRedirect().Path)

	assert.Eventually(t, func() bool { return p.app.Location().Path == "/cart" }, time.Second, 5*time.Millisecond)
	assert.Nil(t, p.app.PendingRedirect())
	p.cartRepo.AssertNotCalled(t, "ConfirmCart", mock.Anything, mock.Anything, mock.Anything)
	p.tokenizer.AssertNotCalled(t, "CreatePaymentMethod", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutFlow_LeavingCancelsPendingRedirect(t *testing.T) {
	p := newPortal(t, 50*time.Millisecond)
	p.cartRepo.On("GetCart", mock.Anything).Return(entities.CartEmpty{}, nil)
	p.bookRepo.On("ListBookings", mock.Anything).Return([]entities.Booking{}, nil)

	require.NoError(t, p.app.Navigate(Navigation{Path: "/checkout"}))
	require.NoError(t, p.app.Navigate(Navigation{Path: "/profile"}))

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, "/profile", p.app.Location().Path)
}

func TestCheckoutFlow_ExpiredSessionRoutesToLogin(t *testing.T) {
	p := newPortal(t, time.Second)
	p.cartRepo.On("GetCart", mock.Anything).Return(entities.CartOccupied{Item: deluxeItem}, nil)
	p.tokenizer.On("CreatePaymentMethod", mock.Anything, mock.Anything, mock.Anything).Return("pm_1", nil)
	p.cartRepo.On("ConfirmCart", mock.Anything, mock.Anything, mock.Anything).Return(nil, apiError(401))

	require.NoError(t, p.app.Navigate(Navigation{Path: "/checkout"}))
	result, err := p.checkoutView.Submit(context.Background(), paidForm)
	require.Error(t, err)

	assert.Equal(t, service.RetryRelogin, result.Retry)
	assert.Equal(t, Navigation{Path: "/login", ReturnURL: "/checkout"}, p.app.Location())
	assert.False(t, p.session.IsAuthenticated())
	p.tokenizer.AssertNumberOfCalls(t, "CreatePaymentMethod", 1)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
	"hotelbooking/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminService(session *fakeSession) (*service.AdminService, *mocks.MockAdminRepository, *mocks.MockRoomRepository, *recordingNotifier) {
	admin := new(mocks.MockAdminRepository)
	rooms := new(mocks.MockRoomRepository)
	notifier := &recordingNotifier{}
	return service.NewAdminService(admin, rooms, session, notifier, discardLogger()), admin, rooms, notifier
}

func TestAdminService_RejectWithBlankReasonSendsNothing(t *testing.T) {
	svc, admin, _, notifier := newAdminService(loggedIn(entities.AdminRole))

	for _, reason := range []string{"", "   "} {
		_, err := svc.RejectBooking(context.Background(), 9, reason)
		assert.ErrorIs(t, err, apperrors.ErrRejectionReasonRequired)
	}

	admin.AssertNotCalled(t, "RejectBooking", mock.Anything, mock.Anything, mock.Anything)
	admin.AssertNotCalled(t, "ListAllBookings", mock.Anything)
	assert.Equal(t, "Please provide a reason for rejection", notifier.last().Message)
	assert.Equal(t, service.NotificationWarning, notifier.last().Type)
}

func TestAdminService_MutationsRefetch(t *testing.T) {
	svc, admin, _, notifier := newAdminService(loggedIn(entities.AdminRole))

	before := []entities.Booking{{ID: 9, Status: entities.BookingStatusPending}}
	after := []entities.Booking{{ID: 9, Status: entities.BookingStatusConfirmed}}
	admin.On("ConfirmBooking", mock.Anything, 9).Return(nil)
	admin.On("RejectBooking", mock.Anything, 10, "Overbooked").Return(nil)
	admin.On("ListAllBookings", mock.Anything).Return(after, nil)

	listed, err := svc.ConfirmBooking(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, after, listed)
	assert.NotEqual(t, before, listed)

	_, err = svc.RejectBooking(context.Background(), 10, "  Overbooked ")
	require.NoError(t, err)

	admin.AssertNumberOfCalls(t, "ListAllBookings", 2)
	assert.Equal(t, []string{"Booking #9 confirmed", "Booking #10 rejected"}, notifier.messages(service.NotificationSuccess))
}

func TestAdminService_ConfirmFailureSurfacesBackendMessage(t *testing.T) {
	svc, admin, _, notifier := newAdminService(loggedIn(entities.AdminRole))
	admin.On("ConfirmBooking", mock.Anything, 9).Return(apperrors.NewAPIError(400, "Booking is not pending"))

	_, err := svc.ConfirmBooking(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, "Booking is not pending", notifier.last().Message)
	admin.AssertNotCalled(t, "ListAllBookings", mock.Anything)
}

func TestAdminService_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		session *fakeSession
		want    error
	}{
		{"anonymous", &fakeSession{}, apperrors.ErrNotAuthenticated},
		{"guest", loggedIn("Customer"), apperrors.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, admin, _, _ := newAdminService(tt.session)

			_, err := svc.Dashboard(context.Background())
			assert.ErrorIs(t, err, tt.want)
			_, err = svc.ConfirmBooking(context.Background(), 1)
			assert.ErrorIs(t, err, tt.want)
			admin.AssertNotCalled(t, "ConfirmBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestAdminService_Dashboard(t *testing.T) {
	svc, admin, rooms, _ := newAdminService(loggedIn(entities.AdminRole))
	svc.SetClock(func() time.Time { return time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC) })

	admin.On("ListAllBookings", mock.Anything).Return([]entities.Booking{
		{ID: 1, Status: "Pending", TotalCost: 100},
		{ID: 2, Status: "confirmed", TotalCost: 250},
		{ID: 3, Status: "Completed", TotalCost: 300},
		{ID: 4, Status: "Cancelled", TotalCost: 80},
		{ID: 5, Status: "Rejected", TotalCost: 90},
	}, nil)
	rooms.On("GetRoomTypes", mock.Anything).Return(nil, apperrors.NewAPIError(500, "down"))
	rooms.On("GetAvailableRooms", mock.Anything, "2025-06-15", "2025-06-16").Return([]entities.Room{{ID: 3, RoomNumber: "103"}}, nil)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, service.DashboardStats{
		TotalBookings: 5, Pending: 1, Confirmed: 1, Cancelled: 1, Completed: 1, Rejected: 1, TotalRevenue: 550,
	}, d.Stats)
	assert.Empty(t, d.RoomTypes)
	require.Len(t, d.AvailableToday, 1)
	assert.Equal(t, "103", d.AvailableToday[0].RoomNumber)
}

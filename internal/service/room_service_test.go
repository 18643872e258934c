package service_test

import (
	"context"
	"testing"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
	"hotelbooking/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoomService_SearchNormalizesQuery(t *testing.T) {
	repo := new(mocks.MockRoomRepository)
	repo.On("SearchRooms", mock.Anything, entities.RoomSearchRequest{
		CheckInDate: "2025-12-01", CheckOutDate: "2025-12-05", RoomTypeID: 2, PageNumber: 1,
	}).Return(&entities.RoomSearchResponse{TotalCount: 1}, nil)
	svc := service.NewRoomService(repo, discardLogger())

	resp, err := svc.Search(context.Background(), entities.RoomSearchRequest{
		CheckInDate: "2025-12-01T00:00:00", CheckOutDate: "2025-12-05", RoomTypeID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalCount)
	repo.AssertExpectations(t)
}

func TestRoomService_AvailableRejectsInvertedRange(t *testing.T) {
	repo := new(mocks.MockRoomRepository)
	svc := service.NewRoomService(repo, discardLogger())

	_, err := svc.Available(context.Background(), "2025-12-05", "2025-12-01")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
	repo.AssertNotCalled(t, "GetAvailableRooms", mock.Anything, mock.Anything, mock.Anything)
}

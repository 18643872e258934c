package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"hotelbooking/internal/entities"
)

type RoomRepository struct {
	API *APIClient
}

func NewRoomRepository(api *APIClient) *RoomRepository {
	return &RoomRepository{API: api}
}

func (r *RoomRepository) GetRoomTypes(ctx context.Context) ([]entities.RoomType, error) {
	var types []entities.RoomType
	if err := r.API.do(ctx, request{method: http.MethodGet, path: "/api/Rooms/types"}, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (r *RoomRepository) GetAvailableRooms(ctx context.Context, checkIn, checkOut string) ([]entities.Room, error) {
	query := url.Values{}
	query.Set("CheckInDate", checkIn)
	query.Set("CheckOutDate", checkOut)

	var rooms []entities.Room
	if err := r.API.do(ctx, request{method: http.MethodGet, path: "/api/Rooms/available", query: query}, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) SearchRooms(ctx context.Context, req entities.RoomSearchRequest) (*entities.RoomSearchResponse, error) {
	query := url.Values{}
	query.Set("CheckInDate", req.CheckInDate)
	query.Set("CheckOutDate", req.CheckOutDate)
	if req.RoomTypeID > 0 {
		query.Set("roomTypeId", strconv.Itoa(req.RoomTypeID))
	}
	if req.PageNumber > 0 {
		query.Set("pageNumber", strconv.Itoa(req.PageNumber))
	}

	var resp entities.RoomSearchResponse
	if err := r.API.do(ctx, request{method: http.MethodGet, path: "/api/Rooms/search", query: query}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

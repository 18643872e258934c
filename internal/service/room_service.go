package service

import (
	"context"
	"log/slog"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/utils"
)

type RoomService struct {
	repo   RoomRepository
	logger *slog.Logger
}

func NewRoomService(repo RoomRepository, logger *slog.Logger) *RoomService {
	return &RoomService{repo: repo, logger: logger}
}

func (s *RoomService) RoomTypes(ctx context.Context) ([]entities.RoomType, error) {
	return s.repo.GetRoomTypes(ctx)
}

func (s *RoomService) Available(ctx context.Context, from, to string) ([]entities.Room, error) {
	checkIn, checkOut, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAvailableRooms(ctx, checkIn, checkOut)
}

func (s *RoomService) Search(ctx context.Context, req entities.RoomSearchRequest) (*entities.RoomSearchResponse, error) {
	checkIn, checkOut, err := dateRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	req.CheckInDate, req.CheckOutDate = checkIn, checkOut
	if req.PageNumber < 1 {
		req.PageNumber = 1
	}
	resp, err := s.repo.SearchRooms(ctx, req)
	if err != nil {
		s.logger.Error("room search failed", "checkIn", checkIn, "checkOut", checkOut, "error", err)
		return nil, err
	}
	return resp, nil
}

func dateRange(from, to string) (string, string, error) {
	in, err := utils.ParseDate(from)
	if err != nil {
		return "", "", apperrors.NewValidationError("checkInDate", err.Error())
	}
	out, err := utils.ParseDate(to)
	if err != nil {
		return "", "", apperrors.NewValidationError("checkOutDate", err.Error())
	}
	if !out.After(in) {
		return "", "", apperrors.ErrInvalidDateRange
	}
	return in.Format(utils.DateLayout), out.Format(utils.DateLayout), nil
}

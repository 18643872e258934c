package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/utils"
)

// CartSnapshotKey holds the last known cart item. It is a display fallback
// only; the backend cart is authoritative.
const CartSnapshotKey = "bookingCart"

type CartService struct {
	repo     CartRepository
	session  Session
	store    KeyValueStore
	notifier Notifier
	logger   *slog.Logger
}

func NewCartService(repo CartRepository, session Session, store KeyValueStore, notifier Notifier, logger *slog.Logger) *CartService {
	return &CartService{repo: repo, session: session, store: store, notifier: notifier, logger: logger}
}

// AddResult is the outcome of AddToCart. Navigation is set when the user has
// to log in first.
type AddResult struct {
	State      entities.CartState
	Navigation *Navigation
}

// AddToCart puts a room in the session cart, replacing any previous item.
func (s *CartService) AddToCart(ctx context.Context, req entities.AddRoomRequest) (*AddResult, error) {
	if nav := requireLogin(s.session, s.notifier, ActionAddToCart, "/rooms"); nav != nil {
		return &AddResult{Navigation: nav}, apperrors.ErrNotAuthenticated
	}

	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		notifyError(s.notifier, "Please select a valid check-in date")
		return nil, apperrors.NewValidationError("checkInDate", err.Error())
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		notifyError(s.notifier, "Please select a valid check-out date")
		return nil, apperrors.NewValidationError("checkOutDate", err.Error())
	}
	if !checkOut.After(checkIn) {
		notifyError(s.notifier, apperrors.ErrInvalidDateRange.Error())
		return nil, apperrors.ErrInvalidDateRange
	}
	req.CheckInDate = checkIn.Format(utils.DateLayout)
	req.CheckOutDate = checkOut.Format(utils.DateLayout)

	if u := s.session.User(); u != nil {
		if req.CustomerName == "" {
			req.CustomerName = u.DisplayName()
		}
		if req.CustomerEmail == "" {
			req.CustomerEmail = u.Email
		}
	}

	state, err := s.repo.AddToCart(ctx, req)
	if err != nil {
		notifyError(s.notifier, addToCartMessage(err))
		s.logger.Error("add to cart failed", "roomId", req.RoomID, "status", apperrors.StatusOf(err), "error", err)
		return nil, err
	}

	// Some backend versions acknowledge with a message only.
	if _, ok := state.(entities.CartOccupied); !ok {
		if state, err = s.repo.GetCart(ctx); err != nil {
			return nil, fmt.Errorf("reading cart after add: %w", err)
		}
	}
	s.remember(state)
	notifySuccess(s.notifier, "Room added to cart")
	s.logger.Info("room added to cart", "roomId", req.RoomID, "checkIn", req.CheckInDate, "checkOut", req.CheckOutDate)
	return &AddResult{State: state}, nil
}

func addToCartMessage(err error) string {
	switch apperrors.StatusOf(err) {
	case http.StatusBadRequest:
		return apperrors.MessageOf(err, "Invalid booking request")
	case http.StatusUnauthorized:
		return loginWarnings[ActionAddToCart]
	case http.StatusNotFound:
		return apperrors.MessageOf(err, "Room is no longer available")
	}
	return "Failed to add room to cart"
}

// GetCart reads the backend cart and refreshes the local snapshot.
func (s *CartService) GetCart(ctx context.Context) (entities.CartState, error) {
	state, err := s.repo.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	s.remember(state)
	return state, nil
}

// ClearCart empties the backend cart and the snapshot. Safe to repeat.
func (s *CartService) ClearCart(ctx context.Context) error {
	if err := s.repo.ClearCart(ctx); err != nil {
		return err
	}
	s.forget()
	return nil
}

// CachedItem returns the snapshot written by the last successful cart read.
func (s *CartService) CachedItem() (entities.CartItem, bool) {
	raw, ok, err := s.store.Get(CartSnapshotKey)
	if err != nil || !ok {
		return entities.CartItem{}, false
	}
	var item entities.CartItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		s.logger.Warn("discarding unreadable cart snapshot", "error", err)
		return entities.CartItem{}, false
	}
	return item, true
}

// Count is the cart badge value.
func (s *CartService) Count() int {
	if _, ok := s.CachedItem(); ok {
		return 1
	}
	return 0
}

func (s *CartService) remember(state entities.CartState) {
	item, ok := entities.CartItemOf(state)
	if !ok {
		s.forget()
		return
	}
	raw, err := json.Marshal(item)
	if err == nil {
		err = s.store.Set(CartSnapshotKey, string(raw))
	}
	if err != nil {
		s.logger.Warn("saving cart snapshot failed", "error", err)
	}
}

func (s *CartService) forget() {
	if err := s.store.Remove(CartSnapshotKey); err != nil {
		s.logger.Warn("removing cart snapshot failed", "error", err)
	}
}

// IsUnreachable reports errors where no backend answer was received, the
// case in which views fall back to the snapshot.
func IsUnreachable(err error) bool {
	return err != nil && apperrors.StatusOf(err) == 0 && !errors.Is(err, context.Canceled)
}

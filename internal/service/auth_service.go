package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"

	"github.com/go-playground/validator/v10"
)

type AuthService struct {
	repo     AuthRepository
	session  Session
	cart     *CartService
	notifier Notifier
	logger   *slog.Logger
	validate *validator.Validate
}

func NewAuthService(repo AuthRepository, session Session, cart *CartService, notifier Notifier, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		session:  session,
		cart:     cart,
		notifier: notifier,
		logger:   logger,
		validate: validator.New(),
	}
}

func (s *AuthService) Login(ctx context.Context, req entities.LoginRequest) (*entities.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, firstFieldError(err)
	}

	resp, err := s.repo.Login(ctx, req)
	if err != nil {
		msg := "Login failed. Please try again."
		if apperrors.StatusOf(err) == http.StatusUnauthorized || apperrors.StatusOf(err) == http.StatusBadRequest {
			msg = apperrors.MessageOf(err, "Invalid email or password")
		}
		notifyError(s.notifier, msg)
		s.logger.Error("login failed", "email", req.Email, "status", apperrors.StatusOf(err), "error", err)
		return nil, err
	}

	if err := s.startSession(resp); err != nil {
		notifyError(s.notifier, "Login failed. Please try again.")
		return nil, err
	}
	user := s.session.User()
	name := req.Email
	if user != nil && user.DisplayName() != "" {
		name = user.DisplayName()
	}
	notifySuccess(s.notifier, fmt.Sprintf("Welcome back, %s!", name))
	s.logger.Info("user logged in", "email", req.Email)
	return user, nil
}

// Register creates an account. Backends that return a token on registration
// also start a session; the returned user is nil otherwise.
func (s *AuthService) Register(ctx context.Context, req entities.RegisterRequest) (*entities.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, firstFieldError(err)
	}

	resp, err := s.repo.Register(ctx, req)
	if err != nil {
		notifyError(s.notifier, apperrors.MessageOf(err, "Registration failed. Please try again."))
		s.logger.Error("registration failed", "email", req.Email, "status", apperrors.StatusOf(err), "error", err)
		return nil, err
	}

	if resp.BearerToken() == "" {
		notifySuccess(s.notifier, "Registration successful! Please login.")
		s.logger.Info("user registered", "email", req.Email)
		return nil, nil
	}
	if err := s.startSession(resp); err != nil {
		return nil, err
	}
	notifySuccess(s.notifier, "Registration successful!")
	s.logger.Info("user registered and logged in", "email", req.Email)
	return s.session.User(), nil
}

func (s *AuthService) startSession(resp *entities.AuthResponse) error {
	token := resp.BearerToken()
	if token == "" {
		return errors.New("auth response carried no token")
	}
	return s.session.Save(token, resp.Profile())
}

// Logout drops the session and the local cart snapshot.
func (s *AuthService) Logout() error {
	if err := s.session.Clear(); err != nil {
		return err
	}
	if s.cart != nil {
		s.cart.forget()
	}
	notifyInfo(s.notifier, "You have been logged out")
	s.logger.Info("user logged out")
	return nil
}

func (s *AuthService) CurrentUser() (*entities.User, bool) {
	if !s.session.IsAuthenticated() {
		return nil, false
	}
	return s.session.User(), true
}

// CanPerform checks the login precondition of a user action and, when it
// fails, raises the action's warning and returns the login redirect.
func (s *AuthService) CanPerform(action Action, returnURL string) (*Navigation, bool) {
	nav := requireLogin(s.session, s.notifier, action, returnURL)
	return nav, nav == nil
}

func firstFieldError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.NewValidationError(fe.Field(), fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
	}
	return err
}

package service_test

import (
	"context"
	"testing"
	"time"

	"hotelbooking/internal/auth"
	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
	"hotelbooking/internal/service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u-1",
		"email": "admin@hotel.local",
		"name":  "Hotel Admin",
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role": "Admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func newAuthService(t *testing.T) (*service.AuthService, *mocks.MockAuthRepository, *auth.SessionStore, *memStore, *recordingNotifier) {
	t.Helper()
	store := newMemStore()
	session, err := auth.NewSessionStore(store, nil)
	require.NoError(t, err)
	repo := new(mocks.MockAuthRepository)
	notifier := &recordingNotifier{}
	cart := service.NewCartService(new(mocks.MockCartRepository), session, store, notifier, discardLogger())
	return service.NewAuthService(repo, session, cart, notifier, discardLogger()), repo, session, store, notifier
}

func TestAuthService_LoginTokenShapes(t *testing.T) {
	tests := []struct {
		name string
		resp func(token string) *entities.AuthResponse
	}{
		{"token", func(tok string) *entities.AuthResponse { return &entities.AuthResponse{Token: tok} }},
		{"accessToken", func(tok string) *entities.AuthResponse { return &entities.AuthResponse{AccessToken: tok} }},
		{"jwt", func(tok string) *entities.AuthResponse { return &entities.AuthResponse{JWT: tok} }},
		{"nested data", func(tok string) *entities.AuthResponse {
			resp := &entities.AuthResponse{}
			resp.Data = &struct {
				Token string         `json:"token,omitempty"`
				User  *entities.User `json:"user,omitempty"`
			}{Token: tok}
			return resp
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, session, _, notifier := newAuthService(t)
			token := adminToken(t)
			req := entities.LoginRequest{Email: "admin@hotel.local", Password: "secret1"}
			repo.On("Login", mock.Anything, req).Return(tt.resp(token), nil)

			user, err := svc.Login(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, token, session.Token())
			assert.Equal(t, "Hotel Admin", user.Name)
			assert.True(t, session.IsAdmin())
			assert.Equal(t, "Welcome back, Hotel Admin!", notifier.last().Message)
		})
	}
}

func TestAuthService_LoginValidatesBeforeCalling(t *testing.T) {
	svc, repo, _, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), entities.LoginRequest{Email: "not-an-email", Password: "x"})

	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Email", verr.Field)
	repo.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthService_LoginRejected(t *testing.T) {
	svc, repo, session, _, notifier := newAuthService(t)
	repo.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.NewAPIError(401, ""))

	_, err := svc.Login(context.Background(), entities.LoginRequest{Email: "a@b.co", Password: "wrong"})

	assert.True(t, apperrors.IsUnauthorized(err))
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, "Invalid email or password", notifier.last().Message)
}

func TestAuthService_RegisterWithoutToken(t *testing.T) {
	svc, repo, session, _, notifier := newAuthService(t)
	repo.On("Register", mock.Anything, mock.Anything).Return(&entities.AuthResponse{Message: "User created"}, nil)

	user, err := svc.Register(context.Background(), entities.RegisterRequest{
		FirstName: "Ana", LastName: "Ruiz", Email: "ana@hotel.local", UserName: "ana", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, "Registration successful! Please login.", notifier.last().Message)
}

func TestAuthService_LogoutDropsSessionAndSnapshot(t *testing.T) {
	svc, repo, session, store, notifier := newAuthService(t)
	repo.On("Login", mock.Anything, mock.Anything).Return(&entities.AuthResponse{Token: adminToken(t)}, nil)
	_, err := svc.Login(context.Background(), entities.LoginRequest{Email: "admin@hotel.local", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, store.Set(service.CartSnapshotKey, `{"roomId":1}`))

	require.NoError(t, svc.Logout())

	assert.False(t, session.IsAuthenticated())
	_, ok, _ := store.Get(service.CartSnapshotKey)
	assert.False(t, ok)
	_, ok, _ = store.Get(auth.TokenKey)
	assert.False(t, ok)
	assert.Equal(t, "You have been logged out", notifier.last().Message)
	_, authed := svc.CurrentUser()
	assert.False(t, authed)
}

func TestAuthService_CanPerform(t *testing.T) {
	svc, _, _, _, notifier := newAuthService(t)

	nav, ok := svc.CanPerform(service.ActionAddToCart, "/rooms")
	assert.False(t, ok)
	assert.Equal(t, "/login", nav.Path)
	assert.Equal(t, "/rooms", nav.ReturnURL)

	_, ok = svc.CanPerform(service.ActionCheckout, "/checkout")
	assert.False(t, ok)

	assert.Equal(t, []string{
		"Please login to add items to your cart",
		"Please login to proceed with booking",
	}, notifier.messages(service.NotificationWarning))
}

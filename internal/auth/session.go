package auth

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hotelbooking/internal/entities"
)

const (
	TokenKey = "auth_token"
	UserKey  = "user_data"
)

// Storage is the durable key/value area the session persists into.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// SessionStore holds the bearer token and user profile. The token is sealed
// at rest when a Sealer is configured.
type SessionStore struct {
	mu      sync.RWMutex
	storage Storage
	sealer  *Sealer
	token   string
	user    *entities.User
	now     func() time.Time
}

// NewSessionStore restores a previous session from storage, if any.
func NewSessionStore(storage Storage, sealer *Sealer) (*SessionStore, error) {
	s := &SessionStore{storage: storage, sealer: sealer, now: time.Now}

	stored, ok, err := storage.Get(TokenKey)
	if err != nil {
		return nil, err
	}
	if ok {
		token, err := sealer.Open(stored)
		if err != nil {
			return nil, fmt.Errorf("restoring session token: %w", err)
		}
		s.token = token
	}

	rawUser, ok, err := storage.Get(UserKey)
	if err != nil {
		return nil, err
	}
	if ok && rawUser != "" {
		var u entities.User
		if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
			return nil, fmt.Errorf("restoring session user: %w", err)
		}
		s.user = &u
	}
	return s, nil
}

// Save replaces the session. A nil user is derived from the token claims.
func (s *SessionStore) Save(token string, user *entities.User) error {
	if user == nil {
		if claims, err := ParseClaims(token); err == nil {
			u := claims.User()
			user = &u
		}
	}

	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return err
	}
	if err := s.storage.Set(TokenKey, sealed); err != nil {
		return err
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encoding session user: %w", err)
		}
		if err := s.storage.Set(UserKey, string(raw)); err != nil {
			return err
		}
	} else if err := s.storage.Remove(UserKey); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Remove(TokenKey); err != nil {
		return err
	}
	return s.storage.Remove(UserKey)
}

// Token returns the bearer token, or "" once it has expired.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return ""
	}
	if claims, err := ParseClaims(token); err == nil && claims.Expired(s.now()) {
		return ""
	}
	return token
}

func (s *SessionStore) User() *entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin checks the stored profile first and falls back to token roles.
func (s *SessionStore) IsAdmin() bool {
	if !s.IsAuthenticated() {
		return false
	}
	if u := s.User(); u != nil && u.HasRole(entities.AdminRole) {
		return true
	}
	claims, err := ParseClaims(s.Token())
	return err == nil && claims.HasRole(entities.AdminRole)
}

package service_test

import (
	"io"
	"log/slog"
	"sync"

	"hotelbooking/internal/entities"
	"hotelbooking/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakeSession struct {
	mu    sync.Mutex
	token string
	user  *entities.User
}

func loggedIn(roles ...string) *fakeSession {
	return &fakeSession{
		token: "token",
		user:  &entities.User{Email: "ana@hotel.local", FirstName: "Ana", LastName: "Ruiz", Roles: roles},
	}
}

func (s *fakeSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeSession) User() *entities.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *fakeSession) IsAuthenticated() bool { return s.Token() != "" }

func (s *fakeSession) IsAdmin() bool {
	u := s.User()
	return s.IsAuthenticated() && u != nil && u.HasRole(entities.AdminRole)
}

func (s *fakeSession) Save(token string, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, user
	return nil
}

func (s *fakeSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []service.Notification
}

func (r *recordingNotifier) Notify(n service.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recordingNotifier) all() []service.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]service.Notification(nil), r.notes...)
}

func (r *recordingNotifier) last() service.Notification {
	all := r.all()
	if len(all) == 0 {
		return service.Notification{}
	}
	return all[len(all)-1]
}

func (r *recordingNotifier) messages(t service.NotificationType) []string {
	var out []string
	for _, n := range r.all() {
		if n.Type == t {
			out = append(out, n.Message)
		}
	}
	return out
}

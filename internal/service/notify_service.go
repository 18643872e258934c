package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Toast struct {
	ID         string           `json:"id"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	DurationMs int64            `json:"durationMs"`
	CreatedAt  time.Time        `json:"createdAt"`
	ExpiresAt  time.Time        `json:"expiresAt"`
}

// ToastService keeps the notifications a UI shell should currently show.
// Toasts disappear when their duration elapses or when dismissed.
type ToastService struct {
	mu     sync.Mutex
	toasts []Toast
	logger *slog.Logger
	now    func() time.Time
}

func NewToastService(logger *slog.Logger) *ToastService {
	return &ToastService{logger: logger, now: time.Now}
}

func (s *ToastService) Notify(n Notification) {
	if n.Duration <= 0 {
		n.Duration = DefaultNotificationDuration
	}
	if n.Type == "" {
		n.Type = NotificationInfo
	}
	now := s.now()
	toast := Toast{
		ID:         uuid.NewString(),
		Message:    n.Message,
		Type:       n.Type,
		DurationMs: n.Duration.Milliseconds(),
		CreatedAt:  now,
		ExpiresAt:  now.Add(n.Duration),
	}

	s.mu.Lock()
	s.toasts = append(s.toasts, toast)
	s.mu.Unlock()

	s.logger.Debug("toast raised", "type", string(n.Type), "message", n.Message)
}

// Active returns the toasts that have not expired, oldest first.
func (s *ToastService) Active() []Toast {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
	return append([]Toast(nil), kept...)
}

func (s *ToastService) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

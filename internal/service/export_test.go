package service

import (
	"log/slog"
	"time"
)

func (s *CheckoutService) SetClock(now func() time.Time)   { s.now = now }
func (s *CheckoutService) SetKeyGenerator(f func() string) { s.newKey = f }
func (s *AdminService) SetClock(now func() time.Time)      { s.now = now }
func (s *ToastService) SetClock(now func() time.Time)      { s.now = now }

func NewSenderServiceWithClients(email emailClient, sms smsClient, fromEmail, fromNumber string, logger *slog.Logger) *SenderService {
	return &SenderService{
		email:      email,
		sms:        sms,
		fromEmail:  fromEmail,
		fromName:   "Hotel Booking",
		fromNumber: fromNumber,
		logger:     logger,
	}
}

package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"hotelbooking/internal/config"
	"hotelbooking/internal/entities"
	"hotelbooking/internal/utils"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type emailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type smsClient interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SenderService delivers booking receipts by email (SendGrid) and SMS
// (Twilio). Either channel is skipped when it is not configured.
type SenderService struct {
	email      emailClient
	sms        smsClient
	fromEmail  string
	fromName   string
	fromNumber string
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func NewSenderService(cfg *config.Config, logger *slog.Logger) *SenderService {
	s := &SenderService{
		fromEmail:  cfg.SendGridFromEmail,
		fromName:   cfg.SendGridFromName,
		fromNumber: cfg.TwilioFromNumber,
		logger:     logger,
	}
	if cfg.EmailEnabled() {
		s.email = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	if cfg.SMSEnabled() {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username:   cfg.TwilioAccountSID,
			Password:   cfg.TwilioAuthToken,
			AccountSid: cfg.TwilioAccountSID,
		})
		s.sms = client.Api
	}
	return s
}

// SendBookingReceipt fires the email and SMS in the background. Failures are
// logged and never reach the checkout flow.
func (s *SenderService) SendBookingReceipt(r entities.ReceiptData) {
	if s.email != nil && r.GuestEmail != "" {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.sendEmail(r); err != nil {
				s.logger.Error("booking receipt email failed", "bookingId", r.BookingID, "error", err)
			}
		}()
	}
	if s.sms != nil && r.GuestPhone != "" {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.sendSMS(r); err != nil {
				s.logger.Error("booking confirmation SMS failed", "bookingId", r.BookingID, "error", err)
			}
		}()
	}
}

// Wait blocks until in-flight deliveries finish.
func (s *SenderService) Wait() {
	s.wg.Wait()
}

func (s *SenderService) sendEmail(r entities.ReceiptData) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(r.GuestName, r.GuestEmail)
	subject := fmt.Sprintf("Your booking #%d is %s", r.BookingID, strings.ToLower(string(r.Status)))
	message := mail.NewSingleEmail(from, subject, to, ReceiptText(r), "")

	response, err := s.email.Send(message)
	if err != nil {
		return fmt.Errorf("sending email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	s.logger.Info("booking receipt emailed", "bookingId", r.BookingID, "to", r.GuestEmail)
	return nil
}

func (s *SenderService) sendSMS(r entities.ReceiptData) error {
	if !strings.HasPrefix(r.GuestPhone, "+") {
		s.logger.Warn("phone number is not in E.164 format, SMS may fail", "to", r.GuestPhone)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(r.GuestPhone)
	params.SetFrom(s.fromNumber)
	params.SetBody(fmt.Sprintf("Hotel booking #%d is %s. Room %s, check-in %s, check-out %s. Total $%.2f.",
		r.BookingID, strings.ToLower(string(r.Status)), r.RoomNumber,
		utils.FormatDate(r.CheckIn), utils.FormatDate(r.CheckOut), r.TotalCost))

	resp, err := s.sms.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sending SMS via Twilio: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		s.logger.Info("booking confirmation SMS sent", "bookingId", r.BookingID, "sid", *resp.Sid)
	}
	return nil
}

// ReceiptText renders the plain-text booking receipt.
func ReceiptText(r entities.ReceiptData) string {
	var b strings.Builder
	b.WriteString("HOTEL BOOKING RECEIPT\n")
	b.WriteString("=====================\n\n")
	fmt.Fprintf(&b, "Booking ID:   %d\n", r.BookingID)
	fmt.Fprintf(&b, "Status:       %s\n", r.Status)
	if r.BookedOn != "" {
		fmt.Fprintf(&b, "Booked on:    %s\n", utils.FormatDate(r.BookedOn))
	}
	b.WriteString("\nGuest\n")
	fmt.Fprintf(&b, "Name:         %s\n", r.GuestName)
	fmt.Fprintf(&b, "Email:        %s\n", r.GuestEmail)
	if r.GuestPhone != "" {
		fmt.Fprintf(&b, "Phone:        %s\n", r.GuestPhone)
	}
	b.WriteString("\nStay\n")
	fmt.Fprintf(&b, "Room:         %s (%s)\n", r.RoomNumber, r.RoomTypeName)
	fmt.Fprintf(&b, "Check-in:     %s\n", utils.FormatDate(r.CheckIn))
	fmt.Fprintf(&b, "Check-out:    %s\n", utils.FormatDate(r.CheckOut))
	fmt.Fprintf(&b, "Nights:       %d\n", r.NumberOfNights)
	fmt.Fprintf(&b, "\nTotal:        $%.2f\n", r.TotalCost)
	b.WriteString("\nThank you for staying with us.\n")
	return b.String()
}

// ReceiptFromBooking fills receipt data from a booking record.
func ReceiptFromBooking(b entities.Booking) entities.ReceiptData {
	return entities.ReceiptData{
		BookingID:      b.ID,
		GuestName:      b.CustomerName,
		GuestEmail:     b.CustomerEmail,
		RoomNumber:     b.RoomNumber,
		RoomTypeName:   b.RoomTypeName,
		CheckIn:        b.CheckInDate,
		CheckOut:       b.CheckOutDate,
		NumberOfNights: b.NumberOfNights,
		TotalCost:      b.TotalCost,
		Status:         b.Status,
		BookedOn:       b.CreatedAt,
	}
}

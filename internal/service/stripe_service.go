package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentmethod"
)

type CardDetails struct {
	Number   string `json:"number"`
	ExpMonth int64  `json:"expMonth"`
	ExpYear  int64  `json:"expYear"`
	CVC      string `json:"cvc"`
}

type BillingDetails struct {
	Name  string
	Email string
	Phone string
}

// PaymentTokenizer exchanges card data for an opaque payment-method id.
// Card data never leaves the tokenizer.
type PaymentTokenizer interface {
	CreatePaymentMethod(ctx context.Context, card CardDetails, billing BillingDetails) (string, error)
}

// ProviderError is a card or request failure reported by the payment
// provider. Message is shown to the user verbatim.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

type StripeService struct {
	methods paymentmethod.Client
}

// NewStripeService creates a tokenizer authenticated with a publishable key.
// apiURL overrides the Stripe endpoint (stripe-mock, tests); httpClient may
// be nil.
func NewStripeService(publishableKey, apiURL string, httpClient *http.Client, logger *slog.Logger) *StripeService {
	cfg := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		LeveledLogger:     &stripeLogger{logger: logger},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if apiURL != "" {
		cfg.URL = stripe.String(apiURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
	return &StripeService{methods: paymentmethod.Client{B: backend, Key: publishableKey}}
}

func (s *StripeService) CreatePaymentMethod(ctx context.Context, card CardDetails, billing BillingDetails) (string, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name:  stripe.String(billing.Name),
			Email: stripe.String(billing.Email),
			Phone: stripe.String(billing.Phone),
		},
	}
	params.Context = ctx

	pm, err := s.methods.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return "", &ProviderError{Code: string(stripeErr.Code), Message: stripeErr.Msg}
		}
		return "", fmt.Errorf("creating payment method: %w", err)
	}
	return pm.ID, nil
}

// stripeLogger routes stripe-go's leveled logging into slog.
type stripeLogger struct {
	logger *slog.Logger
}

func (l *stripeLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *stripeLogger) Infof(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *stripeLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *stripeLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "stripe")
}

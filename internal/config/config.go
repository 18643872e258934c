package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                   = "8080"
	DefaultAPIBaseURL             = "http://localhost:5000"
	DefaultStorageDSN             = "file:hotelbooking.db"
	DefaultHTTPTimeout            = 15 * time.Second
	DefaultHealthCheckSchedule    = "@every 30s"
	DefaultEmptyCartRedirectDelay = 2 * time.Second
)

type Config struct {
	Port       string
	APIBaseURL string

	StripePublishableKey string
	StripeAPIURL         string

	StorageDSN    string
	StorageSecret string

	HTTPTimeout            time.Duration
	HealthCheckSchedule    string
	EmptyCartRedirectDelay time.Duration

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:                 getEnv("PORT", DefaultPort),
		APIBaseURL:           strings.TrimRight(getEnv("API_BASE_URL", DefaultAPIBaseURL), "/"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeAPIURL:         os.Getenv("STRIPE_API_URL"),
		StorageDSN:           getEnv("STORAGE_DSN", DefaultStorageDSN),
		StorageSecret:        os.Getenv("STORAGE_SECRET"),
		HealthCheckSchedule:  getEnv("HEALTH_CHECK_SCHEDULE", DefaultHealthCheckSchedule),
		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail:    os.Getenv("SENDGRID_FROM_EMAIL"),
		SendGridFromName:     getEnv("SENDGRID_FROM_NAME", "Hotel Booking"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:     os.Getenv("TWILIO_FROM_NUMBER"),
	}

	var err error
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.EmptyCartRedirectDelay, err = getDuration("EMPTY_CART_REDIRECT_DELAY", DefaultEmptyCartRedirectDelay); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the checkout flow cannot run with.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL not set")
	}
	if c.StripePublishableKey == "" {
		return fmt.Errorf("STRIPE_PUBLISHABLE_KEY not set")
	}
	if !strings.HasPrefix(c.StripePublishableKey, "pk_") {
		return fmt.Errorf("STRIPE_PUBLISHABLE_KEY must be a publishable key (pk_...)")
	}
	return nil
}

func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridFromEmail != ""
}

func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

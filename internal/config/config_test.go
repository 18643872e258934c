package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_123")
	t.Setenv("API_BASE_URL", "http://hotel.local/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "http://hotel.local", cfg.APIBaseURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultEmptyCartRedirectDelay, cfg.EmptyCartRedirectDelay)
	assert.Equal(t, DefaultHealthCheckSchedule, cfg.HealthCheckSchedule)
	assert.False(t, cfg.EmailEnabled())
	assert.False(t, cfg.SMSEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_123")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("EMPTY_CART_REDIRECT_DELAY", "500ms")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("SENDGRID_FROM_EMAIL", "stay@hotel.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.EmptyCartRedirectDelay)
	assert.True(t, cfg.EmailEnabled())
}

func TestLoad_RejectsBadStripeKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"missing", ""},
		{"secret key", "sk_test_123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STRIPE_PUBLISHABLE_KEY", tt.key)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_123")
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

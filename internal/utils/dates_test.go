package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-01", "2025-12-01"},
		{"2025-12-01T00:00:00", "2025-12-01"},
		{"2025-12-05T14:30:00Z", "2025-12-05"},
		{" 2025-12-05 ", "2025-12-05"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(DateLayout))
		})
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestNights(t *testing.T) {
	in := time.Date(2025, 12, 1, 15, 0, 0, 0, time.UTC)
	out := time.Date(2025, 12, 5, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, Nights(in, out))
	assert.Equal(t, 0, Nights(in, in))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "12/01/2025", FormatDate("2025-12-01T00:00:00"))
	assert.Equal(t, "soon", FormatDate("soon"))
}

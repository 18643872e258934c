package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the yyyy-mm-dd form the backend expects in queries and payloads.
const DateLayout = "2006-01-02"

var acceptedLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// ParseDate accepts plain dates and the timestamp shapes the backend echoes back.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Nights counts whole nights between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	in := StartOfDay(checkIn)
	out := StartOfDay(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders a backend date for receipts; unparseable values pass through.
func FormatDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("01/02/2006")
}

// NormalizeDate rewrites s as yyyy-mm-dd.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

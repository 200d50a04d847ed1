package sales

import (
	"fmt"
	"time"
)

const (
	// DayLayout is the calendar-day key format (YYYY-MM-DD)
	DayLayout = "2006-01-02"
	// MonthLayout is the calendar-month key format (YYYY-MM)
	MonthLayout = "2006-01"
)

// DayKey formats t as a calendar-day key, ignoring time of day
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// MonthKey formats t as a calendar-month key
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseDay parses a YYYY-MM-DD key into midnight UTC
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseTimestamp accepts the date shapes the backend emits: RFC 3339, a naive
// ISO timestamp with optional fraction, or a bare calendar day.
func ParseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		DayLayout,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

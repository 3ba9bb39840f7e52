package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// TimeOfDayLayout is the wire format for times of day.
	TimeOfDayLayout = "15:04:05"
)

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseDatePtr parses an optional date field; nil or empty means absent.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDatePtr renders an optional date for the wire.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ValidateTimeOfDay checks an optional HH:MM:SS field; nil or empty means
// absent.
func ValidateTimeOfDay(s *string) error {
	if s == nil || *s == "" {
		return nil
	}
	if _, err := time.Parse(TimeOfDayLayout, *s); err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM:SS", *s)
	}
	return nil
}

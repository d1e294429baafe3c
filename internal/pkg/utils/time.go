package utils

import (
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"strings"
	"time"
)

var dateTimeLayouts = []string{
	constvars.LayoutDateTime,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseDate parses YYYY-MM-DD as a calendar date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(value)
	t, err := time.ParseInLocation(constvars.LayoutDate, s, loc)
	if err != nil {
		return time.Time{}, exceptions.ErrInvalidDate(err, value)
	}
	return t, nil
}

// ParseDateTime parses a naive YYYY-MM-DDTHH:MM[:SS] (T or space separated)
// as wall-clock time in loc. RFC 3339 values with an explicit offset are
// accepted and converted into loc.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, exceptions.ErrInvalidDateTime(err, value)
	}
	return t.In(loc), nil
}

// DateOrToday parses value, or returns today's date in loc when value is empty.
func DateOrToday(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		n := now.In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc), nil
	}
	return ParseDate(value, loc)
}

// DateTimeOrNow parses value, or returns now in loc when value is empty.
func DateTimeOrNow(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return now.In(loc), nil
	}
	return ParseDateTime(value, loc)
}

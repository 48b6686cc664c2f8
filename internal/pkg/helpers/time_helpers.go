package helpers

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return d, nil
}

// ParseOptionalDate is ParseDate for nil-able inputs
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// IsClock reports whether value is a 24h HH:MM time
func IsClock(value string) bool {
	return clockPattern.MatchString(value)
}

// ClockBefore reports whether HH:MM a is strictly earlier than b; both must satisfy IsClock
func ClockBefore(a, b string) bool {
	return a < b
}

// DateOnly truncates t to its calendar date in loc, returned as midnight UTC
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SessionStart combines a session date and HH:MM clock in loc
func SessionStart(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	if !IsClock(clock) {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	if loc == nil {
		loc = time.UTC
	}
	var hh, mm int
	if _, err := fmt.Sscanf(clock, "%02d:%02d", &hh, &mm); err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, hh, mm, 0, 0, loc), nil
}

// WeekdayDates lists every date in [start, end] falling on weekday, minus skip
func WeekdayDates(start, end time.Time, weekday time.Weekday, skip map[string]bool) []time.Time {
	start = DateOnly(start, nil)
	end = DateOnly(end, nil)

	offset := (int(weekday) - int(start.Weekday()) + 7) % 7
	var dates []time.Time
	for d := start.AddDate(0, 0, offset); !d.After(end); d = d.AddDate(0, 0, 7) {
		if skip[d.Format(DateLayout)] {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

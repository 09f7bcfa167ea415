// Package dateparse parses the relative and absolute date strings accepted by
// the due-date range filter into points in time.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimeFrom parses a date input string relative to now and returns the
// local midnight of the denoted day, or the exact minute when a time of day
// is given. Empty input yields the zero time, which callers treat as an
// absent bound.
//
// Supported formats:
//   - Exact dates: "2026-03-01", "2026-03-01 18:30"
//   - Relative offsets: "+7d", "-1d", "+2w", "+1m"
//   - Day names: "monday", "tuesday", etc. (next occurrence)
//   - Keywords: "today", "tomorrow", "yesterday", "next-week", "next-month"
func ParseTimeFrom(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, nil
	}
	loc := now.Location()

	if t, err := time.ParseInLocation("2006-01-02 15:04", input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return t, nil
	}

	today := StartOfDay(now)

	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		// Next Monday
		daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
		if daysUntilMonday == 0 {
			daysUntilMonday = 7
		}
		return today.AddDate(0, 0, daysUntilMonday), nil
	case "next-month":
		year, month, _ := now.Date()
		return time.Date(year, month+1, 1, 0, 0, 0, 0, loc), nil
	}

	// Relative offsets: +Nd, -Nd, +Nw, +Nm
	if (input[0] == '+' || input[0] == '-') && len(input) >= 3 {
		sign := 1
		if input[0] == '-' {
			sign = -1
		}
		suffix := input[len(input)-1]
		n, err := strconv.Atoi(input[1 : len(input)-1])
		if err == nil && n >= 0 {
			n *= sign
			switch suffix {
			case 'd':
				return today.AddDate(0, 0, n), nil
			case 'w':
				return today.AddDate(0, 0, n*7), nil
			case 'm':
				return today.AddDate(0, n, 0), nil
			default:
				return time.Time{}, fmt.Errorf("unknown relative unit %q in %q (use d, w, or m)", string(suffix), input)
			}
		}
	}

	// Day names: next occurrence of that weekday
	dayMap := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	if target, ok := dayMap[input]; ok {
		daysAhead := (int(target) - int(now.Weekday()) + 7) % 7
		if daysAhead == 0 {
			daysAhead = 7 // always advance to next occurrence
		}
		return today.AddDate(0, 0, daysAhead), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", input)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// FormatInput renders t back into the exact-date input form, or "" for the
// zero time. Used to pre-fill range inputs.
func FormatInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}

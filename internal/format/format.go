// Package format renders points in time as the date strings shown in the
// assignment table.
package format

import (
	"fmt"
	"time"
)

// weekdays is indexed by time.Weekday (0 = Sunday).
var weekdays = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// Weekday returns the single-symbol weekday name for t.
func Weekday(t time.Time) string {
	return weekdays[t.Weekday()]
}

// Date formats t as "YYYY-MM-DD (曜)" in t's location.
func Date(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d (%s)", t.Year(), int(t.Month()), t.Day(), Weekday(t))
}

// DateTime formats t as "YYYY-MM-DD (曜) HH:MM" in t's location.
func DateTime(t time.Time) string {
	return fmt.Sprintf("%s %02d:%02d", Date(t), t.Hour(), t.Minute())
}

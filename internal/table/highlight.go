package table

import "time"

// HighlightWindow is how far ahead a deadline counts as near
const HighlightWindow = 24 * time.Hour

// NearDeadline reports whether due is strictly between now and now+24h.
func NearDeadline(due, now time.Time) bool {
	delta := due.Sub(now)
	return delta > 0 && delta < HighlightWindow
}

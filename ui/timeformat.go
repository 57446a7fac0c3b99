package ui

import (
	"fmt"
	"time"
)

// FormatSince formats how long before now t happened.
// Examples: "just now", "12s ago", "2m ago", "3h ago"
func FormatSince(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
}

// FormatLastSettled formats when the overlay last came to rest, handling a
// zero time (still moving since start).
func FormatLastSettled(t, now time.Time) string {
	if t.IsZero() {
		return "moving"
	}
	return FormatSince(t, now)
}

package util

import (
	"fmt"
	"time"
)

// RelativeTime formats a time relative to now (e.g., "2 hours ago"). Future
// times read as countdowns ("in 2 hours"), which market deadlines and action
// expiries need.
func RelativeTime(t time.Time) string {
	diff := time.Until(t)
	if diff > 0 {
		if n, unit := span(diff); unit != "" {
			return fmt.Sprintf("in %s", plural(n, unit))
		}
		return t.Format("Jan 2, 2006")
	}

	diff = -diff
	if diff < time.Minute {
		return "just now"
	}
	if n, unit := span(diff); unit != "" {
		return fmt.Sprintf("%s ago", plural(n, unit))
	}
	return t.Format("Jan 2, 2006")
}

// RelativeTimeShort is the compact column form (e.g., "2h ago", "in 3d").
func RelativeTimeShort(t time.Time) string {
	diff := time.Until(t)
	if diff > 0 {
		if n, unit := span(diff); unit != "" {
			return fmt.Sprintf("in %d%s", n, unit[:1])
		}
		return t.Format("Jan 2")
	}

	diff = -diff
	if diff < time.Minute {
		return "now"
	}
	if n, unit := span(diff); unit != "" {
		return fmt.Sprintf("%d%s ago", n, unit[:1])
	}
	return t.Format("Jan 2")
}

// span buckets a positive duration into the largest sensible unit. Beyond a
// month the callers fall back to an absolute date.
func span(d time.Duration) (int, string) {
	switch {
	case d < time.Minute:
		return 1, "minute"
	case d < time.Hour:
		return int(d.Minutes()), "minute"
	case d < 24*time.Hour:
		return int(d.Hours()), "hour"
	case d < 7*24*time.Hour:
		return int(d.Hours() / 24), "day"
	case d < 30*24*time.Hour:
		return int(d.Hours() / 24 / 7), "week"
	}
	return 0, ""
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

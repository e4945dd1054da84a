package util

import (
	"strings"
	"testing"
	"time"
)

func TestRelativeTime_PastAndFuture(t *testing.T) {
	now := time.Now()

	cases := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-49 * time.Hour), "2 days ago"},
		{now.Add(5*time.Minute + time.Second), "in 5 minutes"},
		{now.Add(3*time.Hour + time.Second), "in 3 hours"},
		{now.Add(49 * time.Hour), "in 2 days"},
	}
	for _, c := range cases {
		if got := RelativeTime(c.t); got != c.want {
			t.Errorf("RelativeTime(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestRelativeTimeShort(t *testing.T) {
	now := time.Now()

	if got := RelativeTimeShort(now.Add(-3 * time.Hour)); got != "3h ago" {
		t.Errorf("past = %q", got)
	}
	if got := RelativeTimeShort(now.Add(49 * time.Hour)); got != "in 2d" {
		t.Errorf("future = %q", got)
	}
	// Far future falls back to an absolute date.
	if got := RelativeTimeShort(now.Add(90 * 24 * time.Hour)); !strings.Contains(got, " ") || strings.Contains(got, "ago") {
		t.Errorf("far future = %q", got)
	}
}

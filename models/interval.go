package models

import (
	"strings"
	"time"
)

// ClockLayout is the wall-clock format slots and appointments carry ("HH:MM", 24h).
const ClockLayout = "15:04"

// ParseClock parses an "HH:MM" time-of-day string.
func ParseClock(s string) (time.Time, error) {
	return time.Parse(ClockLayout, strings.TrimSpace(s))
}

// CanonicalClock re-formats an "HH:MM" string into zero-padded form so that
// stored times compare correctly as strings ("9:30" becomes "09:30").
func CanonicalClock(s string) (string, error) {
	t, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

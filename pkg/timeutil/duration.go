// Package timeutil converts stored time-of-day values to minute counts and
// back. Durations and operating hours live in TIME columns; the driver scans
// them as time.Time anchored at a fixed epoch date in UTC. Reading them back
// through local-time accessors would shift the value by the host's UTC
// offset, so every accessor here is UTC-based.
package timeutil

import (
	"fmt"
	"time"
)

// ToMinutes converts a time-of-day value to minutes since midnight
// using the UTC hour/minute fields of the stored value.
func ToMinutes(t time.Time) int {
	u := t.UTC()
	return u.Hour()*60 + u.Minute()
}

// FromMinutes constructs a time-of-day value at minute precision,
// anchored at the epoch date in UTC.
func FromMinutes(minutes int) time.Time {
	return time.Date(1970, time.January, 1, minutes/60, minutes%60, 0, 0, time.UTC)
}

// FormatHuman renders a minute count as "Xh Ymin", collapsing to
// "Y min" under an hour and to "Xh" on whole hours.
func FormatHuman(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}

// Label renders minutes since midnight as "HH:MM".
func Label(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinuteOfDay returns the wall-clock minute of day of an instant.
// Unlike ToMinutes this reads the instant's own wall clock, not UTC:
// booking instants carry the salon's local frame.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

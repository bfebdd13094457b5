package domain

import "time"

// Slot generation granularities
const (
	// AvailabilityStepMinutes is the step for duration-aware availability
	// queries.
	AvailabilityStepMinutes = 15

	// GridStepMinutes is the step (and fixed slot length) of the simpler
	// calendar grid shown before services are chosen.
	GridStepMinutes = 30
)

// Operating-hours defaults used for slot generation when a salon has no
// configured hours, or when closing is not after opening.
const (
	DefaultOpeningMinutes = 9 * 60  // 09:00
	DefaultClosingMinutes = 17 * 60 // 17:00
	FallbackWindowMinutes = 8 * 60
)

// BookingHorizonMonths is the rolling advance-booking window: bookings
// may be made up to this many calendar months ahead, end-of-day inclusive.
const BookingHorizonMonths = 1

// Format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// MaxBookingInstant returns the latest instant a booking may start:
// the end of the day exactly BookingHorizonMonths calendar months from
// now. Calendar arithmetic, not a fixed day count, so Jan 31 rolls the
// way the standard library normalizes it.
func MaxBookingInstant(now time.Time) time.Time {
	max := now.AddDate(0, BookingHorizonMonths, 0)
	return time.Date(max.Year(), max.Month(), max.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), max.Location())
}

// DayBounds returns the [start, end) instants of the calendar day
// containing t, in t's location.
func DayBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

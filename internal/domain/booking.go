package domain

import "time"

// Customer is the booking party. Authentication and profile management
// live outside this service; only the identity is needed here.
type Customer struct {
	ID    int64
	Name  string
	Email string
}

// Booking is a confirmed appointment: one employee, one customer, one or
// more services starting at Date. Bookings are created only through the
// validated transactional path and are never updated in place.
type Booking struct {
	ID         int64
	SalonID    int64
	EmployeeID int64
	CustomerID int64
	Date       time.Time // appointment start instant

	// Services linked through booking_services. The effective duration
	// of the booking is the sum of their durations.
	Services []Service

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes returns the booking's effective duration.
func (b *Booking) DurationMinutes() int {
	return TotalDurationMinutes(b.Services)
}

// End returns the effective end instant: Date plus the summed service
// durations. The occupied interval is [Date, End).
func (b *Booking) End() time.Time {
	return b.Date.Add(time.Duration(b.DurationMinutes()) * time.Minute)
}

// SalonBookingsFilter selects a salon's bookings, optionally bounded to
// a date range (inclusive on both ends, matching calendar views).
type SalonBookingsFilter struct {
	SalonID   int64
	StartDate *time.Time
	EndDate   *time.Time
}

package domain

import (
	"time"

	"github.com/vetmogee/schedula/pkg/timeutil"
)

// Salon represents a salon with its staff and service catalogue.
// OpeningTime and ClosingTime are stored TIME values (UTC-anchored
// time-of-day, see pkg/timeutil); nil means operating hours are unset
// and booking times are nominally unrestricted.
type Salon struct {
	ID          int64
	Name        string
	Address     string
	City        string
	Currency    string
	OpeningTime *time.Time
	ClosingTime *time.Time

	Employees []Employee
	Services  []Service

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOperatingHours reports whether both opening and closing times are set.
func (s *Salon) HasOperatingHours() bool {
	return s.OpeningTime != nil && s.ClosingTime != nil
}

// OperatingMinutes returns the configured operating window as minutes
// since midnight. ok is false when either bound is unset.
func (s *Salon) OperatingMinutes() (open, close int, ok bool) {
	if !s.HasOperatingHours() {
		return 0, 0, false
	}
	return timeutil.ToMinutes(*s.OpeningTime), timeutil.ToMinutes(*s.ClosingTime), true
}

// SlotWindow returns the window used for slot generation: the configured
// hours, 09:00-17:00 when unset, and an 8-hour window from opening when
// the configured closing time is not after the opening time.
func (s *Salon) SlotWindow() (open, close int) {
	open = DefaultOpeningMinutes
	close = DefaultClosingMinutes
	if s.OpeningTime != nil {
		open = timeutil.ToMinutes(*s.OpeningTime)
	}
	if s.ClosingTime != nil {
		close = timeutil.ToMinutes(*s.ClosingTime)
	}
	if close <= open {
		close = open + FallbackWindowMinutes
	}
	return open, close
}

// EmployeeByID returns the salon's employee with the given id, or nil.
func (s *Salon) EmployeeByID(id int64) *Employee {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i]
		}
	}
	return nil
}

// ServicesByIDs resolves service ids against the salon's catalogue.
// Unknown or foreign-salon ids are simply absent from the result, so a
// length mismatch with the request detects them.
func (s *Salon) ServicesByIDs(ids []int64) []Service {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	resolved := make([]Service, 0, len(ids))
	for _, svc := range s.Services {
		if wanted[svc.ID] {
			resolved = append(resolved, svc)
		}
	}
	return resolved
}

// Employee is a staff member of exactly one salon.
type Employee struct {
	ID        int64
	SalonID   int64
	Name      string
	CreatedAt time.Time
}

// ServiceCategory groups a salon's services.
type ServiceCategory struct {
	ID      int64
	SalonID int64
	Name    string
}

// Service is an offering of a salon. Duration is a stored TIME value
// with minutes-since-midnight semantics: "00:45" means 45 minutes, not
// a quarter to one in the morning.
type Service struct {
	ID         int64
	SalonID    int64
	CategoryID int64
	Name       string
	Price      float64
	Duration   time.Time
	CreatedAt  time.Time
}

// DurationMinutes returns the service duration in minutes.
func (s *Service) DurationMinutes() int {
	return timeutil.ToMinutes(s.Duration)
}

// TotalDurationMinutes sums the durations of a service set.
func TotalDurationMinutes(services []Service) int {
	total := 0
	for i := range services {
		total += services[i].DurationMinutes()
	}
	return total
}

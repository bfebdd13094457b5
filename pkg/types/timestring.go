package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString is a wall-clock time of day in "HH:MM" form.
// It is the wire and storage representation for slot start times:
// comparable, ordered lexicographically the same as chronologically,
// and free of any date or timezone component.
type TimeString string

const layout = "15:04"

// NewTimeString builds a TimeString from the wall-clock fields of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes builds a TimeString from minutes since midnight.
// Values outside a single day are an error.
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("types: minutes %d out of day range", minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks the "HH:MM" format with hour in [0,23] and minute in [0,59].
func (t TimeString) Validate() error {
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &h, &m); err != nil {
		return fmt.Errorf("types: invalid time string %q: %w", string(t), err)
	}
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("types: invalid time string %q", string(t))
	}
	if h < 0 || h > 23 {
		return fmt.Errorf("types: hour %d out of range in %q", h, string(t))
	}
	if m < 0 || m > 59 {
		return fmt.Errorf("types: minute %d out of range in %q", m, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" form.
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the value as minutes since midnight.
// The value must be valid; invalid values return an error.
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	var h, m int
	fmt.Sscanf(string(t), "%02d:%02d", &h, &m)
	return h*60 + m, nil
}

// AddMinutes returns the time shifted forward by the given minutes.
// Shifting past midnight is an error: slots never span days.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := current + minutes
	if total > 24*60 {
		return "", fmt.Errorf("types: %s + %d minutes crosses midnight", t, minutes)
	}
	if total == 24*60 {
		// Closing-time sentinel: allow "24:00" as an exclusive upper bound.
		return TimeString("24:00"), nil
	}
	return FromMinutes(total)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Scan implements sql.Scanner for TIME columns.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = TimeString(v.UTC().Format(layout))
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME columns may carry seconds; keep only HH:MM.
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

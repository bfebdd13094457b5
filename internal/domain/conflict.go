package domain

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Adjacent intervals (one ending exactly where
// the other starts) do not overlap.
//
// This is the single source of truth for booking conflicts: the
// validator, the transactional re-check and both slot paths all go
// through it.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return bStart.Before(aEnd) && bEnd.After(aStart)
}

// FindConflict returns the first existing booking whose occupied
// interval overlaps [start, end). Discovery order carries no meaning;
// only the boolean does.
func FindConflict(existing []*Booking, start, end time.Time) (bool, *Booking) {
	for _, b := range existing {
		if Overlaps(b.Date, b.End(), start, end) {
			return true, b
		}
	}
	return false, nil
}

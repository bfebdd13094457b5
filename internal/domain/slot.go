package domain

import "github.com/vetmogee/schedula/pkg/types"

// GridSlot is one cell of the fixed-step calendar grid: a start time and
// whether a booking of the grid's slot length could begin there.
type GridSlot struct {
	StartTime types.TimeString
	Available bool
}

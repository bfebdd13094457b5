package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes_UsesUTCFields(t *testing.T) {
	// driver scans TIME '00:45' as 1970-01-01T00:45:00Z; a local accessor
	// would shift this by the host offset
	stored := time.Date(1970, 1, 1, 0, 45, 0, 0, time.UTC)
	assert.Equal(t, 45, ToMinutes(stored))

	// same instant viewed in a non-UTC zone must still read 45
	berlin := time.FixedZone("CET", 3600)
	assert.Equal(t, 45, ToMinutes(stored.In(berlin)))
}

func TestFromMinutes(t *testing.T) {
	v := FromMinutes(9 * 60)
	assert.Equal(t, 9, v.UTC().Hour())
	assert.Equal(t, 0, v.UTC().Minute())
	assert.Equal(t, 540, ToMinutes(v))
}

func TestFormatHuman(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{minutes: 0, want: "0 min"},
		{minutes: 45, want: "45 min"},
		{minutes: 60, want: "1h"},
		{minutes: 75, want: "1h 15min"},
		{minutes: 120, want: "2h"},
		{minutes: 150, want: "2h 30min"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHuman(tt.minutes))
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "09:00", Label(540))
	assert.Equal(t, "00:05", Label(5))
	assert.Equal(t, "23:59", Label(1439))
}

func TestMinuteOfDay_WallClock(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	instant := time.Date(2026, 9, 15, 10, 30, 0, 0, berlin)

	// booking instants are read in their own wall-clock frame
	assert.Equal(t, 10*60+30, MinuteOfDay(instant))
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute of day", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "missing colon", input: "1230", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "with seconds", input: "09:30:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input TimeString
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "00:45", want: 45},
		{input: "09:00", want: 540},
		{input: "13:15", want: 795},
		{input: "23:59", want: 1439},
	}

	for _, tt := range tests {
		got, err := tt.input.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "minutes of %s", tt.input)
	}

	_, err := TimeString("25:00").Minutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// exactly midnight yields the "24:00" sentinel, an exclusive upper bound
	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// slots never cross midnight
	_, err = TimeString("23:30").AddMinutes(45)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))
	assert.False(t, TimeString("12:00").IsAfter("12:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// TIME columns arrive as time.Time; read strictly the UTC fields
	require.NoError(t, ts.Scan(time.Date(1970, 1, 1, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:30"), ts)

	// strings with seconds are truncated to HH:MM
	require.NoError(t, ts.Scan("14:45:00"))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestFromMinutes(t *testing.T) {
	got, err := FromMinutes(540)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), got)

	_, err = FromMinutes(-1)
	assert.Error(t, err)

	_, err = FromMinutes(24 * 60)
	assert.Error(t, err)
}

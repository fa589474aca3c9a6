// File: utils/conversion_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesFromClock(t *testing.T) {
	tests := []struct {
		clock string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"11:00", 660, true},
		{"19:30", 1170, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"1230", 0, false},
		{"ab:cd", 0, false},
	}
	for _, tt := range tests {
		got, err := MinutesFromClock(tt.clock)
		if !tt.ok {
			assert.Error(t, err, "clock %q", tt.clock)
			continue
		}
		require.NoError(t, err, "clock %q", tt.clock)
		assert.Equal(t, tt.want, got, "clock %q", tt.clock)
	}
}

func TestClockFromMinutes(t *testing.T) {
	assert.Equal(t, "00:00", ClockFromMinutes(0))
	assert.Equal(t, "11:00", ClockFromMinutes(660))
	assert.Equal(t, "19:30", ClockFromMinutes(1170))
	assert.Equal(t, "22:00", ClockFromMinutes(1320))
}

func TestSeatingTime(t *testing.T) {
	got, err := SeatingTime("2026-09-03", "19:30")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, 19, got.Hour())
	assert.Equal(t, 30, got.Minute())

	_, err = SeatingTime("03-09-2026", "19:30")
	assert.Error(t, err)

	_, err = SeatingTime("2026-09-03", "25:00")
	assert.Error(t, err)
}

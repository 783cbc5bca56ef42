package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestWorkingHoursContains(t *testing.T) {
	w, err := ParseWorkingHours("09:00", "17:30")
	require.NoError(t, err)

	assert.True(t, w.Contains(at(9, 0)), "open boundary is inclusive")
	assert.True(t, w.Contains(at(12, 15)))
	assert.False(t, w.Contains(at(17, 30)), "close boundary is exclusive")
	assert.False(t, w.Contains(at(8, 59)))

	t.Run("overnight window", func(t *testing.T) {
		night, err := ParseWorkingHours("20:00", "04:00")
		require.NoError(t, err)
		assert.True(t, night.Contains(at(23, 0)))
		assert.True(t, night.Contains(at(2, 0)))
		assert.False(t, night.Contains(at(12, 0)))
	})

	t.Run("degenerate window covers the day", func(t *testing.T) {
		all, err := ParseWorkingHours("00:00", "00:00")
		require.NoError(t, err)
		assert.True(t, all.Contains(at(13, 37)))
	})
}

func TestParseWorkingHoursErrors(t *testing.T) {
	_, err := ParseWorkingHours("9am", "17:00")
	assert.Error(t, err)

	_, err = ParseWorkingHours("09:00", "25:00")
	assert.Error(t, err)
}

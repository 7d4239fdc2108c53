package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampDayFirst(t *testing.T) {
	ts := ParseTimestamp("09/01/2026 17:00")
	require.NotNil(t, ts)
	// Day before month: the 9th of January, not the 1st of September.
	assert.Equal(t, time.January, ts.Month())
	assert.Equal(t, 9, ts.Day())
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, 17, ts.Hour())

	ts = ParseTimestamp("23/07/2026")
	require.NotNil(t, ts)
	assert.Equal(t, time.July, ts.Month())
	assert.Equal(t, 23, ts.Day())

	ts = ParseTimestamp("5/3/2026 08:30")
	require.NotNil(t, ts)
	assert.Equal(t, time.March, ts.Month())
	assert.Equal(t, 5, ts.Day())
}

func TestParseTimestampInvalid(t *testing.T) {
	assert.Nil(t, ParseTimestamp(""))
	assert.Nil(t, ParseTimestamp("   "))
	assert.Nil(t, ParseTimestamp("not a date"))
	assert.Nil(t, ParseTimestamp("2026-01-09T17:00:00Z"))
}

func TestISOWeek(t *testing.T) {
	// Monday 29 Dec 2025 belongs to ISO week 1 of 2026.
	ts := time.Date(2025, 12, 29, 9, 0, 0, 0, time.UTC)
	week, isoYear, ok := ISOWeek(&ts)
	require.True(t, ok)
	assert.Equal(t, 1, week)
	assert.Equal(t, 2026, isoYear)

	_, _, ok = ISOWeek(nil)
	assert.False(t, ok)
}

func TestDurationHours(t *testing.T) {
	start := time.Date(2026, 1, 9, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 9, 17, 30, 0, 0, time.UTC)

	assert.InDelta(t, 8.5, DurationHours(&start, &end), 0.0001)
	assert.Equal(t, 0.0, DurationHours(nil, &end))
	assert.Equal(t, 0.0, DurationHours(&start, nil))

	// End before start is not clamped.
	assert.InDelta(t, -8.5, DurationHours(&end, &start), 0.0001)
}

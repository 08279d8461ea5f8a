package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(hour, minute int) time.Time {
	return time.Date(2026, 3, 15, hour, minute, 0, 0, time.UTC)
}

const (
	today     = "2026-03-15"
	tomorrow  = "2026-03-16"
	yesterday = "2026-03-14"
)

func TestDeriveStatusDateDominates(t *testing.T) {
	// A future date is upcoming and a past date is past no matter what the
	// time or duration fields say, even when they are garbage.
	status, err := DeriveStatus(clock(23, 59), tomorrow, "not a time", "whatever")
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, status)

	status, err = DeriveStatus(clock(0, 0), yesterday, "not a time", "whatever")
	require.NoError(t, err)
	assert.Equal(t, StatusPast, status)
}

func TestDeriveStatusSameDay(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		timeStr  string
		duration string
		want     string
	}{
		{"before start", clock(8, 0), "09:00", "2 hours", StatusUpcoming},
		{"at start hour", clock(9, 0), "09:00", "2 hours", StatusLive},
		{"mid window", clock(10, 30), "09:00", "2 hours", StatusLive},
		{"after window", clock(12, 0), "09:00", "2 hours", StatusPast},
		{"last live hour", clock(10, 59), "09:00", "2 hours", StatusLive},
		{"first past hour", clock(11, 0), "09:00", "2 hours", StatusPast},
		{"twelve hour format", clock(10, 0), "9:00 AM", "2 hours", StatusLive},
		{"afternoon twelve hour", clock(16, 0), "3:04 PM", "2 hours", StatusLive},
		{"noon is 12", clock(11, 0), "12:00 PM", "1 hour", StatusUpcoming},
		{"midnight is 0", clock(0, 30), "12:00 AM", "1 hour", StatusLive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := DeriveStatus(tt.now, today, tt.timeStr, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestDeriveStatusAllDayNeverPastSameDay(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		status, err := DeriveStatus(clock(hour, 0), today, "00:00", "All day")
		require.NoError(t, err)
		assert.Equal(t, StatusLive, status, "hour %d", hour)
	}
	// Still upcoming before its start hour.
	status, err := DeriveStatus(clock(7, 0), today, "08:00", "All day")
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, status)
}

func TestDeriveStatusHalfHourStaysLiveThroughStartHour(t *testing.T) {
	// "30 min" parses to 0.5 hours, so 9 + 0.5 > 9 keeps the reservation
	// live for the whole of its start hour.
	status, err := DeriveStatus(clock(9, 45), today, "09:00", "30 min")
	require.NoError(t, err)
	assert.Equal(t, StatusLive, status)

	status, err = DeriveStatus(clock(10, 0), today, "09:00", "30 min")
	require.NoError(t, err)
	assert.Equal(t, StatusPast, status)
}

func TestDeriveStatusUnparsableTime(t *testing.T) {
	_, err := DeriveStatus(clock(10, 0), today, "morning-ish", "2 hours")
	assert.Error(t, err)

	_, err = DeriveStatus(clock(10, 0), today, "09:00", "a while")
	assert.Error(t, err)
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"09:00", "09:00"},
		{"9:05", "09:05"},
		{"3:04 PM", "15:04"},
		{"12:00 AM", "00:00"},
		{"12:30 PM", "12:30"},
		{"11:59 pm", "23:59"},
	}
	for _, tt := range tests {
		got, err := NormalizeTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "25:00", "10:75", "soonish", "10.30"} {
		_, err := NormalizeTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDurationHours(t *testing.T) {
	hours, allDay, err := ParseDurationHours("30 min")
	require.NoError(t, err)
	assert.False(t, allDay)
	assert.InDelta(t, 0.5, hours, 1e-9)

	hours, allDay, err = ParseDurationHours("2 hours")
	require.NoError(t, err)
	assert.False(t, allDay)
	assert.Equal(t, 2.0, hours)

	_, allDay, err = ParseDurationHours("All day")
	require.NoError(t, err)
	assert.True(t, allDay)

	_, allDay, err = ParseDurationHours("24 hours")
	require.NoError(t, err)
	assert.True(t, allDay)

	_, _, err = ParseDurationHours("a while")
	assert.Error(t, err)
}

func TestRemainingTime(t *testing.T) {
	// 09:00 + 2 hours ends at 11:00.
	assert.Equal(t, "30 min", RemainingTime(clock(10, 30), today, "09:00", "2 hours"))
	assert.Equal(t, "1h 45m", RemainingTime(clock(9, 15), today, "09:00", "2 hours"))

	// Not live: empty string.
	assert.Equal(t, "", RemainingTime(clock(8, 0), today, "09:00", "2 hours"))
	assert.Equal(t, "", RemainingTime(clock(12, 0), today, "09:00", "2 hours"))
	assert.Equal(t, "", RemainingTime(clock(10, 0), tomorrow, "09:00", "2 hours"))

	// All-day countdown is capped at end of day.
	assert.Equal(t, "14h 0m", RemainingTime(clock(10, 0), today, "08:00", "All day"))

	// Unparsable time degrades to the sentinel, never an error.
	assert.Equal(t, UnknownRemaining, RemainingTime(clock(10, 0), today, "morning-ish", "2 hours"))
}

func TestIsAllowedDuration(t *testing.T) {
	for _, d := range AllowedDurations {
		assert.True(t, IsAllowedDuration(d))
	}
	assert.False(t, IsAllowedDuration("3 hours"))
	assert.False(t, IsAllowedDuration(""))
}

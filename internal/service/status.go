package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Derived reservation statuses. A reservation moves upcoming -> live -> past
// as wall-clock time advances; the transition is computed on every read, never
// trusted from storage.
const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusPast     = "past"
)

// ISODate is the calendar-date layout used on the wire and in storage.
// Lexical comparison of two dates in this layout matches chronological order.
const ISODate = "2006-01-02"

// UnknownRemaining is displayed when a stored time string matches neither
// accepted format. The row still renders; only its countdown degrades.
const UnknownRemaining = "Unknown"

// Durations accepted by the reservation form.
var AllowedDurations = []string{"30 min", "1 hour", "2 hours", "4 hours", "8 hours", "All day"}

var (
	clock12Pattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)
	clock24Pattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	leadingIntPattern = regexp.MustCompile(`^(\d+)`)
)

func IsValidStatus(s string) bool {
	return s == StatusUpcoming || s == StatusLive || s == StatusPast
}

func IsAllowedDuration(s string) bool {
	for _, d := range AllowedDurations {
		if d == s {
			return true
		}
	}
	return false
}

// parseClock accepts both time formats that appear in stored rows:
// 12-hour "H:MM AM/PM" and 24-hour "HH:MM".
func parseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if m := clock12Pattern.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if strings.EqualFold(m[3], "pm") && hour != 12 {
			hour += 12
		}
		if strings.EqualFold(m[3], "am") && hour == 12 {
			hour = 0
		}
		return hour, minute, nil
	}
	if m := clock24Pattern.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		return hour, minute, nil
	}
	return 0, 0, fmt.Errorf("unrecognized time %q", s)
}

// ParseStartHour returns the 24-hour start hour of a stored time string.
func ParseStartHour(s string) (int, error) {
	hour, _, err := parseClock(s)
	return hour, err
}

// NormalizeTime converts either accepted format to the canonical 24-hour
// "HH:MM" wire format. Applied at the boundary so new rows are uniform;
// derivation still reads legacy 12-hour rows.
func NormalizeTime(s string) (string, error) {
	hour, minute, err := parseClock(s)
	if err != nil {
		return "", err
	}
	if hour > 23 || minute > 59 {
		return "", fmt.Errorf("time %q out of range", s)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ParseDurationHours extracts the hour count from a duration label. "All day"
// and "24 hours" are an explicit sentinel, not parsed numerically; labels
// containing "min" divide the leading integer by 60 (fractional result, so a
// 30-minute reservation stays live through its start hour).
func ParseDurationHours(s string) (hours float64, allDay bool, err error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "all day") || strings.EqualFold(trimmed, "24 hours") {
		return 24, true, nil
	}
	m := leadingIntPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, false, fmt.Errorf("unrecognized duration %q", s)
	}
	n, _ := strconv.Atoi(m[1])
	if strings.Contains(strings.ToLower(trimmed), "min") {
		return float64(n) / 60, false, nil
	}
	return float64(n), false, nil
}

// DeriveStatus computes a reservation's lifecycle stage from its stored
// date/time/duration relative to now. Date comparison is lexical on ISO
// strings; the hour comparison only runs for same-day reservations. An error
// means the stored time is unparsable and the status is indeterminate; callers
// fall back to the last stored value and must not fail the whole view.
func DeriveStatus(now time.Time, date, timeStr, duration string) (string, error) {
	today := now.Format(ISODate)
	if date > today {
		return StatusUpcoming, nil
	}
	if date < today {
		return StatusPast, nil
	}

	startHour, err := ParseStartHour(timeStr)
	if err != nil {
		return "", err
	}
	durationHours, allDay, err := ParseDurationHours(duration)
	if err != nil {
		return "", err
	}

	currentHour := now.Hour()
	switch {
	case startHour > currentHour:
		return StatusUpcoming, nil
	case allDay || float64(startHour)+durationHours > float64(currentHour):
		return StatusLive, nil
	default:
		return StatusPast, nil
	}
}

// RemainingTime renders the countdown shown on live reservations: "Xh Ym" or
// "Y min", UnknownRemaining when the stored time cannot be parsed, and the
// empty string for rows that are not live.
func RemainingTime(now time.Time, date, timeStr, duration string) string {
	status, err := DeriveStatus(now, date, timeStr, duration)
	if err != nil {
		return UnknownRemaining
	}
	if status != StatusLive {
		return ""
	}

	startHour, _, err := parseClock(timeStr)
	if err != nil {
		return UnknownRemaining
	}
	durationHours, allDay, err := ParseDurationHours(duration)
	if err != nil {
		return UnknownRemaining
	}
	if allDay {
		durationHours = 24
	}

	endMinute := startHour*60 + int(durationHours*60)
	if endMinute > 24*60 {
		endMinute = 24 * 60
	}
	remaining := endMinute - (now.Hour()*60 + now.Minute())
	if remaining < 0 {
		remaining = 0
	}
	if remaining < 60 {
		return fmt.Sprintf("%d min", remaining)
	}
	return fmt.Sprintf("%dh %dm", remaining/60, remaining%60)
}

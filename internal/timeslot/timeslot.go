package timeslot

import (
	"fmt"
	"time"

	"github.com/quenchapp/quench/internal/constants"
)

// Generate computes the reminder slots for an active-hours window: starting
// at start, it emits a slot every intervalHours until end, inclusive of the
// boundary. Slots come back as canonical 24-hour HH:MM strings so lexical
// and chronological ordering coincide; downstream map keys and "is this slot
// before now" comparisons rely on that.
//
// An inverted window (end before start) yields an empty slice rather than a
// wraparound schedule. A non-positive interval is rejected before the loop.
func Generate(start, end string, intervalHours int) ([]string, error) {
	if intervalHours <= 0 {
		return nil, fmt.Errorf("interval must be a positive number of hours, got %d", intervalHours)
	}

	startMin, err := ParseTimeToMinutes(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	endMin, err := ParseTimeToMinutes(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	slots := []string{}
	for cur := startMin; cur <= endMin; cur += intervalHours * 60 {
		slots = append(slots, FormatMinutes(cur))
	}

	return slots, nil
}

// ParseTimeToMinutes parses an HH:MM string and returns minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes from midnight as a canonical HH:MM string.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidTimeFormat reports whether the string parses as HH:MM.
func ValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

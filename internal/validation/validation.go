package validation

import (
	"fmt"

	"github.com/quenchapp/quench/internal/constants"
	"github.com/quenchapp/quench/internal/timeslot"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidTimeFormat   ConflictType = "invalid_time_format"
	ConflictInvertedWindow      ConflictType = "inverted_window"
	ConflictIntervalOutOfRange  ConflictType = "interval_out_of_range"
	ConflictWindowNotDivisible  ConflictType = "window_not_divisible"
)

// Conflict represents a rejected part of a reminder configuration
type Conflict struct {
	Type        ConflictType
	Field       string // "interval", "start_time" or "end_time"
	Description string
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Invalid reminder configuration:\n"
	for _, conflict := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates reminder configurations before they reach storage or
// the trigger subsystem.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateConfig checks an interval and active-hours window. It rejects
// malformed times, inverted windows, out-of-range intervals, and windows the
// interval does not divide evenly (the last reminder must land exactly on the
// end time; truncation is deliberately not offered).
func (v *Validator) ValidateConfig(intervalHours int, startTime, endTime string) Result {
	result := Result{Conflicts: []Conflict{}}

	if intervalHours < constants.MinIntervalHours || intervalHours > constants.MaxIntervalHours {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:  ConflictIntervalOutOfRange,
			Field: "interval",
			Description: fmt.Sprintf("interval must be between %d and %d hours, got %d",
				constants.MinIntervalHours, constants.MaxIntervalHours, intervalHours),
		})
	}

	startMin, startErr := timeslot.ParseTimeToMinutes(startTime)
	if startErr != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTimeFormat,
			Field:       "start_time",
			Description: fmt.Sprintf("start time %q is not a valid HH:MM time", startTime),
		})
	}

	endMin, endErr := timeslot.ParseTimeToMinutes(endTime)
	if endErr != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTimeFormat,
			Field:       "end_time",
			Description: fmt.Sprintf("end time %q is not a valid HH:MM time", endTime),
		})
	}

	if startErr != nil || endErr != nil || result.HasConflicts() {
		return result
	}

	if endMin < startMin {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvertedWindow,
			Field:       "end_time",
			Description: fmt.Sprintf("end time %s is before start time %s", endTime, startTime),
		})
		return result
	}

	if (endMin-startMin)%(intervalHours*60) != 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:  ConflictWindowNotDivisible,
			Field: "end_time",
			Description: fmt.Sprintf("window %s-%s is not divisible by a %dh interval; the last reminder must fall on the end time",
				startTime, endTime, intervalHours),
		})
	}

	return result
}

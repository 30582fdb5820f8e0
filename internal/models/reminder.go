package models

// ReminderConfig is the active reminder schedule: the user-chosen interval
// and active-hours window plus the slot list derived from them. Slots is a
// cache computed by the timeslot generator and is never edited on its own;
// the whole struct is replaced atomically on every save.
type ReminderConfig struct {
	IntervalHours int      `json:"interval_hours"`
	StartTime     string   `json:"start_time"` // HH:MM format
	EndTime       string   `json:"end_time"`   // HH:MM format
	Slots         []string `json:"slots"`      // HH:MM, strictly increasing
}

// HydrationDay is the persisted per-calendar-date record of completed slots.
// Only true entries are stored; a missing key means the slot was not
// acknowledged. Old days stay in storage but only the current date is live.
type HydrationDay struct {
	Date      string          `json:"date"` // YYYY-MM-DD format
	Completed map[string]bool `json:"completed"`
}

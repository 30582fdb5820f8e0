package storage

import (
	"errors"

	"github.com/quenchapp/quench/internal/models"
)

// ErrConfigNotFound is returned by GetConfig when no schedule has ever been
// saved. Callers apply the documented default window in that case.
var ErrConfigNotFound = errors.New("reminder config not found")

// Provider is the persistence port shared by the SQLite and JSON backends.
//
// Hydration mutations are row-level merges: AddHydrationStat and
// RemoveHydrationStat touch a single (day, slot) entry and never replace the
// rest of the day's record. Callers that need read-modify-write atomicity
// across calls (the hydration tracker) serialize externally; Provider
// implementations are not safe for concurrent use by multiple goroutines
// without that serialization.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Reminder schedule. SaveConfig persists interval, window and slots
	// atomically so they can never diverge across a storage fault.
	GetConfig() (models.ReminderConfig, error)
	SaveConfig(models.ReminderConfig) error

	// Hydration records, keyed by YYYY-MM-DD date. A never-seen date reads
	// back as an empty record, not an error.
	GetHydrationDay(date string) (models.HydrationDay, error)
	AddHydrationStat(date, slot string) error
	RemoveHydrationStat(date, slot string) error
	ClearHydrationDay(date string) error

	// Utils
	GetConfigPath() string
}

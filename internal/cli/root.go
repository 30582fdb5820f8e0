package cli

import (
	"fmt"
	"time"

	"github.com/quenchapp/quench/internal/backup"
	"github.com/quenchapp/quench/internal/constants"
	"github.com/quenchapp/quench/internal/hydration"
	"github.com/quenchapp/quench/internal/logger"
	"github.com/quenchapp/quench/internal/schedule"
	"github.com/quenchapp/quench/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Schedule *schedule.Store
	Tracker  *hydration.Tracker
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.Create()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveSlot turns a slot argument into a concrete configured slot. "now"
// picks the most recent slot that has already passed today; anything else
// must name a configured slot verbatim.
func ResolveSlot(arg string, slots []string, now time.Time) (string, error) {
	if arg == "now" {
		slot, ok := mostRecentPast(slots, now)
		if !ok {
			return "", fmt.Errorf("no reminder slot has passed yet today")
		}
		return slot, nil
	}

	for _, slot := range slots {
		if slot == arg {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%q is not a configured reminder slot", arg)
}

// mostRecentPast returns the latest slot at or before now today. Canonical
// HH:MM slots make the string comparison chronological.
func mostRecentPast(slots []string, now time.Time) (string, bool) {
	current := now.Format(constants.TimeFormat)
	for i := len(slots) - 1; i >= 0; i-- {
		if slots[i] <= current {
			return slots[i], true
		}
	}
	return "", false
}

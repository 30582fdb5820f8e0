// Package schedule owns the reminder configuration: loading it (with a
// documented default), validating and saving changes, and keeping the
// trigger subsystem armed to match what is persisted.
package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/quenchapp/quench/internal/constants"
	apperrors "github.com/quenchapp/quench/internal/errors"
	"github.com/quenchapp/quench/internal/hydration"
	"github.com/quenchapp/quench/internal/logger"
	"github.com/quenchapp/quench/internal/models"
	"github.com/quenchapp/quench/internal/storage"
	"github.com/quenchapp/quench/internal/timeslot"
	"github.com/quenchapp/quench/internal/trigger"
	"github.com/quenchapp/quench/internal/validation"
)

// Store coordinates config persistence, the trigger subsystem and the
// hydration tracker. At most one Save runs at a time; concurrent attempts
// are rejected rather than queued, since a double save could double-register
// triggers.
type Store struct {
	storage   storage.Provider
	triggers  trigger.Subsystem
	tracker   *hydration.Tracker
	validator *validation.Validator

	saveMu sync.Mutex
}

// New creates a schedule store. tracker may be nil when no hydration record
// should be cleared on reconfiguration (tests, read-only tooling).
func New(store storage.Provider, triggers trigger.Subsystem, tracker *hydration.Tracker) *Store {
	return &Store{
		storage:   store,
		triggers:  triggers,
		tracker:   tracker,
		validator: validation.New(),
	}
}

// DefaultConfig is the schedule used before anything has been saved:
// hourly reminders between 08:00 and 22:00.
func DefaultConfig() models.ReminderConfig {
	slots, _ := timeslot.Generate(constants.DefaultStartTime, constants.DefaultEndTime, constants.DefaultIntervalHours)
	return models.ReminderConfig{
		IntervalHours: constants.DefaultIntervalHours,
		StartTime:     constants.DefaultStartTime,
		EndTime:       constants.DefaultEndTime,
		Slots:         slots,
	}
}

// Config loads the persisted schedule, falling back to DefaultConfig when
// none has been saved yet.
func (s *Store) Config() (models.ReminderConfig, error) {
	config, err := s.storage.GetConfig()
	if err != nil {
		if errors.Is(err, storage.ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return models.ReminderConfig{}, &apperrors.StorageError{Op: "load config", Err: err}
	}
	return config, nil
}

// Save validates and applies a new reminder configuration:
//
//  1. reject invalid input before any side effect,
//  2. cancel every existing trigger and clear today's hydration record
//     (a reconfiguration invalidates what "today's progress" means),
//  3. register one recurring trigger per generated slot, stamped with the
//     slot so acknowledgements can find their way back,
//  4. persist interval, window and slots atomically.
//
// Any failure after step 1 rolls the trigger subsystem back to the previous
// configuration so persisted state and armed triggers never diverge.
func (s *Store) Save(ctx context.Context, intervalHours int, startTime, endTime string) (models.ReminderConfig, error) {
	if result := s.validator.ValidateConfig(intervalHours, startTime, endTime); result.HasConflicts() {
		return models.ReminderConfig{}, &apperrors.ValidationError{Msg: result.FormatReport()}
	}

	slots, err := timeslot.Generate(startTime, endTime, intervalHours)
	if err != nil {
		return models.ReminderConfig{}, &apperrors.ValidationError{Msg: err.Error()}
	}

	if !s.saveMu.TryLock() {
		return models.ReminderConfig{}, ErrSaveInFlight
	}
	defer s.saveMu.Unlock()

	// Remember the previous schedule for rollback. A fresh store has no
	// triggers armed, so there is nothing to restore in that case.
	previous, prevErr := s.storage.GetConfig()
	hadPrevious := prevErr == nil

	if err := s.cancelAll(ctx); err != nil {
		return models.ReminderConfig{}, err
	}

	if s.tracker != nil {
		if err := s.tracker.ClearToday(); err != nil {
			s.restore(ctx, previous, hadPrevious)
			return models.ReminderConfig{}, err
		}
	}

	if err := s.registerSlots(ctx, slots); err != nil {
		s.restore(ctx, previous, hadPrevious)
		return models.ReminderConfig{}, err
	}

	config := models.ReminderConfig{
		IntervalHours: intervalHours,
		StartTime:     startTime,
		EndTime:       endTime,
		Slots:         slots,
	}
	if err := s.storage.SaveConfig(config); err != nil {
		s.restore(ctx, previous, hadPrevious)
		return models.ReminderConfig{}, &apperrors.StorageError{Op: "save config", Err: err}
	}

	logger.Info("Saved reminder schedule", "interval_hours", intervalHours, "window", startTime+"-"+endTime, "slots", len(slots))
	return config, nil
}

// Upcoming returns the first slot strictly after now today, or ok=false
// when every slot has already passed. Canonical HH:MM slots make the string
// comparison chronological.
func Upcoming(slots []string, now time.Time) (string, bool) {
	current := now.Format(constants.TimeFormat)
	for _, slot := range slots {
		if slot > current {
			return slot, true
		}
	}
	return "", false
}

// ErrSaveInFlight is returned when a Save is attempted while another is
// still running.
var ErrSaveInFlight = errors.New("another save is already in progress")

func (s *Store) cancelAll(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, constants.TriggerCallTimeout)
	defer cancel()

	if err := s.triggers.CancelAll(cctx); err != nil {
		return &apperrors.TriggerError{Op: "cancel all", Err: err}
	}
	return nil
}

func (s *Store) registerSlots(ctx context.Context, slots []string) error {
	for _, slot := range slots {
		minutes, err := timeslot.ParseTimeToMinutes(slot)
		if err != nil {
			return &apperrors.ValidationError{Msg: "generated slot " + slot + " is not a valid time"}
		}

		rctx, cancel := context.WithTimeout(ctx, constants.TriggerCallTimeout)
		_, err = s.triggers.Register(rctx, minutes/60, minutes%60, slot)
		cancel()
		if err != nil {
			return &apperrors.TriggerError{Op: "register " + slot, Err: err}
		}
	}
	return nil
}

// restore re-arms the previous configuration's triggers after a failed
// save. Best effort: errors are logged, not returned, because the caller is
// already handling the original failure.
func (s *Store) restore(ctx context.Context, previous models.ReminderConfig, hadPrevious bool) {
	if err := s.cancelAll(ctx); err != nil {
		logger.Error("Rollback: failed to cancel partially registered triggers", "error", err)
		return
	}
	if !hadPrevious {
		return
	}
	if err := s.registerSlots(ctx, previous.Slots); err != nil {
		logger.Error("Rollback: failed to re-register previous schedule", "error", err)
	}
}

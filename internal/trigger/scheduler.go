package trigger

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/quenchapp/quench/internal/logger"
)

// Scheduler implements Subsystem on top of a gocron scheduler with one
// repeating daily job per registered slot.
type Scheduler struct {
	scheduler gocron.Scheduler
	handler   Handler

	mu   sync.Mutex
	jobs map[uuid.UUID]string // job ID -> slot metadata
}

// NewScheduler creates a gocron-backed trigger subsystem. The handler is
// invoked with the slot metadata every time a trigger fires.
func NewScheduler(handler Handler) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		handler:   handler,
		jobs:      make(map[uuid.UUID]string),
	}, nil
}

// Start begins firing registered triggers.
func (s *Scheduler) Start() {
	logger.Info("Starting trigger scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	logger.Info("Stopping trigger scheduler")
	return s.scheduler.Shutdown()
}

// Register arms a repeating daily trigger at hour:minute stamped with the
// slot it belongs to, and returns the trigger ID.
func (s *Scheduler) Register(ctx context.Context, hour, minute int, slot string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("trigger time %02d:%02d out of range", hour, minute)
	}

	job, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(s.fire, slot),
		gocron.WithName(fmt.Sprintf("reminder-%s", slot)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create reminder job for %s: %w", slot, err)
	}

	s.mu.Lock()
	s.jobs[job.ID()] = slot
	s.mu.Unlock()

	logger.Debug("Registered reminder trigger", "slot", slot, "job_id", job.ID().String())
	return job.ID().String(), nil
}

// CancelAll removes every registered trigger.
func (s *Scheduler) CancelAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		if err := s.scheduler.RemoveJob(id); err != nil {
			return fmt.Errorf("failed to remove job %s: %w", id, err)
		}
		s.mu.Lock()
		delete(s.jobs, id)
		s.mu.Unlock()
	}

	logger.Debug("Cancelled all reminder triggers", "count", len(ids))
	return nil
}

// RegisteredSlots returns the slots with an armed trigger, for status output.
func (s *Scheduler) RegisteredSlots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]string, 0, len(s.jobs))
	for _, slot := range s.jobs {
		slots = append(slots, slot)
	}
	return slots
}

func (s *Scheduler) fire(slot string) {
	logger.Info("Reminder trigger fired", "slot", slot)
	if s.handler != nil {
		s.handler(slot)
	}
}

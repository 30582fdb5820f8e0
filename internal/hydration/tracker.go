// Package hydration maintains the per-day record of acknowledged reminder
// slots: a persisted map of completed HH:MM slots keyed by calendar date,
// mirrored into an in-memory snapshot that observers can read lock-free.
package hydration

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quenchapp/quench/internal/constants"
	apperrors "github.com/quenchapp/quench/internal/errors"
	"github.com/quenchapp/quench/internal/logger"
	"github.com/quenchapp/quench/internal/storage"
)

// nowFunc is swappable so day-rollover behavior can be tested.
var nowFunc = time.Now

// Snapshot is an immutable view of the committed hydration state for one
// date. The Completed map must not be mutated by readers.
type Snapshot struct {
	Date      string
	Completed map[string]bool
}

// Tracker owns the live hydration record. Mutations are serialized by a
// single mutex because every one of them is a read-modify-write against the
// same persisted day; reads of the last committed snapshot are lock-free.
//
// "Today" is derived from the wall clock on every call, never cached, so a
// completion logged after midnight lands on the new date key.
type Tracker struct {
	store storage.Provider

	mu       sync.Mutex // serializes mutations against the day record
	snapshot atomic.Value

	subsMu  sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

// NewTracker creates a tracker over the given storage backend.
func NewTracker(store storage.Provider) *Tracker {
	t := &Tracker{
		store: store,
		subs:  make(map[int]chan Snapshot),
	}
	t.snapshot.Store(Snapshot{Completed: map[string]bool{}})
	return t
}

func dateKey() string {
	return nowFunc().Format(constants.DateFormat)
}

// Today loads the persisted record for the current date and commits it to
// the snapshot. A storage read failure is logged and treated as an empty
// day; a stale view beats blocking the user.
func (t *Tracker) Today() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	date := dateKey()
	day, err := t.store.GetHydrationDay(date)
	if err != nil {
		logger.Error("Failed to load today's hydration record", "date", date, "error", err)
		t.commit(Snapshot{Date: date, Completed: map[string]bool{}})
		return map[string]bool{}
	}

	return t.commit(Snapshot{Date: date, Completed: day.Completed}).Completed
}

// AddStat marks a slot as completed for today. The persisted record is
// merged, never replaced, and the snapshot is committed from a
// read-after-write of storage rather than an optimistic local guess.
func (t *Tracker) AddStat(slot string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	date := dateKey()
	if err := t.store.AddHydrationStat(date, slot); err != nil {
		return &apperrors.StorageError{Op: "add stat", Err: err}
	}
	return t.reload(date, "add stat")
}

// RemoveStat is the inverse of AddStat: the slot's key is removed entirely,
// since absence rather than false represents "not completed".
func (t *Tracker) RemoveStat(slot string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	date := dateKey()
	if err := t.store.RemoveHydrationStat(date, slot); err != nil {
		return &apperrors.StorageError{Op: "remove stat", Err: err}
	}
	return t.reload(date, "remove stat")
}

// ClearToday wipes today's persisted record and the snapshot. Called on
// reconfiguration, when the old slot identities stop meaning anything.
func (t *Tracker) ClearToday() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	date := dateKey()
	if err := t.store.ClearHydrationDay(date); err != nil {
		return &apperrors.StorageError{Op: "clear day", Err: err}
	}
	t.commit(Snapshot{Date: date, Completed: map[string]bool{}})
	return nil
}

// PercentComplete derives the completion percentage of today's snapshot
// against the given slot list. An empty slot list is 0, never a division by
// zero. A snapshot left over from a previous date counts as empty.
func (t *Tracker) PercentComplete(slots []string) int {
	if len(slots) == 0 {
		return 0
	}

	snap := t.Snapshot()
	if snap.Date != dateKey() {
		return 0
	}

	completed := 0
	for _, slot := range slots {
		if snap.Completed[slot] {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(slots)) * 100))
}

// Snapshot returns the last committed state without taking the mutation
// lock.
func (t *Tracker) Snapshot() Snapshot {
	return t.snapshot.Load().(Snapshot)
}

// Subscribe registers an observer for committed snapshots. The returned
// cancel func must be called to release the subscription. Slow observers
// miss intermediate snapshots instead of blocking mutations.
func (t *Tracker) Subscribe() (<-chan Snapshot, func()) {
	t.subsMu.Lock()
	defer t.subsMu.Unlock()

	id := t.nextSub
	t.nextSub++
	ch := make(chan Snapshot, 16)
	t.subs[id] = ch

	cancel := func() {
		t.subsMu.Lock()
		defer t.subsMu.Unlock()
		if _, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// reload commits a read-after-write snapshot for date. Must hold t.mu.
func (t *Tracker) reload(date, op string) error {
	day, err := t.store.GetHydrationDay(date)
	if err != nil {
		logger.Error("Failed to re-read hydration record after write", "op", op, "date", date, "error", err)
		return &apperrors.StorageError{Op: op, Err: err}
	}
	t.commit(Snapshot{Date: date, Completed: day.Completed})
	return nil
}

// commit stores a defensive copy of the snapshot and publishes it. Must
// hold t.mu.
func (t *Tracker) commit(snap Snapshot) Snapshot {
	completed := make(map[string]bool, len(snap.Completed))
	for slot, done := range snap.Completed {
		if done {
			completed[slot] = true
		}
	}
	committed := Snapshot{Date: snap.Date, Completed: completed}
	t.snapshot.Store(committed)

	t.subsMu.Lock()
	for _, ch := range t.subs {
		select {
		case ch <- committed:
		default:
		}
	}
	t.subsMu.Unlock()

	return committed
}

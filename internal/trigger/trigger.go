// Package trigger is the recurring-reminder port. The engine only ever asks
// for two things: register a repeating daily trigger at hour:minute carrying
// the originating slot as metadata, and cancel everything. The gocron-backed
// implementation lives in scheduler.go.
package trigger

import "context"

// Handler receives the slot metadata of a trigger that fired.
type Handler func(slot string)

// Subsystem abstracts the host's recurring-notification scheduler.
//
// Register returns an opaque trigger ID. Both calls honor context deadlines;
// callers are expected to pass a bounded context so a wedged scheduler
// surfaces as an error instead of a hang.
type Subsystem interface {
	Register(ctx context.Context, hour, minute int, slot string) (string, error)
	CancelAll(ctx context.Context) error
}

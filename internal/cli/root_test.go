package cli

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 28, hour, minute, 0, 0, time.Local)
}

func TestResolveSlotNow(t *testing.T) {
	slots := []string{"08:00", "10:00", "12:00"}

	slot, err := ResolveSlot("now", slots, at(11, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot != "10:00" {
		t.Errorf("expected most recent past slot 10:00, got %s", slot)
	}

	// A slot exactly at now counts as passed.
	slot, err = ResolveSlot("now", slots, at(12, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot != "12:00" {
		t.Errorf("expected 12:00 at exactly 12:00, got %s", slot)
	}

	if _, err := ResolveSlot("now", slots, at(7, 0)); err == nil {
		t.Error("expected error before the first slot of the day")
	}
	if _, err := ResolveSlot("now", nil, at(11, 0)); err == nil {
		t.Error("expected error with no configured slots")
	}
}

func TestResolveSlotExplicit(t *testing.T) {
	slots := []string{"08:00", "10:00"}

	slot, err := ResolveSlot("10:00", slots, at(9, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot != "10:00" {
		t.Errorf("expected 10:00, got %s", slot)
	}

	if _, err := ResolveSlot("11:00", slots, at(9, 0)); err == nil {
		t.Error("expected error for a slot that is not configured")
	}
}

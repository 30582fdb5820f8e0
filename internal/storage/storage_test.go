package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/quenchapp/quench/internal/models"
)

func newTestProviders(t *testing.T) map[string]Provider {
	t.Helper()
	tempDir := t.TempDir()

	sqliteStore := NewSQLiteStore(filepath.Join(tempDir, "quench.db"))
	if err := sqliteStore.Init(); err != nil {
		t.Fatalf("sqlite init failed: %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	jsonStore := NewJSONStore(filepath.Join(tempDir, "quench.json"))
	if err := jsonStore.Init(); err != nil {
		t.Fatalf("json init failed: %v", err)
	}

	return map[string]Provider{
		"sqlite": sqliteStore,
		"json":   jsonStore,
	}
}

func TestConfigRoundTrip(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.GetConfig(); !errors.Is(err, ErrConfigNotFound) {
				t.Fatalf("expected ErrConfigNotFound on fresh store, got %v", err)
			}

			config := models.ReminderConfig{
				IntervalHours: 2,
				StartTime:     "08:00",
				EndTime:       "22:00",
				Slots:         []string{"08:00", "10:00", "12:00", "14:00", "16:00", "18:00", "20:00", "22:00"},
			}
			if err := store.SaveConfig(config); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			got, err := store.GetConfig()
			if err != nil {
				t.Fatalf("GetConfig failed: %v", err)
			}
			if got.IntervalHours != config.IntervalHours ||
				got.StartTime != config.StartTime ||
				got.EndTime != config.EndTime {
				t.Errorf("config mismatch: got %+v", got)
			}
			if len(got.Slots) != len(config.Slots) {
				t.Fatalf("expected %d slots, got %d", len(config.Slots), len(got.Slots))
			}
			for i, slot := range config.Slots {
				if got.Slots[i] != slot {
					t.Errorf("slot %d: expected %s, got %s", i, slot, got.Slots[i])
				}
			}
		})
	}
}

func TestSaveConfigReplacesWhole(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			first := models.ReminderConfig{
				IntervalHours: 1,
				StartTime:     "08:00",
				EndTime:       "10:00",
				Slots:         []string{"08:00", "09:00", "10:00"},
			}
			second := models.ReminderConfig{
				IntervalHours: 4,
				StartTime:     "10:00",
				EndTime:       "18:00",
				Slots:         []string{"10:00", "14:00", "18:00"},
			}

			if err := store.SaveConfig(first); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}
			if err := store.SaveConfig(second); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			got, err := store.GetConfig()
			if err != nil {
				t.Fatalf("GetConfig failed: %v", err)
			}
			if got.IntervalHours != 4 || len(got.Slots) != 3 || got.Slots[0] != "10:00" {
				t.Errorf("expected second config to fully replace first, got %+v", got)
			}
		})
	}
}

func TestHydrationDayLifecycle(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			const date = "2026-08-28"

			// A never-seen date reads back empty, not as an error.
			day, err := store.GetHydrationDay(date)
			if err != nil {
				t.Fatalf("GetHydrationDay failed: %v", err)
			}
			if len(day.Completed) != 0 {
				t.Errorf("expected empty day, got %v", day.Completed)
			}

			if err := store.AddHydrationStat(date, "08:00"); err != nil {
				t.Fatalf("AddHydrationStat failed: %v", err)
			}
			if err := store.AddHydrationStat(date, "10:00"); err != nil {
				t.Fatalf("AddHydrationStat failed: %v", err)
			}

			day, err = store.GetHydrationDay(date)
			if err != nil {
				t.Fatalf("GetHydrationDay failed: %v", err)
			}
			if !day.Completed["08:00"] || !day.Completed["10:00"] {
				t.Errorf("expected both slots completed, got %v", day.Completed)
			}

			// Adding one slot must not disturb the others (merge, not replace).
			if err := store.AddHydrationStat(date, "12:00"); err != nil {
				t.Fatalf("AddHydrationStat failed: %v", err)
			}
			day, _ = store.GetHydrationDay(date)
			if len(day.Completed) != 3 {
				t.Errorf("expected 3 completed slots, got %v", day.Completed)
			}

			if err := store.RemoveHydrationStat(date, "10:00"); err != nil {
				t.Fatalf("RemoveHydrationStat failed: %v", err)
			}
			day, _ = store.GetHydrationDay(date)
			if _, present := day.Completed["10:00"]; present {
				t.Error("removed slot should be absent, not false")
			}
			if !day.Completed["08:00"] || !day.Completed["12:00"] {
				t.Errorf("remove disturbed unrelated slots: %v", day.Completed)
			}
		})
	}
}

func TestAddHydrationStatIdempotent(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			const date = "2026-08-28"

			if err := store.AddHydrationStat(date, "08:00"); err != nil {
				t.Fatalf("AddHydrationStat failed: %v", err)
			}
			if err := store.AddHydrationStat(date, "08:00"); err != nil {
				t.Fatalf("second AddHydrationStat failed: %v", err)
			}

			day, err := store.GetHydrationDay(date)
			if err != nil {
				t.Fatalf("GetHydrationDay failed: %v", err)
			}
			if len(day.Completed) != 1 {
				t.Errorf("expected 1 completed slot, got %v", day.Completed)
			}
		})
	}
}

func TestClearHydrationDayScopedToDate(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.AddHydrationStat("2026-08-27", "09:00"); err != nil {
				t.Fatalf("AddHydrationStat failed: %v", err)
			}
			if err := store.AddHydrationStat("2026-08-28", "09:00"); err != nil {
				t.Fatalf("AddHydrationStat failed: %v", err)
			}

			if err := store.ClearHydrationDay("2026-08-28"); err != nil {
				t.Fatalf("ClearHydrationDay failed: %v", err)
			}

			today, _ := store.GetHydrationDay("2026-08-28")
			if len(today.Completed) != 0 {
				t.Errorf("cleared day should be empty, got %v", today.Completed)
			}

			// Past records stay untouched.
			yesterday, _ := store.GetHydrationDay("2026-08-27")
			if !yesterday.Completed["09:00"] {
				t.Errorf("clear leaked into another date: %v", yesterday.Completed)
			}
		})
	}
}

func TestJSONStorePersistsAcrossLoads(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "quench.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.AddHydrationStat("2026-08-28", "08:00"); err != nil {
		t.Fatalf("AddHydrationStat failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	day, err := reopened.GetHydrationDay("2026-08-28")
	if err != nil {
		t.Fatalf("GetHydrationDay failed: %v", err)
	}
	if !day.Completed["08:00"] {
		t.Errorf("expected persisted stat after reload, got %v", day.Completed)
	}
}

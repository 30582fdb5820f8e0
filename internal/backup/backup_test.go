package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quenchapp/quench/internal/constants"
	"github.com/quenchapp/quench/internal/models"
	"github.com/quenchapp/quench/internal/storage"
)

// setupStore creates a real quench SQLite store with a saved schedule and a
// couple of logged drinks, then closes it.
func setupStore(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "quench.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	if err := store.SaveConfig(models.ReminderConfig{
		IntervalHours: 2,
		StartTime:     "08:00",
		EndTime:       "22:00",
		Slots:         []string{"08:00", "10:00"},
	}); err != nil {
		t.Fatalf("failed to seed config: %v", err)
	}
	for _, slot := range []string{"08:00", "10:00"} {
		if err := store.AddHydrationStat("2026-08-28", slot); err != nil {
			t.Fatalf("failed to seed hydration stat: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close test store: %v", err)
	}
	return dbPath
}

func reopen(t *testing.T, dbPath string) *storage.SQLiteStore {
	t.Helper()
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreate(t *testing.T) {
	dbPath := setupStore(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}

	// The backup must itself be a readable quench store.
	restored := reopen(t, backupPath)
	day, err := restored.GetHydrationDay("2026-08-28")
	if err != nil {
		t.Fatalf("failed to read backup store: %v", err)
	}
	if len(day.Completed) != 2 {
		t.Errorf("expected 2 completed slots in backup, got %v", day.Completed)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at index %d", i)
		}
	}
}

func TestListEmptyAndPopulated(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("incomplete backup info: %+v", b)
		}
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Log a third drink after the backup was taken.
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	if err := store.AddHydrationStat("2026-08-28", "12:00"); err != nil {
		t.Fatalf("failed to add stat: %v", err)
	}
	store.Close()

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	restored := reopen(t, dbPath)
	day, err := restored.GetHydrationDay("2026-08-28")
	if err != nil {
		t.Fatalf("failed to read restored store: %v", err)
	}
	if len(day.Completed) != 2 {
		t.Errorf("expected restore to roll back to 2 slots, got %v", day.Completed)
	}
}

func TestRestoreBacksUpCurrentStoreFirst(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	after, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("expected %d backups after restore, got %d", len(before)+1, len(after))
	}
}

func TestVerifyRejectsCorruptBackup(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := mgr.verify(backupPath); err != nil {
		t.Errorf("verify failed for valid backup: %v", err)
	}

	invalidPath := filepath.Join(mgr.BackupDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.verify(invalidPath); err == nil {
		t.Error("verify should fail for a corrupt backup")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		filename := filepath.Base(backupPath)
		if paths[filename] {
			t.Errorf("duplicate backup filename: %s", filename)
		}
		paths[filename] = true
	}
}

func TestJSONStoreBackupRoundtrip(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "quench.json")
	store := storage.NewJSONStore(jsonPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to create JSON store: %v", err)
	}
	if err := store.AddHydrationStat("2026-08-28", "08:00"); err != nil {
		t.Fatalf("failed to seed stat: %v", err)
	}

	mgr := NewManager(jsonPath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected .json backup for JSON store, got %s", backupPath)
	}

	if err := store.ClearHydrationDay("2026-08-28"); err != nil {
		t.Fatalf("failed to clear day: %v", err)
	}
	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	reopened := storage.NewJSONStore(jsonPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload JSON store: %v", err)
	}
	day, err := reopened.GetHydrationDay("2026-08-28")
	if err != nil {
		t.Fatalf("failed to read restored store: %v", err)
	}
	if !day.Completed["08:00"] {
		t.Errorf("expected restored stat, got %v", day.Completed)
	}
}

package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS(migrations map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range migrations {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func TestCurrentVersionFreshDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(nil))

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 for a fresh database, got %d", version)
	}
}

func TestReadMigrationsSortedAndParsed(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"002_entries.sql": "CREATE TABLE entries (id INTEGER);",
		"001_init.sql":    "CREATE TABLE settings (key TEXT);",
		"003_index.sql":   "CREATE INDEX idx ON entries (id);",
		"README.md":       "not a migration",
	}))

	migrations, err := runner.readMigrations()
	if err != nil {
		t.Fatalf("readMigrations failed: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	expected := []struct {
		version int
		name    string
	}{{1, "init"}, {2, "entries"}, {3, "index"}}
	for i, e := range expected {
		if migrations[i].Version != e.version || migrations[i].Name != e.name {
			t.Errorf("migration %d: expected %d/%s, got %d/%s", i, e.version, e.name, migrations[i].Version, migrations[i].Name)
		}
	}
}

func TestReadMigrationsRejectsBadFilenames(t *testing.T) {
	db := setupTestDB(t)

	cases := []map[string]string{
		{"init.sql": "CREATE TABLE t (id INTEGER);"},
		{"abc_init.sql": "CREATE TABLE t (id INTEGER);"},
		{"001_a.sql": "CREATE TABLE a (id INTEGER);", "001_b.sql": "CREATE TABLE b (id INTEGER);"},
	}
	for i, files := range cases {
		runner := NewRunner(db, testFS(files))
		if _, err := runner.readMigrations(); err == nil {
			t.Errorf("case %d: expected error for invalid migration set", i)
		}
	}
}

func TestApplyFromScratch(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_init.sql":    "CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT);",
		"002_entries.sql": "CREATE TABLE entries (day TEXT, slot TEXT, PRIMARY KEY (day, slot));",
	}))

	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2 after apply, got %d", version)
	}

	// Both tables exist.
	for _, table := range []string{"settings", "entries"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("expected table %s to exist: %v", table, err)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_init.sql": "CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT);",
	}))

	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}
	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on re-apply, got %d", applied)
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)
	files := testFS(map[string]string{
		"001_init.sql": "CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT);",
	})

	// Behind: migrations exist but none applied.
	runner := NewRunner(db, files)
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for schema behind latest migration")
	}

	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("expected valid schema after apply, got %v", err)
	}

	// Ahead: database written by a newer application version.
	if err := runner.setVersion(99); err != nil {
		t.Fatalf("setVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for schema ahead of latest migration")
	}
}

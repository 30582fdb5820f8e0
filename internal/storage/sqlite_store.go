package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quenchapp/quench/internal/migration"
	"github.com/quenchapp/quench/internal/models"
	"github.com/quenchapp/quench/migrations"
)

const (
	settingIntervalHours = "interval_hours"
	settingStartTime     = "start_time"
	settingEndTime       = "end_time"
	settingSlots         = "slots"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'quench init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) migrationsFS() (fs.FS, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return subFS, nil
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := s.migrationsFS()
	if err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.Apply(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *SQLiteStore) validateSchemaVersion() error {
	subFS, err := s.migrationsFS()
	if err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}

func (s *SQLiteStore) GetConfig() (models.ReminderConfig, error) {
	if s.db == nil {
		return models.ReminderConfig{}, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.ReminderConfig{}, err
	}
	defer rows.Close()

	config := models.ReminderConfig{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.ReminderConfig{}, err
		}
		switch key {
		case settingIntervalHours:
			interval, err := strconv.Atoi(value)
			if err != nil {
				return models.ReminderConfig{}, fmt.Errorf("parsing %s: %w", settingIntervalHours, err)
			}
			config.IntervalHours = interval
		case settingStartTime:
			config.StartTime = value
		case settingEndTime:
			config.EndTime = value
		case settingSlots:
			if err := json.Unmarshal([]byte(value), &config.Slots); err != nil {
				return models.ReminderConfig{}, fmt.Errorf("parsing %s: %w", settingSlots, err)
			}
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.ReminderConfig{}, err
	}

	if count == 0 {
		return models.ReminderConfig{}, ErrConfigNotFound
	}

	return config, nil
}

func (s *SQLiteStore) SaveConfig(config models.ReminderConfig) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	slotsJSON, err := json.Marshal(config.Slots)
	if err != nil {
		return fmt.Errorf("failed to serialize slots: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(settingIntervalHours, strconv.Itoa(config.IntervalHours)); err != nil {
		return err
	}
	if _, err := stmt.Exec(settingStartTime, config.StartTime); err != nil {
		return err
	}
	if _, err := stmt.Exec(settingEndTime, config.EndTime); err != nil {
		return err
	}
	if _, err := stmt.Exec(settingSlots, string(slotsJSON)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHydrationDay(date string) (models.HydrationDay, error) {
	day := models.HydrationDay{
		Date:      date,
		Completed: make(map[string]bool),
	}

	if s.db == nil {
		return day, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT slot FROM hydration_entries WHERE day = ?", date)
	if err != nil {
		return day, err
	}
	defer rows.Close()

	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return day, err
		}
		day.Completed[slot] = true
	}
	if err := rows.Err(); err != nil {
		return day, err
	}

	return day, nil
}

func (s *SQLiteStore) AddHydrationStat(date, slot string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	// INSERT OR IGNORE makes repeated acknowledgements of the same slot
	// idempotent and never touches other slots of the day.
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO hydration_entries (day, slot, created_at) VALUES (?, ?, ?)",
		date, slot, time.Now().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) RemoveHydrationStat(date, slot string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec("DELETE FROM hydration_entries WHERE day = ? AND slot = ?", date, slot)
	return err
}

func (s *SQLiteStore) ClearHydrationDay(date string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec("DELETE FROM hydration_entries WHERE day = ?", date)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB exposes the underlying handle for backups and tests.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

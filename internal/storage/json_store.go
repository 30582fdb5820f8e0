package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quenchapp/quench/internal/models"
)

// Store is the on-disk shape of the JSON backend. Days maps YYYY-MM-DD date
// keys to the set of completed slots; only true entries are stored.
type Store struct {
	Version int                        `json:"version"`
	Config  *models.ReminderConfig     `json:"config,omitempty"`
	Days    map[string]map[string]bool `json:"days"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Days:    make(map[string]map[string]bool),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'quench init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Days == nil {
		s.store.Days = make(map[string]map[string]bool)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfig() (models.ReminderConfig, error) {
	if s.store == nil {
		return models.ReminderConfig{}, fmt.Errorf("storage not loaded")
	}
	if s.store.Config == nil {
		return models.ReminderConfig{}, ErrConfigNotFound
	}
	return *s.store.Config, nil
}

func (s *JSONStore) SaveConfig(config models.ReminderConfig) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Config = &config
	return s.save()
}

func (s *JSONStore) GetHydrationDay(date string) (models.HydrationDay, error) {
	day := models.HydrationDay{
		Date:      date,
		Completed: make(map[string]bool),
	}

	if s.store == nil {
		return day, fmt.Errorf("storage not loaded")
	}

	for slot := range s.store.Days[date] {
		day.Completed[slot] = true
	}
	return day, nil
}

func (s *JSONStore) AddHydrationStat(date, slot string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if s.store.Days[date] == nil {
		s.store.Days[date] = make(map[string]bool)
	}
	s.store.Days[date][slot] = true
	return s.save()
}

func (s *JSONStore) RemoveHydrationStat(date, slot string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if day, ok := s.store.Days[date]; ok {
		delete(day, slot)
		if len(day) == 0 {
			delete(s.store.Days, date)
		}
	}
	return s.save()
}

func (s *JSONStore) ClearHydrationDay(date string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	delete(s.store.Days, date)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

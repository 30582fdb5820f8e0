// Package backup snapshots the quench store into a rotating backup
// directory next to it and restores from those snapshots.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quenchapp/quench/internal/constants"
	"github.com/quenchapp/quench/internal/logger"
)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for a single store file. JSON stores are
// copied byte for byte; SQLite stores go through VACUUM INTO so a snapshot is
// consistent even while the daemon holds the database open.
type Manager struct {
	storePath string
	backupDir string
}

// NewManager creates a backup manager for the store at storePath. Backups
// land in a "backups" directory beside it.
func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), constants.BackupDirName),
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

func (m *Manager) fileSuffix() string {
	if strings.HasSuffix(m.storePath, ".json") {
		return ".json"
	}
	return constants.BackupFileSuffix
}

// Create snapshots the store and rotates out backups beyond the retention
// limit. The new backup's path is returned.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

// create snapshots the store. skipRotation prevents recursive rotation when
// Restore backs up the current store first.
func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	backupPath, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.snapshot(backupPath); err != nil {
		return "", fmt.Errorf("failed to snapshot store: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			// A full snapshot already exists, so rotation failure is not fatal.
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// uniqueBackupPath picks a timestamped filename, falling back to second
// precision and then a counter when a name collides.
func (m *Manager) uniqueBackupPath() (string, error) {
	suffix := m.fileSuffix()
	name := constants.BackupFilePrefix + time.Now().Format("20060102-1504") + suffix
	path := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	timestamp := time.Now().Format("20060102-150405")
	path = filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+suffix)
	for counter := 1; counter <= 100; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, suffix))
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func (m *Manager) snapshot(destPath string) error {
	if m.fileSuffix() == ".json" {
		return copyFile(m.storePath, destPath)
	}

	srcDB, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	// VACUUM INTO writes a clean consistent copy; fall back to a plain file
	// copy on SQLite builds without it.
	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		srcDB.Close()
		return copyFile(m.storePath, destPath)
	}
	return nil
}

// List returns all backups for this store, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	suffix := m.fileSuffix()
	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, suffix) {
			continue
		}

		timestamp, ok := parseBackupTimestamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), suffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseBackupTimestamp extracts the timestamp from a backup filename stem,
// tolerating an appended collision counter.
func parseBackupTimestamp(stem string) (time.Time, bool) {
	parts := strings.Split(stem, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			stem = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	if ts, err := time.Parse("20060102-1504", stem); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("20060102-150405", stem); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the store with the given backup. The current store is
// backed up first, and the replacement happens via an atomic rename.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		currentBackup, err := m.create(true)
		if err != nil {
			return fmt.Errorf("failed to back up current store before restore: %w", err)
		}
		logger.Info("Backed up current store before restore", "backup", filepath.Base(currentBackup))
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.storePath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore store: %w", err)
	}
	return nil
}

// verify checks that a backup file is readable as a store of the right kind.
func (m *Manager) verify(path string) error {
	if m.fileSuffix() == ".json" {
		_, err := os.ReadFile(path)
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

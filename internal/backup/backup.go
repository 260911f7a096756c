// Package backup keeps timestamped copies of files as they were before a save.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bethropolis/dmacs/internal/logger"
)

const (
	timestampFormat = "20060102150405"
	extension       = ".bak"
)

// ErrNotFound is returned when a file has no backup.
var ErrNotFound = errors.New("no backup found")

// Manager writes backups into a single directory. File names are
// "<base>-<hash>.<timestamp>.bak" where hash is the first 8 hex digits of
// the SHA-256 of the absolute path, so equally named files do not collide.
type Manager struct {
	dir string
	now func() time.Time
}

// NewManager creates the backup directory if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory '%s': %w", dir, err)
	}
	return &Manager{dir: dir, now: time.Now}, nil
}

// SetClock replaces the time source used for timestamps and age checks.
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

// Dir returns the backup directory.
func (m *Manager) Dir() string { return m.dir }

func (m *Manager) prefix(filePath string) string {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		abs = filePath
	}
	sum := sha256.Sum256([]byte(abs))
	base := filepath.Base(filePath)
	if base == "." || base == string(filepath.Separator) {
		base = "unnamed"
	}
	return base + "-" + hex.EncodeToString(sum[:])[:8]
}

// Save writes content as the newest backup of filePath and returns the
// backup's path. Empty content, or content equal to the latest backup, is
// skipped and "" is returned.
func (m *Manager) Save(filePath, content string) (string, error) {
	if content == "" {
		return "", nil
	}
	if latest, err := m.Latest(filePath); err == nil {
		if old, err := os.ReadFile(latest); err == nil && string(old) == content {
			logger.Debugf("Backup: %s unchanged since %s, skipping", filePath, filepath.Base(latest))
			return "", nil
		}
	}

	name := m.prefix(filePath) + "." + m.now().Format(timestampFormat) + extension
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write backup '%s': %w", path, err)
	}
	logger.Debugf("Backup: saved %s to %s", filePath, path)
	return path, nil
}

// timestampOf extracts the timestamp from a backup file name.
func timestampOf(name string) (time.Time, bool) {
	if !strings.HasSuffix(name, extension) {
		return time.Time{}, false
	}
	stem := strings.TrimSuffix(name, extension)
	dot := strings.LastIndexByte(stem, '.')
	if dot < 0 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(timestampFormat, stem[dot+1:], time.Local)
	return t, err == nil
}

// List returns the backups of filePath, oldest first.
func (m *Manager) List(filePath string) ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory '%s': %w", m.dir, err)
	}
	prefix := m.prefix(filePath) + "."
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, ok := timestampOf(name); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(m.dir, name)
	}
	return paths, nil
}

// Latest returns the path of the newest backup of filePath.
func (m *Manager) Latest(filePath string) (string, error) {
	paths, err := m.List(filePath)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("%s: %w", filePath, ErrNotFound)
	}
	return paths[len(paths)-1], nil
}

// Restore writes the newest backup over filePath and deletes that backup.
func (m *Manager) Restore(filePath string) error {
	latest, err := m.Latest(filePath)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(latest)
	if err != nil {
		return fmt.Errorf("failed to read backup '%s': %w", latest, err)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("failed to restore '%s': %w", filePath, err)
	}
	if err := os.Remove(latest); err != nil {
		return fmt.Errorf("failed to remove backup '%s': %w", latest, err)
	}
	logger.Infof("Backup: restored %s from %s", filePath, filepath.Base(latest))
	return nil
}

// Clean deletes backups whose timestamp is older than maxAge and returns how
// many were removed.
func (m *Manager) Clean(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup directory '%s': %w", m.dir, err)
	}
	cutoff := m.now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := timestampOf(entry.Name())
		if !ok || !ts.Before(cutoff) {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warnf("Backup: failed to delete %s: %v", path, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Debugf("Backup: cleaned %d backups older than %v", removed, maxAge)
	}
	return removed, nil
}

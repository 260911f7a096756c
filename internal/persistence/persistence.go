// Package persistence remembers the cursor and scroll position per file.
package persistence

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/dmacs/internal/logger"
)

// CursorPosition is the saved view of a file.
type CursorPosition struct {
	FilePath        string    `json:"file_path"`
	LastModified    time.Time `json:"last_modified"`
	CursorX         int       `json:"cursor_x"`
	CursorY         int       `json:"cursor_y"`
	ScrollRowOffset int       `json:"scroll_row_offset"`
	ScrollColOffset int       `json:"scroll_col_offset"`
}

// Store keeps one JSON file per edited file, named by the SHA-256 of its path.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates the store directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cursor position directory '%s': %w", dir, err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// SetClock replaces the time source used by Clean.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

func (s *Store) recordPath(filePath string) string {
	sum := sha256.Sum256([]byte(filePath))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

// Save writes pos, replacing any earlier record for the same file.
func (s *Store) Save(pos CursorPosition) error {
	data, err := json.MarshalIndent(pos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cursor position: %w", err)
	}
	path := s.recordPath(pos.FilePath)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cursor position '%s': %w", path, err)
	}
	logger.Debugf("Persistence: saved %s at (%d,%d)", pos.FilePath, pos.CursorX, pos.CursorY)
	return nil
}

// Load returns the record for filePath if one exists and was written for a
// file last modified at mtime.
func (s *Store) Load(filePath string, mtime time.Time) (CursorPosition, bool) {
	path := s.recordPath(filePath)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("Persistence: failed to read %s: %v", path, err)
		}
		return CursorPosition{}, false
	}
	var pos CursorPosition
	if err := json.Unmarshal(data, &pos); err != nil {
		logger.Warnf("Persistence: failed to decode %s: %v", path, err)
		return CursorPosition{}, false
	}
	if !pos.LastModified.Equal(mtime) {
		logger.Debugf("Persistence: %s changed since its position was saved", filePath)
		return CursorPosition{}, false
	}
	return pos, true
}

// Clean deletes records not written within maxAge and returns how many went.
func (s *Store) Clean(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cursor position directory '%s': %w", s.dir, err)
	}
	cutoff := s.now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warnf("Persistence: failed to delete %s: %v", path, err)
			continue
		}
		removed++
	}
	logger.Debugf("Persistence: cleaned %d old records", removed)
	return removed, nil
}

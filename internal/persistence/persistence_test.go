package persistence

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoad(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "cursor_positions"))
	if err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2024, 5, 1, 9, 30, 0, 123456789, time.UTC)
	want := CursorPosition{
		FilePath:        "/home/me/notes.md",
		LastModified:    mtime,
		CursorX:         4,
		CursorY:         12,
		ScrollRowOffset: 3,
		ScrollColOffset: 1,
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Run("matching mtime", func(t *testing.T) {
		got, ok := s.Load(want.FilePath, mtime)
		if !ok {
			t.Fatal("record not found")
		}
		if got.CursorX != 4 || got.CursorY != 12 || got.ScrollRowOffset != 3 || got.ScrollColOffset != 1 {
			t.Errorf("loaded %+v", got)
		}
	})

	t.Run("stale mtime", func(t *testing.T) {
		if _, ok := s.Load(want.FilePath, mtime.Add(time.Second)); ok {
			t.Error("restored a position for a modified file")
		}
	})

	t.Run("unknown file", func(t *testing.T) {
		if _, ok := s.Load("/elsewhere", mtime); ok {
			t.Error("found a record for an unknown file")
		}
	})
}

func TestRecordFormat(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStore(dir)
	s.Save(CursorPosition{FilePath: "/a"})
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("have %d records, want 1", len(entries))
	}
	sum := sha256.Sum256([]byte("/a"))
	if want := hex.EncodeToString(sum[:]) + ".json"; entries[0].Name() != want {
		t.Errorf("record name %q, want %q", entries[0].Name(), want)
	}
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStore(dir)
	now := time.Now()
	s.SetClock(func() time.Time { return now })

	s.Save(CursorPosition{FilePath: "/old"})
	s.Save(CursorPosition{FilePath: "/new"})
	old := s.recordPath("/old")
	past := now.Add(-4 * 24 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Clean(3 * 24 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("removed %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old record survived")
	}
	if _, err := os.Stat(s.recordPath("/new")); err != nil {
		t.Errorf("new record removed: %v", err)
	}
}

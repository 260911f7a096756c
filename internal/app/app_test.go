package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/dmacs/internal/config"
	"github.com/bethropolis/dmacs/internal/types"
	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, path, dataDir string) (*App, tcell.SimulationScreen) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false
	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewApp(Options{
		FilePath: path,
		Config:   cfg,
		DataDir:  dataDir,
		Screen:   screen,
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return a, screen
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestNewApp(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "new.txt")
		a, _ := newTestApp(t, path, "")
		defer a.tuiManager.Close()

		doc := a.Editor().Document()
		if doc.FilePath() != path || doc.LineCount() != 1 || doc.IsDirty() {
			t.Errorf("got path %q, %d lines, dirty %v", doc.FilePath(), doc.LineCount(), doc.IsDirty())
		}
		if a.Editor().Viewport().ScreenRows == 0 {
			t.Error("editor was not sized to the screen")
		}
	})

	t.Run("unreadable file reports error", func(t *testing.T) {
		dir := t.TempDir()
		a, _ := newTestApp(t, dir, "")
		defer a.tuiManager.Close()

		if !strings.HasPrefix(a.Editor().Status(), "Error loading file:") {
			t.Errorf("status = %q", a.Editor().Status())
		}
	})
}

func TestCursorPersistence(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "one\ntwo\nthree\nfour\n")

	a, _ := newTestApp(t, path, dataDir)
	a.Editor().SetCursor(types.Position{Line: 2, Col: 3})
	a.shutdown()
	a.tuiManager.Close()

	b, _ := newTestApp(t, path, dataDir)
	if got := b.Editor().Cursor(); got != (types.Position{Line: 2, Col: 3}) {
		t.Errorf("restored cursor = %v", got)
	}
	b.shutdown()
	b.tuiManager.Close()

	// a change on disk invalidates the record
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	c, _ := newTestApp(t, path, dataDir)
	defer c.tuiManager.Close()
	if got := c.Editor().Cursor(); got != (types.Position{}) {
		t.Errorf("cursor after modification = %v, want origin", got)
	}
}

func TestInterrupt(t *testing.T) {
	ctrlC := tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	t.Run("second press quits", func(t *testing.T) {
		a, _ := newTestApp(t, "", "")
		defer a.tuiManager.Close()

		if a.handleEvent(ctrlC) {
			t.Fatal("first Ctrl-C quit")
		}
		if a.Editor().Status() != quitPrompt {
			t.Errorf("status = %q", a.Editor().Status())
		}
		if !a.handleEvent(ctrlC) {
			t.Error("second Ctrl-C did not quit")
		}
	})

	t.Run("other key resets", func(t *testing.T) {
		a, _ := newTestApp(t, "", "")
		defer a.tuiManager.Close()

		a.handleEvent(ctrlC)
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
		if a.handleEvent(ctrlC) {
			t.Error("Ctrl-C after another key quit")
		}
	})

	t.Run("earlier window does not cut a new one short", func(t *testing.T) {
		a, _ := newTestApp(t, "", "")
		defer a.tuiManager.Close()
		a.quitTimeout = 200 * time.Millisecond

		a.handleEvent(ctrlC)
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
		time.Sleep(120 * time.Millisecond)
		a.handleEvent(ctrlC)
		// the first window has ended, the second has not
		time.Sleep(120 * time.Millisecond)
		if got := a.ctrlC.Load(); got != 1 {
			t.Fatalf("counter = %d, want 1", got)
		}
		if !a.handleEvent(ctrlC) {
			t.Error("Ctrl-C inside the second window did not quit")
		}
	})

	t.Run("timeout clears prompt", func(t *testing.T) {
		a, _ := newTestApp(t, "", "")
		defer a.tuiManager.Close()
		a.quitTimeout = 10 * time.Millisecond

		a.interrupt()
		select {
		case <-a.redrawRequest:
		case <-time.After(2 * time.Second):
			t.Fatal("no redraw after timeout")
		}
		a.drawEditor()
		if a.Editor().Status() != "" {
			t.Errorf("status = %q, want cleared", a.Editor().Status())
		}
		if a.handleEvent(ctrlC) {
			t.Error("Ctrl-C after timeout quit")
		}
	})
}

func TestRunSaveAndQuit(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "todo.txt")
	writeFile(t, path, "hello\n")

	a, screen := newTestApp(t, path, dataDir)

	result := make(chan error, 1)
	go func() { result <- a.Run() }()

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'b', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "abhello\n" {
		t.Errorf("file = %q", data)
	}
	backups, err := a.backups.List(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1", len(backups))
	}
	entries, err := os.ReadDir(filepath.Join(dataDir, config.CursorPositionsDirName))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d cursor records, want 1", len(entries))
	}
}

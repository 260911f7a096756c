package clipboard

import (
	"errors"
	"testing"
)

type fakeSystem struct {
	text     string
	readErr  error
	writeErr error
	writes   int
}

func (f *fakeSystem) ReadAll() (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.text, nil
}

func (f *fakeSystem) WriteAll(text string) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = text
	return nil
}

func TestKillAccumulates(t *testing.T) {
	m := NewManager(nil)
	m.Kill("line one")
	m.Kill("\n")
	m.Kill("line two")
	if got := m.Contents(); got != "line one\nline two" {
		t.Fatalf("Contents = %q", got)
	}

	m.BreakStreak()
	m.Kill("fresh")
	if got := m.Contents(); got != "fresh" {
		t.Errorf("Contents after streak break = %q, want %q", got, "fresh")
	}
}

func TestCopyEndsStreak(t *testing.T) {
	m := NewManager(nil)
	m.Kill("a")
	m.Copy("copied")
	if m.LastActionWasKill() {
		t.Fatalf("Copy left the kill streak open")
	}
	m.Kill("b")
	if got := m.Contents(); got != "b" {
		t.Errorf("Contents = %q, want %q", got, "b")
	}
}

func TestSystemClipboard(t *testing.T) {
	t.Run("kill writes through", func(t *testing.T) {
		sys := &fakeSystem{}
		m := NewManager(sys)
		m.Kill("x")
		m.Kill("y")
		if sys.text != "xy" {
			t.Errorf("system text = %q, want %q", sys.text, "xy")
		}
	})

	t.Run("yank prefers system text", func(t *testing.T) {
		sys := &fakeSystem{text: "from outside"}
		m := NewManager(sys)
		m.SetContents("internal")
		if got := m.Yank(); got != "from outside" {
			t.Errorf("Yank = %q", got)
		}
		if m.Contents() != "from outside" {
			t.Errorf("kill buffer not refreshed from system clipboard")
		}
	})

	t.Run("failures fall back to kill buffer", func(t *testing.T) {
		sys := &fakeSystem{readErr: errors.New("no display"), writeErr: errors.New("no display")}
		m := NewManager(sys)
		m.Kill("kept")
		if got := m.Yank(); got != "kept" {
			t.Errorf("Yank = %q, want %q", got, "kept")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		sys := &fakeSystem{text: "ignored"}
		m := NewManager(sys)
		m.SetSystem(nil)
		m.Copy("mine")
		if got := m.Yank(); got != "mine" {
			t.Errorf("Yank = %q, want %q", got, "mine")
		}
		if sys.writes != 0 {
			t.Errorf("disabled clipboard was written %d times", sys.writes)
		}
	})
}

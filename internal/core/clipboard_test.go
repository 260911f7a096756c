package core

import "testing"

func TestCopySelection(t *testing.T) {
	e, _ := newTestEditor(t, "hello world")
	e.SetMarker()
	assertStatus(t, e, "Marker set.")
	e.SetCursor(pos(5, 0))
	e.CopySelection()
	assertStatus(t, e, "Selection copied to clipboard.")
	if got := e.Clipboard().Contents(); got != "hello" {
		t.Errorf("clipboard = %q", got)
	}
	if e.HasSelection() {
		t.Error("copy left the marker set")
	}
	assertLines(t, e, "hello world")
}

func TestCutSelection(t *testing.T) {
	e, _ := newTestEditor(t, "ab", "cd", "ef")
	e.SetCursor(pos(1, 0))
	e.SetMarker()
	e.SetCursor(pos(1, 2))
	e.CutSelection()
	assertLines(t, e, "af")
	assertCursor(t, e, 1, 0)
	assertStatus(t, e, "Selection cut to clipboard.")
	if got := e.Clipboard().Contents(); got != "b\ncd\ne" {
		t.Errorf("clipboard = %q", got)
	}

	e.Undo()
	assertLines(t, e, "ab", "cd", "ef")
	assertCursor(t, e, 1, 2)

	e.Yank()
	assertLines(t, e, "ab", "cd", "eb", "cd", "ef")
}

func TestCutWithoutSelection(t *testing.T) {
	e, _ := newTestEditor(t, "x")
	e.CutSelection()
	assertStatus(t, e, "No selection.")
	e.CopySelection()
	assertStatus(t, e, "No selection.")
}

func TestSelectionHelpers(t *testing.T) {
	e, _ := newTestEditor(t, "abc", "def")
	e.SetCursor(pos(1, 0))
	e.SetMarker()
	e.SetCursor(pos(2, 1))
	if !e.InSelection(0, 2) || e.InSelection(0, 0) || e.InSelection(1, 2) {
		t.Error("InSelection disagrees with the (1,0)..(2,1) range")
	}
	if !e.SelectionReachesEOL(0) || e.SelectionReachesEOL(1) {
		t.Error("SelectionReachesEOL wrong")
	}
	e.ClearMarker()
	assertStatus(t, e, "Marker cleared.")
	if e.HasSelection() {
		t.Error("marker still set")
	}
}

func TestCopyAfterEditShrinksBelowMarker(t *testing.T) {
	e, _ := newTestEditor(t, "aaaaaa", "b")
	e.SetCursor(pos(1, 1))
	e.SetMarker()
	e.SetCursor(pos(6, 0))
	e.KillLine()
	assertLines(t, e, "aaaaaab")

	e.CopySelection()
	if got := e.Clipboard().Contents(); got != "aaaaa" {
		t.Errorf("clipboard = %q, want %q", got, "aaaaa")
	}
}

package history

import (
	"errors"
	"testing"
	"time"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/types"
)

// fakeClock hands out times that only move when advanced.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager() (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(500*time.Millisecond, 0)
	m.SetClock(clock.now)
	return m, clock
}

func pos(x, y int) types.Position { return types.Position{Line: y, Col: x} }

// typeChar applies and records a single-byte insertion at the end of line y.
func typeChar(t *testing.T, m *Manager, doc *buffer.Document, y int, ch string) {
	t.Helper()
	x := len(doc.Line(y))
	diff := buffer.CharChange{
		Cursors: buffer.Cursors{Start: pos(x, y), End: pos(x+len(ch), y)},
		X:       x,
		Y:       y,
		Added:   ch,
	}
	if _, err := doc.Apply(diff, false); err != nil {
		t.Fatalf("apply %q: %v", ch, err)
	}
	m.Record(KindInsertion, diff)
}

func TestCoalescing(t *testing.T) {
	t.Run("fast typing is one transaction", func(t *testing.T) {
		m, clock := newTestManager()
		doc := buffer.New()
		for _, ch := range []string{"a", "b", "c"} {
			typeChar(t, m, doc, 0, ch)
			clock.advance(100 * time.Millisecond)
		}
		if got := m.UndoDepth(); got != 1 {
			t.Fatalf("UndoDepth = %d, want 1", got)
		}
		r, ok, err := m.Undo(doc)
		if err != nil || !ok {
			t.Fatalf("Undo = %v, %v", ok, err)
		}
		if doc.Line(0) != "" {
			t.Errorf("line after undo = %q, want empty", doc.Line(0))
		}
		if cursor := r.Cursor; cursor != pos(0, 0) {
			t.Errorf("cursor after undo = %v, want (0,0)", cursor)
		}
	})

	t.Run("pause starts a new transaction", func(t *testing.T) {
		m, clock := newTestManager()
		doc := buffer.New()
		typeChar(t, m, doc, 0, "a")
		clock.advance(600 * time.Millisecond)
		typeChar(t, m, doc, 0, "b")
		if got := m.UndoDepth(); got != 2 {
			t.Fatalf("UndoDepth = %d, want 2", got)
		}
		if _, _, err := m.Undo(doc); err != nil {
			t.Fatal(err)
		}
		if doc.Line(0) != "a" {
			t.Errorf("line = %q, want %q", doc.Line(0), "a")
		}
	})

	t.Run("kind change starts a new transaction", func(t *testing.T) {
		m, _ := newTestManager()
		doc := buffer.New()
		typeChar(t, m, doc, 0, "ab")
		del := buffer.CharChange{
			Cursors: buffer.Cursors{Start: pos(2, 0), End: pos(1, 0)},
			X:       1,
			Deleted: "b",
		}
		if _, err := doc.Apply(del, false); err != nil {
			t.Fatal(err)
		}
		m.Record(KindDeletion, del)
		if got := m.UndoDepth(); got != 2 {
			t.Fatalf("UndoDepth = %d, want 2", got)
		}
	})

	t.Run("checkbox toggles never merge", func(t *testing.T) {
		m, _ := newTestManager()
		doc := buffer.NewFromLines("task")
		for _, prefix := range []string{"- ", "[ ] "} {
			diff := buffer.CharChange{X: 0, Y: 0, Added: prefix}
			if _, err := doc.Apply(diff, false); err != nil {
				t.Fatal(err)
			}
			m.Record(KindToggleCheckbox, diff)
		}
		if got := m.UndoDepth(); got != 2 {
			t.Fatalf("UndoDepth = %d, want 2", got)
		}
	})

	t.Run("amend joins the open transaction", func(t *testing.T) {
		m, clock := newTestManager()
		doc := buffer.NewFromLines("  item")
		nl := buffer.NewlineInsertion{Cursors: buffer.Cursors{Start: pos(6, 0), End: pos(0, 1)}, X: 6, Y: 0}
		if _, err := doc.Apply(nl, false); err != nil {
			t.Fatal(err)
		}
		m.Record(KindNewline, nl)
		clock.advance(time.Second)
		indent := buffer.CharChange{Cursors: buffer.Cursors{Start: pos(0, 1), End: pos(2, 1)}, X: 0, Y: 1, Added: "  "}
		if _, err := doc.Apply(indent, false); err != nil {
			t.Fatal(err)
		}
		m.Record(KindAmend, indent)

		tx, ok := m.Top()
		if !ok || tx.Kind != KindNewline || tx.Len() != 2 {
			t.Fatalf("Top = %+v, %v; want Newline transaction with 2 diffs", tx, ok)
		}
		r, _, err := m.Undo(doc)
		if err != nil {
			t.Fatal(err)
		}
		if doc.LineCount() != 1 || doc.Line(0) != "  item" {
			t.Errorf("lines after undo = %q", doc.Lines())
		}
		if cursor := r.Cursor; cursor != pos(6, 0) {
			t.Errorf("cursor = %v, want (6,0)", cursor)
		}
	})

	t.Run("amend on empty history opens a transaction", func(t *testing.T) {
		m, _ := newTestManager()
		doc := buffer.New()
		diff := buffer.CharChange{X: 0, Y: 0, Added: "x"}
		if _, err := doc.Apply(diff, false); err != nil {
			t.Fatal(err)
		}
		m.Record(KindAmend, diff)
		if m.UndoDepth() != 1 {
			t.Fatalf("UndoDepth = %d, want 1", m.UndoDepth())
		}
	})

	t.Run("undo breaks coalescing", func(t *testing.T) {
		m, _ := newTestManager()
		doc := buffer.New()
		typeChar(t, m, doc, 0, "a")
		typeChar(t, m, doc, 0, "b")
		if _, _, err := m.Undo(doc); err != nil {
			t.Fatal(err)
		}
		typeChar(t, m, doc, 0, "c")
		typeChar(t, m, doc, 0, "d")
		if m.UndoDepth() != 1 {
			t.Fatalf("UndoDepth = %d, want 1", m.UndoDepth())
		}
	})
}

func TestUndoRedo(t *testing.T) {
	m, clock := newTestManager()
	doc := buffer.NewFromLines("one", "two")

	swap := buffer.LineSwap{Cursors: buffer.Cursors{Start: pos(1, 1), End: pos(1, 0)}, Y1: 0, Y2: 1}
	if _, err := doc.Apply(swap, false); err != nil {
		t.Fatal(err)
	}
	m.Record(KindLineMovement, swap)
	clock.advance(time.Second)
	typeChar(t, m, doc, 0, "!")

	if got := doc.Lines(); got[0] != "two!" || got[1] != "one" {
		t.Fatalf("lines = %q", got)
	}

	for i := 0; i < 2; i++ {
		if _, ok, err := m.Undo(doc); !ok || err != nil {
			t.Fatalf("undo %d: %v, %v", i, ok, err)
		}
	}
	if got := doc.Lines(); got[0] != "one" || got[1] != "two" {
		t.Fatalf("lines after undo = %q", got)
	}
	if _, ok, _ := m.Undo(doc); ok {
		t.Errorf("Undo on empty stack reported success")
	}

	r, ok, err := m.Redo(doc)
	if !ok || err != nil {
		t.Fatalf("Redo = %v, %v", ok, err)
	}
	if r.Cursor != pos(1, 0) {
		t.Errorf("cursor after redo = %v, want (1,0)", r.Cursor)
	}
	if r.Marker != nil {
		t.Errorf("redo restored a marker the transaction never moved")
	}
	if _, _, err := m.Redo(doc); err != nil {
		t.Fatal(err)
	}
	if doc.Line(0) != "two!" {
		t.Errorf("line 0 after redo = %q", doc.Line(0))
	}
	if m.CanRedo() {
		t.Errorf("CanRedo after redoing everything")
	}

	// a fresh edit clears the redo stack
	if _, _, err := m.Undo(doc); err != nil {
		t.Fatal(err)
	}
	typeChar(t, m, doc, 1, "?")
	if m.CanRedo() {
		t.Errorf("redo stack survived a new edit")
	}
}

func TestUndoFailureRollsBack(t *testing.T) {
	m, clock := newTestManager()
	doc := buffer.NewFromLines("abc")

	first := buffer.CharChange{X: 3, Y: 0, Added: "d"}
	second := buffer.CharChange{X: 4, Y: 0, Added: "e"}
	for _, d := range []buffer.CharChange{first, second} {
		if _, err := doc.Apply(d, false); err != nil {
			t.Fatal(err)
		}
		m.Record(KindInsertion, d)
		clock.advance(10 * time.Millisecond)
	}

	// corrupt the first diff's region behind the history's back
	tamper := buffer.CharChange{X: 3, Y: 0, Deleted: "d", Added: "X"}
	if _, err := doc.Apply(tamper, false); err != nil {
		t.Fatal(err)
	}

	_, ok, err := m.Undo(doc)
	if ok || err == nil {
		t.Fatalf("Undo = %v, %v; want failure", ok, err)
	}
	if !errors.Is(err, buffer.ErrMismatch) {
		t.Errorf("error %v is not ErrMismatch", err)
	}
	if doc.Line(0) != "abcXe" {
		t.Errorf("line after failed undo = %q, want %q", doc.Line(0), "abcXe")
	}
	if m.UndoDepth() != 1 || m.CanRedo() {
		t.Errorf("stacks changed: undo=%d redo=%d", m.UndoDepth(), m.RedoDepth())
	}
}

func TestRedoFailureRollsBack(t *testing.T) {
	m, _ := newTestManager()
	doc := buffer.NewFromLines("abc", "xy")

	first := buffer.CharChange{X: 3, Y: 0, Added: "d"}
	second := buffer.CharChange{X: 2, Y: 1, Added: "e"}
	if _, err := doc.Apply(first, false); err != nil {
		t.Fatal(err)
	}
	m.Record(KindOther, first)
	if _, err := doc.Apply(second, false); err != nil {
		t.Fatal(err)
	}
	m.Record(KindAmend, second)

	if _, ok, err := m.Undo(doc); !ok || err != nil {
		t.Fatalf("Undo = %v, %v", ok, err)
	}
	if m.UndoDepth() != 0 || m.RedoDepth() != 1 {
		t.Fatalf("after undo: undo=%d redo=%d", m.UndoDepth(), m.RedoDepth())
	}

	// shorten the second line so only the transaction's second diff fails
	tamper := buffer.CharChange{X: 1, Y: 1, Deleted: "y"}
	if _, err := doc.Apply(tamper, false); err != nil {
		t.Fatal(err)
	}

	_, ok, err := m.Redo(doc)
	if ok || err == nil {
		t.Fatalf("Redo = %v, %v; want failure", ok, err)
	}
	if !errors.Is(err, buffer.ErrOutOfRange) {
		t.Errorf("error %v is not ErrOutOfRange", err)
	}
	if got := doc.Lines(); len(got) != 2 || got[0] != "abc" || got[1] != "x" {
		t.Errorf("lines after failed redo = %q, want [abc x]", got)
	}
	if m.RedoDepth() != 1 || m.UndoDepth() != 0 {
		t.Errorf("stacks changed: undo=%d redo=%d", m.UndoDepth(), m.RedoDepth())
	}
}

func TestMarkerShift(t *testing.T) {
	m, _ := newTestManager()
	doc := buffer.NewFromLines("line")
	diff := buffer.CharChange{Cursors: buffer.Cursors{Start: pos(4, 0), End: pos(6, 0)}, X: 0, Y: 0, Added: "  "}
	if _, err := doc.Apply(diff, false); err != nil {
		t.Fatal(err)
	}
	m.Record(KindOther, diff)
	m.ShiftMarker(pos(0, 0), pos(2, 0))

	r, _, err := m.Undo(doc)
	if err != nil {
		t.Fatal(err)
	}
	if r.Marker == nil || *r.Marker != pos(0, 0) {
		t.Fatalf("undo marker = %v, want (0,0)", r.Marker)
	}
	r, _, err = m.Redo(doc)
	if err != nil {
		t.Fatal(err)
	}
	if r.Marker == nil || *r.Marker != pos(2, 0) {
		t.Errorf("redo marker = %v, want (2,0)", r.Marker)
	}
}

func TestClear(t *testing.T) {
	m, _ := newTestManager()
	doc := buffer.New()
	typeChar(t, m, doc, 0, "a")
	m.Clear()
	if m.CanUndo() || m.CanRedo() {
		t.Errorf("history not empty after Clear")
	}
}

func TestMaxHistory(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := NewManager(time.Millisecond, 3)
	m.SetClock(clock.now)
	doc := buffer.New()
	for i := 0; i < 5; i++ {
		typeChar(t, m, doc, 0, "x")
		clock.advance(time.Second)
	}
	if m.UndoDepth() != 3 {
		t.Errorf("UndoDepth = %d, want 3", m.UndoDepth())
	}
}

// internal/core/editor.go
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/core/clipboard"
	"github.com/bethropolis/dmacs/internal/core/find"
	"github.com/bethropolis/dmacs/internal/core/fuzzy"
	"github.com/bethropolis/dmacs/internal/core/history"
	"github.com/bethropolis/dmacs/internal/core/scroll"
	"github.com/bethropolis/dmacs/internal/core/selection"
	"github.com/bethropolis/dmacs/internal/core/task"
	"github.com/bethropolis/dmacs/internal/event"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/types"
)

// Mode is the input mode the editor is in.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeFuzzySearch
	ModeTaskSelection
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeSearch:
		return "Search"
	case ModeFuzzySearch:
		return "FuzzySearch"
	case ModeTaskSelection:
		return "TaskSelection"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Options configures a new Editor. Zero values select the defaults.
type Options struct {
	UndoDebounce     time.Duration
	MaxHistory       int
	Clipboard        clipboard.System // nil keeps yanks inside the editor
	HorizontalMargin int
	Now              func() time.Time
}

// Editor owns the document and every piece of state edits touch: cursor,
// viewport, history, kill buffer, selection and the modal search/task state.
type Editor struct {
	doc        *buffer.Document
	cursor     types.Position
	desiredCol int // display column kept across vertical motion

	viewport  *scroll.Viewport
	history   *history.Manager
	clipboard *clipboard.Manager
	selection *selection.Manager
	find      *find.Manager
	fuzzy     *fuzzy.Search
	tasks     *task.List

	mode         Mode
	status       string
	statusBefore string // restored when search exits
	eventManager *event.Manager
	backups      Backuper
	now          func() time.Time
}

// NewEditor creates an editor over doc. A nil doc starts an empty, unnamed document.
func NewEditor(doc *buffer.Document, opts Options) *Editor {
	if doc == nil {
		doc = buffer.New()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	vp := scroll.NewViewport()
	if opts.HorizontalMargin > 0 {
		vp.Margin = opts.HorizontalMargin
	}
	hist := history.NewManager(opts.UndoDebounce, opts.MaxHistory)
	hist.SetClock(now)

	e := &Editor{
		doc:       doc,
		viewport:  vp,
		history:   hist,
		clipboard: clipboard.NewManager(opts.Clipboard),
		selection: selection.NewManager(),
		find:      find.NewManager(),
		fuzzy:     fuzzy.NewSearch(),
		tasks:     task.NewList(1),
		now:       now,
	}
	logger.Debugf("Editor: created for %q (%d lines)", doc.FilePath(), doc.LineCount())
	return e
}

// SetEventManager sets the bus used to announce edits, saves and mode changes.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// Document returns the edited document.
func (e *Editor) Document() *buffer.Document { return e.doc }

// Viewport returns the scroll state.
func (e *Editor) Viewport() *scroll.Viewport { return e.viewport }

// History returns the undo/redo manager.
func (e *Editor) History() *history.Manager { return e.history }

// Clipboard returns the kill buffer manager.
func (e *Editor) Clipboard() *clipboard.Manager { return e.clipboard }

// Selection returns the marker state.
func (e *Editor) Selection() *selection.Manager { return e.selection }

// Find returns the substring search state.
func (e *Editor) Find() *find.Manager { return e.find }

// Fuzzy returns the fuzzy line picker.
func (e *Editor) Fuzzy() *fuzzy.Search { return e.fuzzy }

// Tasks returns the task picker.
func (e *Editor) Tasks() *task.List { return e.tasks }

// Cursor returns the cursor position.
func (e *Editor) Cursor() types.Position { return e.cursor }

// SetCursor moves the cursor, clamped to the document and snapped back onto a
// codepoint boundary.
func (e *Editor) SetCursor(pos types.Position) {
	e.cursor = e.clamp(pos)
	e.updateDesiredCol()
}

// Mode returns the current input mode.
func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) setMode(m Mode) {
	if m == e.mode {
		return
	}
	from := e.mode
	e.mode = m
	logger.Debugf("Editor: mode %v -> %v", from, m)
	e.eventManager.Dispatch(event.TypeModeChanged, event.ModeChangedData{From: from.String(), To: m.String()})
}

// Status returns the status bar message.
func (e *Editor) Status() string { return e.status }

// SetStatus replaces the status bar message.
func (e *Editor) SetStatus(msg string) {
	e.status = msg
	e.eventManager.Dispatch(event.TypeStatusChanged, event.StatusChangedData{Message: msg})
}

// Resize records the terminal size and keeps dependent state in step.
func (e *Editor) Resize(rows, cols int) {
	e.viewport.Resize(rows, cols)
	e.tasks.SetVisibleRows(task.VisibleRows(rows))
	e.ScrollToCursor()
}

// ReservedRows returns the rows an overlay currently takes from the text area.
func (e *Editor) ReservedRows() int {
	switch e.mode {
	case ModeTaskSelection, ModeFuzzySearch:
		return task.UIHeight(e.viewport.ScreenRows)
	}
	return 0
}

// ScrollToCursor brings the cursor into view.
func (e *Editor) ScrollToCursor() {
	e.viewport.ScrollToCursor(e.doc.Line(e.cursor.Line), e.cursor, e.ReservedRows())
}

func (e *Editor) clamp(pos types.Position) types.Position {
	if pos.Line >= e.doc.LineCount() {
		pos.Line = e.doc.LineCount() - 1
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	pos.Col = scroll.ClampCol(e.doc.Line(pos.Line), pos.Col)
	return pos
}

func (e *Editor) updateDesiredCol() {
	e.desiredCol = scroll.DisplayWidth(e.doc.Line(e.cursor.Line), e.cursor.Col)
}

// commit applies diffs in order and records them as one transaction: the
// first under kind, the rest as Amend. If any diff fails its check, the ones
// already applied are reverted and nothing is recorded.
func (e *Editor) commit(kind history.ActionKind, diffs ...buffer.ActionDiff) error {
	if len(diffs) == 0 {
		return nil
	}
	for i, d := range diffs {
		if _, err := e.doc.Apply(d, false); err != nil {
			for j := i - 1; j >= 0; j-- {
				if _, rerr := e.doc.Apply(diffs[j], true); rerr != nil {
					logger.Errorf("Editor: rollback of %v failed: %v", diffs[j].Kind(), rerr)
				}
			}
			return fmt.Errorf("apply %v: %w", d.Kind(), err)
		}
	}
	for i, d := range diffs {
		k := kind
		if i > 0 {
			k = history.KindAmend
		}
		e.history.Record(k, d)
	}
	e.cursor = e.clamp(diffs[len(diffs)-1].CursorEnd())
	e.updateDesiredCol()
	e.clampMarker()
	e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Line: diffs[0].CursorStart().Line})
	return nil
}

// clampMarker keeps a set marker inside the document after an edit.
func (e *Editor) clampMarker() {
	marker, ok := e.selection.Marker()
	if !ok {
		return
	}
	if clamped := e.clamp(marker); clamped != marker {
		e.selection.SetMarker(clamped)
	}
}

// report turns an edit error into a status message.
func (e *Editor) report(err error) {
	if err == nil {
		return
	}
	logger.Warnf("Editor: %v", err)
	var docErr *buffer.DocumentError
	if errors.As(err, &docErr) {
		e.SetStatus(fmt.Sprintf("Edit failed: %v", docErr))
		return
	}
	e.SetStatus(err.Error())
}

// Undo reverts the last transaction.
func (e *Editor) Undo() {
	e.clipboard.BreakStreak()
	restore, ok, err := e.history.Undo(e.doc)
	if err != nil {
		e.SetStatus(fmt.Sprintf("Undo failed: %v", errors.Unwrap(err)))
		logger.Errorf("Editor: %v", err)
		return
	}
	if !ok {
		e.SetStatus("Nothing to undo.")
		return
	}
	e.restore(restore)
	e.SetStatus("Undo successful.")
}

// Redo re-applies the last undone transaction.
func (e *Editor) Redo() {
	e.clipboard.BreakStreak()
	restore, ok, err := e.history.Redo(e.doc)
	if err != nil {
		e.SetStatus(fmt.Sprintf("Redo failed: %v", errors.Unwrap(err)))
		logger.Errorf("Editor: %v", err)
		return
	}
	if !ok {
		e.SetStatus("Nothing to redo.")
		return
	}
	e.restore(restore)
	e.SetStatus("Redo successful.")
}

func (e *Editor) restore(r history.Restore) {
	e.cursor = e.clamp(r.Cursor)
	e.updateDesiredCol()
	if r.Marker != nil && e.selection.IsActive() {
		e.selection.SetMarker(e.clamp(*r.Marker))
	}
	e.clampMarker()
	e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Line: e.cursor.Line, Undo: true})
}

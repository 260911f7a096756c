// internal/core/selection.go
package core

import (
	"github.com/bethropolis/dmacs/internal/types"
)

// SetMarker anchors a selection at the cursor.
func (e *Editor) SetMarker() {
	e.clipboard.BreakStreak()
	e.selection.SetMarker(e.cursor)
	e.SetStatus("Marker set.")
}

// ClearMarker drops the selection.
func (e *Editor) ClearMarker() {
	e.clipboard.BreakStreak()
	e.selection.ClearMarker()
	e.SetStatus("Marker cleared.")
}

// HasSelection reports whether a marker is set.
func (e *Editor) HasSelection() bool { return e.selection.IsActive() }

// SelectionRange returns the ordered selection between marker and cursor.
func (e *Editor) SelectionRange() (start, end types.Position, ok bool) {
	return e.selection.Range(e.cursor)
}

// InSelection reports whether byte col of line y is selected.
func (e *Editor) InSelection(y, col int) bool {
	return e.selection.Contains(e.cursor, pos(col, y))
}

// SelectionReachesEOL reports whether the selection covers the line break
// after line y.
func (e *Editor) SelectionReachesEOL(y int) bool {
	start, end, ok := e.selection.Range(e.cursor)
	if !ok {
		return false
	}
	return y >= start.Line && y < end.Line
}

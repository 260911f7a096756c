// internal/core/clipboard.go
package core

import (
	"github.com/bethropolis/dmacs/internal/core/history"
	"github.com/bethropolis/dmacs/internal/logger"
)

// CutSelection removes the selected text into the kill buffer.
func (e *Editor) CutSelection() {
	text, diff := e.selection.Cut(e.doc, e.cursor)
	if diff == nil {
		e.SetStatus("No selection.")
		return
	}
	e.history.Break()
	if err := e.commit(history.KindDeletion, *diff); err != nil {
		e.report(err)
		return
	}
	e.history.Break()
	e.clipboard.Copy(text)
	logger.Debugf("Editor: cut %d bytes", len(text))
	e.SetStatus("Selection cut to clipboard.")
}

// CopySelection copies the selected text into the kill buffer.
func (e *Editor) CopySelection() {
	if !e.selection.IsActive() {
		e.SetStatus("No selection.")
		return
	}
	text := e.selection.Copy(e.doc, e.cursor)
	e.clipboard.Copy(text)
	logger.Debugf("Editor: copied %d bytes", len(text))
	e.SetStatus("Selection copied to clipboard.")
}

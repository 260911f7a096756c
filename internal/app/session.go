package app

import (
	"path/filepath"

	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/persistence"
	"github.com/bethropolis/dmacs/internal/types"
)

// absPath keys cursor records so the same file matches from any directory.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// restoreCursor brings back the cursor and scroll offsets of the last
// session, provided the file was not modified since.
func (a *App) restoreCursor() {
	doc := a.editor.Document()
	if a.positions == nil || doc.FilePath() == "" {
		return
	}
	mtime, err := doc.LastModified()
	if err != nil {
		return // new file
	}
	pos, ok := a.positions.Load(absPath(doc.FilePath()), mtime)
	if !ok {
		return
	}
	a.editor.SetCursor(types.Position{Line: pos.CursorY, Col: pos.CursorX})
	vp := a.editor.Viewport()
	vp.RowOffset = max(pos.ScrollRowOffset, 0)
	vp.ColOffset = max(pos.ScrollColOffset, 0)
	a.editor.ScrollToCursor()
	logger.Debugf("App: restored cursor to (%d,%d)", pos.CursorX, pos.CursorY)
}

// saveCursor records the cursor and scroll offsets against the file's
// current modification time.
func (a *App) saveCursor() {
	doc := a.editor.Document()
	if a.positions == nil || doc.FilePath() == "" {
		return
	}
	mtime, err := doc.LastModified()
	if err != nil {
		return // never written
	}
	c := a.editor.Cursor()
	vp := a.editor.Viewport()
	err = a.positions.Save(persistence.CursorPosition{
		FilePath:        absPath(doc.FilePath()),
		LastModified:    mtime,
		CursorX:         c.Col,
		CursorY:         c.Line,
		ScrollRowOffset: vp.RowOffset,
		ScrollColOffset: vp.ColOffset,
	})
	if err != nil {
		logger.Warnf("App: %v", err)
	}
}

// internal/core/cursor.go
package core

import (
	"github.com/bethropolis/dmacs/internal/core/scroll"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/utils"
)

const delimiter = "---"

// move places the cursor without touching the desired column.
func (e *Editor) move(x, y int) {
	e.clipboard.BreakStreak()
	e.cursor = e.clamp(pos(x, y))
}

// moveTo places the cursor and makes its column the desired one.
func (e *Editor) moveTo(x, y int) {
	e.move(x, y)
	e.updateDesiredCol()
}

// moveVertical lands on line y at the desired display column.
func (e *Editor) moveVertical(y int) {
	line := e.doc.Line(y)
	x, _ := scroll.ByteFromDisplay(line, e.desiredCol)
	e.move(x, y)
}

// MoveUp moves one line up. On the first line it goes to column 0.
func (e *Editor) MoveUp() {
	if e.cursor.Line == 0 {
		e.moveTo(0, 0)
		return
	}
	e.moveVertical(e.cursor.Line - 1)
}

// MoveDown moves one line down. On the last line it goes to the end of the line.
func (e *Editor) MoveDown() {
	last := e.doc.LineCount() - 1
	if e.cursor.Line >= last {
		e.moveTo(len(e.doc.Line(last)), last)
		return
	}
	e.moveVertical(e.cursor.Line + 1)
}

// MoveLeft moves one codepoint left, wrapping to the end of the previous line.
func (e *Editor) MoveLeft() {
	c := e.cursor
	switch {
	case c.Col > 0:
		e.moveTo(utils.PrevBoundary(e.doc.Line(c.Line), c.Col), c.Line)
	case c.Line > 0:
		e.moveTo(len(e.doc.Line(c.Line-1)), c.Line-1)
	}
}

// MoveRight moves one codepoint right, wrapping to the start of the next line.
func (e *Editor) MoveRight() {
	c := e.cursor
	line := e.doc.Line(c.Line)
	switch {
	case c.Col < len(line):
		e.moveTo(utils.NextBoundary(line, c.Col), c.Line)
	case c.Line+1 < e.doc.LineCount():
		e.moveTo(0, c.Line+1)
	}
}

// LineStart moves to column 0.
func (e *Editor) LineStart() { e.moveTo(0, e.cursor.Line) }

// LineEnd moves past the last character of the line.
func (e *Editor) LineEnd() { e.moveTo(len(e.doc.Line(e.cursor.Line)), e.cursor.Line) }

// WordLeft moves to the start of the previous word, wrapping to the end of
// the previous line from column 0.
func (e *Editor) WordLeft() {
	c := e.cursor
	if c.Col == 0 {
		if c.Line > 0 {
			e.moveTo(len(e.doc.Line(c.Line-1)), c.Line-1)
		}
		return
	}
	e.moveTo(utils.WordLeft(e.doc.Line(c.Line), c.Col), c.Line)
}

// WordRight moves past the end of the next word, wrapping to the start of
// the next line from the end of a line.
func (e *Editor) WordRight() {
	c := e.cursor
	line := e.doc.Line(c.Line)
	if c.Col >= len(line) {
		if c.Line+1 < e.doc.LineCount() {
			e.moveTo(0, c.Line+1)
		}
		return
	}
	e.moveTo(utils.WordRight(line, c.Col), c.Line)
}

// FileStart moves to the start of the document.
func (e *Editor) FileStart() { e.moveTo(0, 0) }

// FileEnd moves to the end of the last line.
func (e *Editor) FileEnd() {
	last := e.doc.LineCount() - 1
	e.moveTo(len(e.doc.Line(last)), last)
}

// PageDown scrolls one page down and puts the cursor on the new top row,
// keeping its column where the line allows.
func (e *Editor) PageDown() {
	top := e.viewport.PageDown(e.doc.LineCount())
	e.move(e.cursor.Col, top)
}

// PageUp scrolls one page up and puts the cursor on the new top row.
func (e *Editor) PageUp() {
	top := e.viewport.PageUp()
	e.move(e.cursor.Col, top)
}

// NextDelimiter moves to the line after the next "---" line, or after the
// current one when the cursor sits on a delimiter. It does not wrap, and does
// nothing when the delimiter is the last line.
func (e *Editor) NextDelimiter() {
	n := e.doc.LineCount()
	y := e.cursor.Line
	target := -1
	if e.doc.Line(y) == delimiter {
		target = y + 1
	} else {
		for i := y + 1; i < n; i++ {
			if e.doc.Line(i) == delimiter {
				target = i + 1
				break
			}
		}
	}
	if target < 0 || target >= n {
		return
	}
	e.jumpToPage(target)
}

// PrevDelimiter moves to the nearest page start above the cursor: line 0 or
// a line right after "---".
func (e *Editor) PrevDelimiter() {
	target := 0
	for i := e.cursor.Line - 1; i > 0; i-- {
		if e.doc.Line(i-1) == delimiter {
			target = i
			break
		}
	}
	e.jumpToPage(target)
}

func (e *Editor) jumpToPage(y int) {
	e.moveTo(0, y)
	e.viewport.RowOffset = y
	logger.Debugf("Editor: jumped to page at line %d", y)
}

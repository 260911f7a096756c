// internal/core/editor_methods.go
package core

import (
	"strings"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/core/history"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/types"
	"github.com/bethropolis/dmacs/internal/utils"
)

func pos(x, y int) types.Position { return types.Position{Line: y, Col: x} }

// InsertChar inserts r at the cursor. A newline is handled by Newline.
func (e *Editor) InsertChar(r rune) {
	if r == '\n' || r == '\r' {
		e.Newline()
		return
	}
	e.clipboard.BreakStreak()
	s := string(r)
	c := e.cursor
	e.report(e.commit(history.KindInsertion, buffer.CharChange{
		Cursors: buffer.Cursors{Start: c, End: pos(c.Col+len(s), c.Line)},
		X:       c.Col,
		Y:       c.Line,
		Added:   s,
	}))
}

// listPrefixes are the markers continued onto a new line, longest first.
var listPrefixes = []string{"- [ ] ", "- [x] ", "- "}

// listMarker returns the list marker following the leading whitespace of line.
func listMarker(line string) string {
	rest := line[utils.LeadingWhitespaceLen(line):]
	for _, p := range listPrefixes {
		if strings.HasPrefix(rest, p) {
			return p
		}
	}
	return ""
}

// isBareMarker reports whether rest, the text after leading whitespace, is a
// list marker with nothing but trailing whitespace after it.
func isBareMarker(rest string) bool {
	switch strings.TrimRight(rest, " \t") {
	case "-", "- [ ]", "- [x]":
		return true
	}
	return false
}

// Backspace deletes the codepoint left of the cursor, or joins the line with
// the previous one at column 0. At the end of a line holding only a list
// marker, the whole marker goes. Inside the indentation two spaces go at once.
func (e *Editor) Backspace() {
	e.clipboard.BreakStreak()
	c := e.cursor
	line := e.doc.Line(c.Line)

	if c.Col == 0 {
		if c.Line == 0 {
			return
		}
		prev := e.doc.Line(c.Line - 1)
		e.report(e.commit(history.KindDeletion, joinDiff(c, prev, c.Line-1, pos(len(prev), c.Line-1))))
		return
	}

	from := utils.PrevBoundary(line, c.Col)
	ws := utils.LeadingWhitespaceLen(line)
	if c.Col == len(line) && ws < len(line) && isBareMarker(line[ws:]) {
		from = ws
	} else if ws >= c.Col && strings.HasSuffix(line[:c.Col], indentUnit) {
		from = c.Col - len(indentUnit)
	}
	e.report(e.commit(history.KindDeletion, buffer.CharChange{
		Cursors: buffer.Cursors{Start: c, End: pos(from, c.Line)},
		X:       from,
		Y:       c.Line,
		Deleted: line[from:c.Col],
	}))
}

// joinDiff removes the line break at the end of line y, whose text is upper.
func joinDiff(start types.Position, upper string, y int, end types.Position) buffer.DeleteRange {
	return buffer.DeleteRange{
		Cursors: buffer.Cursors{Start: start, End: end},
		StartX:  len(upper),
		StartY:  y,
		EndX:    0,
		EndY:    y + 1,
		Content: []string{"", ""},
	}
}

// DeleteForward deletes the codepoint under the cursor, or joins the next
// line at end of line.
func (e *Editor) DeleteForward() {
	e.clipboard.BreakStreak()
	c := e.cursor
	line := e.doc.Line(c.Line)

	if c.Col < len(line) {
		next := utils.NextBoundary(line, c.Col)
		e.report(e.commit(history.KindDeletion, buffer.CharChange{
			Cursors: buffer.Cursors{Start: c, End: c},
			X:       c.Col,
			Y:       c.Line,
			Deleted: line[c.Col:next],
		}))
		return
	}
	if c.Line+1 < e.doc.LineCount() {
		e.report(e.commit(history.KindDeletion, joinDiff(c, line, c.Line, c)))
	}
}

// HungryDelete deletes the word left of the cursor together with the
// whitespace before it. At column 0 it joins with the previous line.
func (e *Editor) HungryDelete() {
	c := e.cursor
	if c.Col == 0 {
		e.Backspace()
		return
	}
	e.clipboard.BreakStreak()
	line := e.doc.Line(c.Line)
	from := utils.WordBoundaryLeft(line, c.Col)
	if from == c.Col {
		return
	}
	e.report(e.commit(history.KindDeletion, buffer.CharChange{
		Cursors: buffer.Cursors{Start: c, End: pos(from, c.Line)},
		X:       from,
		Y:       c.Line,
		Deleted: line[from:c.Col],
	}))
}

// Newline splits the line at the cursor and continues its indentation and
// list marker on the new line. Enter on a line holding only a marker clears
// it instead. Enter after a slash command runs the command.
func (e *Editor) Newline() {
	e.clipboard.BreakStreak()
	c := e.cursor
	line := e.doc.Line(c.Line)
	atEnd := c.Col == len(line)

	if atEnd && strings.TrimSpace(line) == taskCommand {
		e.runTaskCommand()
		return
	}

	ws := utils.LeadingWhitespaceLen(line)
	marker := listMarker(line)
	if atEnd && marker != "" && isBareMarker(line[ws:]) {
		e.report(e.commit(history.KindNewline, buffer.CharChange{
			Cursors: buffer.Cursors{Start: c, End: pos(0, c.Line)},
			X:       0,
			Y:       c.Line,
			Deleted: line,
		}))
		return
	}

	diffs := []buffer.ActionDiff{buffer.NewlineInsertion{
		Cursors: buffer.Cursors{Start: c, End: pos(0, c.Line+1)},
		X:       c.Col,
		Y:       c.Line,
	}}
	prefix := line[:ws] + marker
	if marker == "- [x] " {
		prefix = line[:ws] + "- [ ] "
	}
	if prefix != "" && c.Col >= ws+len(marker) {
		diffs = append(diffs, buffer.CharChange{
			Cursors: buffer.Cursors{Start: pos(0, c.Line+1), End: pos(len(prefix), c.Line+1)},
			X:       0,
			Y:       c.Line + 1,
			Added:   prefix,
		})
	}
	if err := e.commit(history.KindNewline, diffs...); err != nil {
		e.report(err)
		return
	}

	if atEnd {
		e.runLineCommand(c.Line, line)
	}
}

// KillLine deletes from the cursor to the end of the line, or the line break
// when the cursor is already there. Consecutive kills accumulate in the kill
// buffer.
func (e *Editor) KillLine() {
	c := e.cursor
	line := e.doc.Line(c.Line)

	if c.Col < len(line) {
		text := line[c.Col:]
		if err := e.commit(history.KindDeletion, buffer.CharChange{
			Cursors: buffer.Cursors{Start: c, End: c},
			X:       c.Col,
			Y:       c.Line,
			Deleted: text,
		}); err != nil {
			e.report(err)
			return
		}
		e.clipboard.Kill(text)
		return
	}
	if c.Line+1 >= e.doc.LineCount() {
		return
	}
	if err := e.commit(history.KindDeletion, joinDiff(c, line, c.Line, c)); err != nil {
		e.report(err)
		return
	}
	e.clipboard.Kill("\n")
}

// Yank inserts the kill buffer, or the system clipboard when one is
// attached, at the cursor as a single transaction.
func (e *Editor) Yank() {
	text := strings.ReplaceAll(e.clipboard.Yank(), "\r\n", "\n")
	if text == "" {
		e.SetStatus("Kill buffer is empty.")
		return
	}

	var diffs []buffer.ActionDiff
	at := e.cursor
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			next := pos(0, at.Line+1)
			diffs = append(diffs, buffer.NewlineInsertion{
				Cursors: buffer.Cursors{Start: at, End: next},
				X:       at.Col,
				Y:       at.Line,
			})
			at = next
		}
		if part == "" {
			continue
		}
		end := pos(at.Col+len(part), at.Line)
		diffs = append(diffs, buffer.CharChange{
			Cursors: buffer.Cursors{Start: at, End: end},
			X:       at.Col,
			Y:       at.Line,
			Added:   part,
		})
		at = end
	}
	logger.Debugf("Editor: yank %d bytes as %d diffs", len(text), len(diffs))
	e.report(e.commit(history.KindInsertion, diffs...))
}

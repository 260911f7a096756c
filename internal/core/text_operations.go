// internal/core/text_operations.go
package core

import (
	"fmt"
	"strings"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/core/history"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/types"
	"github.com/bethropolis/dmacs/internal/utils"
)

// LineState is the checkbox state of a line.
type LineState int

const (
	StatePlain LineState = iota
	StateListItem
	StateUnchecked
	StateChecked
)

var lineStateNames = [...]string{"Plain", "ListItem", "Unchecked", "Checked"}
var lineStatePrefixes = [...]string{"", "- ", "- [ ] ", "- [x] "}

func (s LineState) String() string { return lineStateNames[s] }

// Next returns the following state in the toggle cycle.
func (s LineState) Next() LineState { return (s + 1) % 4 }

// Prefix returns the marker written for the state.
func (s LineState) Prefix() string { return lineStatePrefixes[s] }

// CheckboxState classifies line by the marker after its leading whitespace.
func CheckboxState(line string) LineState {
	rest := line[utils.LeadingWhitespaceLen(line):]
	switch {
	case strings.HasPrefix(rest, "- [x] "):
		return StateChecked
	case strings.HasPrefix(rest, "- [ ] "):
		return StateUnchecked
	case strings.HasPrefix(rest, "- "):
		return StateListItem
	}
	return StatePlain
}

// WithState rewrites line so it carries the marker of s.
func WithState(line string, s LineState) string {
	ws := utils.LeadingWhitespaceLen(line)
	body := line[ws+len(CheckboxState(line).Prefix()):]
	return line[:ws] + s.Prefix() + body
}

const commentPrefix = "# "

// IsCommented reports whether line starts with "# " after its indentation.
func IsCommented(line string) bool {
	return strings.HasPrefix(line[utils.LeadingWhitespaceLen(line):], commentPrefix)
}

func toggleComment(line string, comment bool) string {
	ws := utils.LeadingWhitespaceLen(line)
	if comment {
		if IsCommented(line) {
			return line
		}
		return line[:ws] + commentPrefix + line[ws:]
	}
	if !IsCommented(line) {
		return line
	}
	return line[:ws] + line[ws+len(commentPrefix):]
}

type lineEdit struct {
	y        int
	old, new string
}

// replaceLines records every edit as a delete of the old text followed by an
// insert of the new one, all in one transaction. The cursor ends at end.
func (e *Editor) replaceLines(kind history.ActionKind, edits []lineEdit, end types.Position) error {
	var diffs []buffer.ActionDiff
	at := e.cursor
	for _, ed := range edits {
		if ed.old == ed.new {
			continue
		}
		lineStart := pos(0, ed.y)
		diffs = append(diffs,
			buffer.CharChange{
				Cursors: buffer.Cursors{Start: at, End: lineStart},
				Y:       ed.y,
				Deleted: ed.old,
			},
			buffer.CharChange{
				Cursors: buffer.Cursors{Start: lineStart, End: pos(len(ed.new), ed.y)},
				Y:       ed.y,
				Added:   ed.new,
			})
		at = pos(len(ed.new), ed.y)
	}
	if len(diffs) == 0 {
		return nil
	}
	last := diffs[len(diffs)-1].(buffer.CharChange)
	last.End = end
	diffs[len(diffs)-1] = last
	return e.commit(kind, diffs...)
}

// blockLines returns the lines a selection-wide toggle acts on: every line of
// the selection except empty ones, and except the last one when the cursor
// sits at its column 0.
func (e *Editor) blockLines() []int {
	start, end, ok := e.selection.Range(e.cursor)
	if !ok {
		return nil
	}
	var ys []int
	for y := start.Line; y <= end.Line && y < e.doc.LineCount(); y++ {
		if y == end.Line && e.cursor.Line == end.Line && e.cursor.Col == 0 && y > start.Line {
			continue
		}
		if e.doc.Line(y) == "" {
			continue
		}
		ys = append(ys, y)
	}
	return ys
}

// ToggleCheckbox cycles the checkbox state of the cursor line, or of every
// selected line.
func (e *Editor) ToggleCheckbox() {
	e.clipboard.BreakStreak()
	if e.selection.IsActive() {
		e.toggleCheckboxSelection()
		return
	}

	c := e.cursor
	line := e.doc.Line(c.Line)
	from := CheckboxState(line)
	to := from.Next()
	updated := WithState(line, to)
	delta := len(to.Prefix()) - len(from.Prefix())
	ws := utils.LeadingWhitespaceLen(line)

	x := c.Col
	switch {
	case delta > 0 && x < ws:
		x = ws + delta
	case delta > 0:
		x += delta
	case delta < 0:
		x = max(x+delta, min(x, ws), 0)
	}
	x = min(x, len(updated))

	if err := e.replaceLines(history.KindToggleCheckbox, []lineEdit{{c.Line, line, updated}}, pos(x, c.Line)); err != nil {
		e.report(err)
		return
	}
	e.SetStatus(fmt.Sprintf("Toggled to %v.", to))
}

func (e *Editor) toggleCheckboxSelection() {
	ys := e.blockLines()
	if len(ys) == 0 {
		return
	}
	target := StateListItem
	first := CheckboxState(e.doc.Line(ys[0]))
	uniform := true
	for _, y := range ys[1:] {
		if CheckboxState(e.doc.Line(y)) != first {
			uniform = false
			break
		}
	}
	if uniform {
		target = first.Next()
	}

	edits := make([]lineEdit, 0, len(ys))
	for _, y := range ys {
		line := e.doc.Line(y)
		edits = append(edits, lineEdit{y, line, WithState(line, target)})
	}
	if err := e.replaceLines(history.KindToggleCheckbox, edits, e.cursor); err != nil {
		e.report(err)
		return
	}
	logger.Debugf("Editor: checkbox on %d selected lines -> %v", len(ys), target)
	e.SetStatus(fmt.Sprintf("Toggled selection to %v.", target))
}

// ToggleComment adds or removes "# " after the indentation of the cursor
// line, or of every selected line.
func (e *Editor) ToggleComment() {
	e.clipboard.BreakStreak()
	if e.selection.IsActive() {
		e.toggleCommentSelection()
		return
	}

	c := e.cursor
	line := e.doc.Line(c.Line)
	if line == "" {
		return
	}
	comment := !IsCommented(line)
	updated := toggleComment(line, comment)
	ws := utils.LeadingWhitespaceLen(line)
	x := c.Col
	if x >= ws {
		x = max(x+len(updated)-len(line), ws)
	}
	if err := e.replaceLines(history.KindToggleComment, []lineEdit{{c.Line, line, updated}}, pos(x, c.Line)); err != nil {
		e.report(err)
		return
	}
	if comment {
		e.SetStatus("Commented line.")
	} else {
		e.SetStatus("Uncommented line.")
	}
}

func (e *Editor) toggleCommentSelection() {
	ys := e.blockLines()
	if len(ys) == 0 {
		return
	}
	comment := false
	for _, y := range ys {
		if !IsCommented(e.doc.Line(y)) {
			comment = true
			break
		}
	}
	edits := make([]lineEdit, 0, len(ys))
	for _, y := range ys {
		line := e.doc.Line(y)
		edits = append(edits, lineEdit{y, line, toggleComment(line, comment)})
	}
	if err := e.replaceLines(history.KindToggleComment, edits, e.cursor); err != nil {
		e.report(err)
		return
	}
	e.SetStatus("Toggled comment on selection.")
}

const indentUnit = "  "

// outdented returns line without up to two leading spaces.
func outdented(line string) string {
	switch {
	case strings.HasPrefix(line, indentUnit):
		return line[len(indentUnit):]
	case strings.HasPrefix(line, " "):
		return line[1:]
	}
	return line
}

// Indent prefixes the cursor line, or every selected line, with two spaces.
func (e *Editor) Indent() {
	e.clipboard.BreakStreak()
	if e.selection.IsActive() {
		e.shiftSelection(func(line string) string { return indentUnit + line })
		return
	}
	c := e.cursor
	line := e.doc.Line(c.Line)
	e.report(e.replaceLines(history.KindIndent, []lineEdit{{c.Line, line, indentUnit + line}}, pos(c.Col+len(indentUnit), c.Line)))
}

// Outdent removes up to two leading spaces from the cursor line, or from
// every selected line.
func (e *Editor) Outdent() {
	e.clipboard.BreakStreak()
	if e.selection.IsActive() {
		e.shiftSelection(outdented)
		return
	}
	c := e.cursor
	line := e.doc.Line(c.Line)
	updated := outdented(line)
	if updated == line {
		return
	}
	x := max(c.Col-(len(line)-len(updated)), 0)
	e.report(e.replaceLines(history.KindOutdent, []lineEdit{{c.Line, line, updated}}, pos(x, c.Line)))
}

// shiftSelection rewrites the indentation of every selected line and moves
// the cursor and marker with their lines' text.
func (e *Editor) shiftSelection(shift func(string) string) {
	start, end, _ := e.selection.Range(e.cursor)
	endY := end.Line
	if end.Col == 0 && endY > start.Line {
		endY--
	}

	delta := map[int]int{}
	var edits []lineEdit
	for y := start.Line; y <= endY && y < e.doc.LineCount(); y++ {
		line := e.doc.Line(y)
		if line == "" {
			continue
		}
		updated := shift(line)
		delta[y] = len(updated) - len(line)
		edits = append(edits, lineEdit{y, line, updated})
	}

	marker, _ := e.selection.Marker()
	newMarker := pos(max(marker.Col+delta[marker.Line], 0), marker.Line)
	newCursor := pos(max(e.cursor.Col+delta[e.cursor.Line], 0), e.cursor.Line)

	e.history.Break()
	if err := e.replaceLines(history.KindOther, edits, newCursor); err != nil {
		e.report(err)
		return
	}
	e.history.ShiftMarker(marker, newMarker)
	e.selection.SetMarker(e.clamp(newMarker))
	logger.Debugf("Editor: shifted %d selected lines, marker %v -> %v", len(edits), marker, newMarker)
}

// MoveLineUp swaps the cursor line with the one above. The cursor moves with it.
func (e *Editor) MoveLineUp() {
	e.clipboard.BreakStreak()
	c := e.cursor
	if c.Line == 0 {
		e.SetStatus("Cannot move line up further.")
		return
	}
	e.report(e.commit(history.KindLineMovement, buffer.LineSwap{
		Cursors: buffer.Cursors{Start: c, End: pos(c.Col, c.Line-1)},
		Y1:      c.Line - 1,
		Y2:      c.Line,
	}))
}

// MoveLineDown swaps the cursor line with the one below. The cursor moves with it.
func (e *Editor) MoveLineDown() {
	e.clipboard.BreakStreak()
	c := e.cursor
	if c.Line+1 >= e.doc.LineCount() {
		e.SetStatus("Cannot move line down further.")
		return
	}
	e.report(e.commit(history.KindLineMovement, buffer.LineSwap{
		Cursors: buffer.Cursors{Start: c, End: pos(c.Col, c.Line+1)},
		Y1:      c.Line,
		Y2:      c.Line + 1,
	}))
}

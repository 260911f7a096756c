// internal/core/commands.go
package core

import (
	"strings"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/core/history"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/utils"
)

const taskCommand = "/task"

// lineCommands expand a line consisting of the command into text.
var lineCommands = map[string]func(e *Editor) string{
	"/today": func(e *Editor) string { return e.now().Format("2006-01-02") },
	"/now":   func(e *Editor) string { return e.now().Format("2006-01-02 15:04") },
}

// runLineCommand replaces line y, whose text before the newline was line,
// with the command's expansion. Leading whitespace is kept. The cursor stays
// on the new line.
func (e *Editor) runLineCommand(y int, line string) {
	cmd := strings.TrimSpace(line)
	expand, ok := lineCommands[cmd]
	if !ok {
		return
	}
	ws := utils.LeadingWhitespaceLen(line)
	text := expand(e)
	c := e.cursor
	logger.Debugf("Editor: command %s on line %d -> %q", cmd, y, text)
	e.report(e.commit(history.KindOther, buffer.CharChange{
		Cursors: buffer.Cursors{Start: c, End: c},
		X:       ws,
		Y:       y,
		Deleted: line[ws:],
		Added:   text,
	}))
}

// runTaskCommand removes the /task text and enters task selection mode.
func (e *Editor) runTaskCommand() {
	c := e.cursor
	line := e.doc.Line(c.Line)
	ws := utils.LeadingWhitespaceLen(line)
	if err := e.commit(history.KindOther, buffer.CharChange{
		Cursors: buffer.Cursors{Start: c, End: pos(ws, c.Line)},
		X:       ws,
		Y:       c.Line,
		Deleted: line[ws:],
	}); err != nil {
		e.report(err)
		return
	}
	e.EnterTaskMode()
}

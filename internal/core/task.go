// internal/core/task.go
package core

import (
	"fmt"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/core/history"
	"github.com/bethropolis/dmacs/internal/core/task"
	"github.com/bethropolis/dmacs/internal/logger"
)

// EnterTaskMode lists the unchecked tasks below the cursor line. The mode is
// entered even when there are none.
func (e *Editor) EnterTaskMode() {
	e.tasks.Reset()
	e.tasks.SetVisibleRows(taskRows(e))
	e.tasks.Scan(e.doc, e.cursor.Line)
	e.setMode(ModeTaskSelection)
	if n := e.tasks.Len(); n > 0 {
		e.SetStatus(fmt.Sprintf("Found %d unchecked tasks. Use Up/Down to select, SPACE to move, ESC/ENTER to exit.", n))
	} else {
		e.SetStatus("No unchecked tasks found below current line.")
	}
}

// taskRows is the task panel height without its separator. Before the first
// resize it assumes a panel of seven rows.
func taskRows(e *Editor) int {
	if e.viewport.ScreenRows == 0 {
		return 6
	}
	return task.VisibleRows(e.viewport.ScreenRows)
}

// rescanTasks refreshes the task list and leaves task mode with msg once it is empty.
func (e *Editor) rescanTasks(msg string) {
	e.tasks.Scan(e.doc, e.cursor.Line)
	if e.tasks.Len() > 0 {
		return
	}
	e.tasks.Reset()
	e.setMode(ModeNormal)
	e.SetStatus(msg)
}

// ExitTaskMode leaves task selection mode.
func (e *Editor) ExitTaskMode() {
	e.tasks.Reset()
	e.setMode(ModeNormal)
	e.SetStatus("Exited task selection mode.")
}

// TaskUp selects the previous task.
func (e *Editor) TaskUp() { e.tasks.Up() }

// TaskDown selects the next task.
func (e *Editor) TaskDown() { e.tasks.Down() }

// TaskFilter appends r to the task filter.
func (e *Editor) TaskFilter(r rune) {
	e.tasks.Filter(e.tasks.Query() + string(r))
}

// TaskFilterBackspace drops the last rune of the task filter.
func (e *Editor) TaskFilterBackspace() {
	q := []rune(e.tasks.Query())
	if len(q) == 0 {
		return
	}
	e.tasks.Filter(string(q[:len(q)-1]))
}

// MoveSelectedTask moves the selected task above the cursor line in one
// transaction. The cursor keeps to its line. Task mode ends once no tasks
// remain.
func (e *Editor) MoveSelectedTask() {
	item, ok := e.tasks.Selected()
	if !ok {
		return
	}
	c := e.cursor
	ty := item.Line
	if ty <= c.Line || e.doc.Line(ty) != item.Text {
		logger.Warnf("Editor: stale task %q at line %d", item.Text, ty)
		e.tasks.Scan(e.doc, c.Line)
		return
	}
	above := e.doc.Line(ty - 1)
	after := pos(c.Col, c.Line+1)

	e.history.Break()
	err := e.commit(history.KindOther,
		buffer.DeleteRange{
			Cursors: buffer.Cursors{Start: c, End: c},
			StartX:  len(above),
			StartY:  ty - 1,
			EndX:    len(item.Text),
			EndY:    ty,
			Content: []string{"", item.Text},
		},
		buffer.CharChange{
			Cursors: buffer.Cursors{Start: c, End: pos(len(item.Text), c.Line)},
			Y:       c.Line,
			Added:   item.Text,
		},
		buffer.NewlineInsertion{
			Cursors: buffer.Cursors{Start: pos(len(item.Text), c.Line), End: after},
			X:       len(item.Text),
			Y:       c.Line,
		},
	)
	if err != nil {
		e.report(err)
		return
	}
	e.history.Break()
	logger.Debugf("Editor: moved task from line %d to %d", ty, c.Line)

	e.rescanTasks("All tasks moved. Exiting task selection mode.")
}

// CommentSelectedTask toggles a comment on the selected task in place.
func (e *Editor) CommentSelectedTask() {
	item, ok := e.tasks.Selected()
	if !ok {
		return
	}
	line := e.doc.Line(item.Line)
	updated := toggleComment(line, !IsCommented(line))
	if err := e.replaceLines(history.KindToggleComment, []lineEdit{{item.Line, line, updated}}, e.cursor); err != nil {
		e.report(err)
		return
	}
	e.rescanTasks("No unchecked tasks left. Exiting task selection mode.")
}

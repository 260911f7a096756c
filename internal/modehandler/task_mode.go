package modehandler

import (
	"github.com/bethropolis/dmacs/internal/input"
)

// handleActionTask handles actions in task selection mode. Space moves the
// selected task, '#' comments it, other printable runes filter the list.
func (mh *ModeHandler) handleActionTask(actionEvent input.ActionEvent) bool {
	ed := mh.editor
	switch actionEvent.Key {
	case "esc", "enter":
		ed.ExitTaskMode()
		return true
	case "up":
		ed.TaskUp()
		return true
	case "down":
		ed.TaskDown()
		return true
	case "backspace":
		ed.TaskFilterBackspace()
		return true
	}
	if actionEvent.Action != input.ActionInsertRune {
		return false
	}
	switch r := actionEvent.Rune; r {
	case ' ':
		ed.MoveSelectedTask()
	case '#':
		ed.CommentSelectedTask()
	default:
		ed.TaskFilter(r)
	}
	return true
}

package modehandler

import (
	"github.com/bethropolis/dmacs/internal/input"
)

// handleActionSearch handles actions in incremental search mode. Ctrl-S and
// Ctrl-N step forward, Ctrl-R and Ctrl-P step back; Esc, Enter and Ctrl-G leave.
func (mh *ModeHandler) handleActionSearch(actionEvent input.ActionEvent) bool {
	ed := mh.editor
	switch actionEvent.Key {
	case "esc", "enter", "ctrl-g":
		ed.ExitSearch()
		return true
	case "ctrl-s", "ctrl-n":
		ed.SearchNext()
		return true
	case "ctrl-r", "ctrl-p":
		ed.SearchPrev()
		return true
	case "backspace":
		ed.SearchBackspace()
		return true
	}
	if actionEvent.Action == input.ActionInsertRune {
		ed.SearchAppend(actionEvent.Rune)
		return true
	}
	return false
}

// handleActionFuzzy handles actions in the fuzzy line picker.
func (mh *ModeHandler) handleActionFuzzy(actionEvent input.ActionEvent) bool {
	ed := mh.editor
	switch actionEvent.Key {
	case "esc", "ctrl-g":
		ed.ExitFuzzySearch()
		return true
	case "enter":
		ed.FuzzyAccept()
		return true
	case "up", "ctrl-p":
		ed.FuzzyUp()
		return true
	case "down", "ctrl-n":
		ed.FuzzyDown()
		return true
	case "backspace", "delete":
		ed.FuzzyBackspace()
		return true
	}
	if actionEvent.Action == input.ActionInsertRune {
		ed.FuzzyAppend(actionEvent.Rune)
		return true
	}
	return false
}

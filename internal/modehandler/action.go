package modehandler

import (
	"github.com/bethropolis/dmacs/internal/input"
	"github.com/bethropolis/dmacs/internal/logger"
)

// executeAction handles actions when in normal mode.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	ed := mh.editor

	switch actionEvent.Action {
	// Quit/Save actions
	case input.ActionQuit:
		mh.saveAndQuit()
	case input.ActionSave:
		if err := ed.Save(); err != nil {
			logger.Warnf("ModeHandler: save failed: %v", err)
		}
	case input.ActionExitMode:
		// nothing to leave in normal mode

	// Movement actions
	case input.ActionMoveUp:
		ed.MoveUp()
	case input.ActionMoveDown:
		ed.MoveDown()
	case input.ActionMoveLeft:
		ed.MoveLeft()
	case input.ActionMoveRight:
		ed.MoveRight()
	case input.ActionMoveLineStart:
		ed.LineStart()
	case input.ActionMoveLineEnd:
		ed.LineEnd()
	case input.ActionMoveWordLeft:
		ed.WordLeft()
	case input.ActionMoveWordRight:
		ed.WordRight()
	case input.ActionMovePageUp:
		ed.PageUp()
	case input.ActionMovePageDown:
		ed.PageDown()
	case input.ActionMoveFileStart:
		ed.FileStart()
	case input.ActionMoveFileEnd:
		ed.FileEnd()
	case input.ActionNextDelimiter:
		ed.NextDelimiter()
	case input.ActionPrevDelimiter:
		ed.PrevDelimiter()

	// Text Modification actions
	case input.ActionInsertRune:
		ed.InsertChar(actionEvent.Rune)
	case input.ActionInsertNewLine:
		ed.Newline()
	case input.ActionDeleteCharBackward:
		ed.Backspace()
	case input.ActionDeleteCharForward:
		ed.DeleteForward()
	case input.ActionHungryDelete:
		ed.HungryDelete()
	case input.ActionKillLine:
		ed.KillLine()
	case input.ActionYank:
		ed.Yank()
	case input.ActionUndo:
		ed.Undo()
	case input.ActionRedo:
		ed.Redo()
	case input.ActionIndent:
		ed.Indent()
	case input.ActionOutdent:
		ed.Outdent()
	case input.ActionToggleComment:
		ed.ToggleComment()
	case input.ActionToggleCheckbox:
		ed.ToggleCheckbox()
	case input.ActionMoveLineUp:
		ed.MoveLineUp()
	case input.ActionMoveLineDown:
		ed.MoveLineDown()

	// Selection
	case input.ActionSetMarker:
		ed.SetMarker()
	case input.ActionClearMarker:
		ed.ClearMarker()
	case input.ActionCutSelection:
		ed.CutSelection()
	case input.ActionCopySelection:
		ed.CopySelection()

	// Modes
	case input.ActionEnterSearch:
		ed.EnterSearch()
	case input.ActionEnterFuzzySearch:
		ed.EnterFuzzySearch()
	case input.ActionEnterTaskMode:
		ed.EnterTaskMode()

	default:
		if actionEvent.Key != "" {
			logger.DebugTagf("input", "ModeHandler: unbound key %s", actionEvent.Key)
		}
		return false
	}
	return true
}

// saveAndQuit saves a named document and quits unless no-exit-on-save is
// set. An unnamed document quits without saving. A failed save keeps the
// editor open with the error in the status bar.
func (mh *ModeHandler) saveAndQuit() {
	doc := mh.editor.Document()
	if doc.FilePath() == "" {
		mh.quit(false)
		return
	}
	if err := mh.editor.Save(); err != nil {
		logger.Warnf("ModeHandler: not quitting, save failed: %v", err)
		return
	}
	if mh.noExitOnSave {
		return
	}
	mh.quit(true)
}

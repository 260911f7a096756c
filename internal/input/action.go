// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit                  // Save, then quit
	ActionSave
	ActionExitMode // Esc

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMoveLineStart
	ActionMoveLineEnd
	ActionMoveWordLeft
	ActionMoveWordRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveFileStart
	ActionMoveFileEnd
	ActionNextDelimiter
	ActionPrevDelimiter

	// --- Text Manipulation ---
	ActionInsertRune // Requires Rune argument
	ActionInsertNewLine
	ActionDeleteCharBackward // Backspace key
	ActionDeleteCharForward  // Delete key
	ActionHungryDelete
	ActionKillLine
	ActionYank
	ActionUndo
	ActionRedo
	ActionIndent
	ActionOutdent
	ActionToggleComment
	ActionToggleCheckbox
	ActionMoveLineUp
	ActionMoveLineDown

	// --- Selection ---
	ActionSetMarker
	ActionClearMarker
	ActionCutSelection
	ActionCopySelection

	// --- Modes ---
	ActionEnterSearch
	ActionEnterFuzzySearch
	ActionEnterTaskMode

	actionCount
)

// actionNames are the names used for actions in keymap.toml.
var actionNames = [actionCount]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionSave:               "save",
	ActionExitMode:           "exit_mode",
	ActionMoveUp:             "move_up",
	ActionMoveDown:           "move_down",
	ActionMoveLeft:           "move_left",
	ActionMoveRight:          "move_right",
	ActionMoveLineStart:      "line_start",
	ActionMoveLineEnd:        "line_end",
	ActionMoveWordLeft:       "word_left",
	ActionMoveWordRight:      "word_right",
	ActionMovePageUp:         "page_up",
	ActionMovePageDown:       "page_down",
	ActionMoveFileStart:      "file_start",
	ActionMoveFileEnd:        "file_end",
	ActionNextDelimiter:      "next_delimiter",
	ActionPrevDelimiter:      "prev_delimiter",
	ActionInsertRune:         "insert_char",
	ActionInsertNewLine:      "newline",
	ActionDeleteCharBackward: "delete_char",
	ActionDeleteCharForward:  "delete_forward_char",
	ActionHungryDelete:       "delete_word",
	ActionKillLine:           "kill_line",
	ActionYank:               "yank",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionIndent:             "indent",
	ActionOutdent:            "outdent",
	ActionToggleComment:      "toggle_comment",
	ActionToggleCheckbox:     "toggle_checkbox",
	ActionMoveLineUp:         "move_line_up",
	ActionMoveLineDown:       "move_line_down",
	ActionSetMarker:          "set_marker",
	ActionClearMarker:        "clear_marker",
	ActionCutSelection:       "cut_selection",
	ActionCopySelection:      "copy_selection",
	ActionEnterSearch:        "search",
	ActionEnterFuzzySearch:   "fuzzy_search",
	ActionEnterTaskMode:      "task_mode",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction looks an action up by its keymap name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name && Action(a) != ActionUnknown && Action(a) != ActionInsertRune {
			return Action(a), true
		}
	}
	return ActionUnknown, false
}

// ActionEvent represents a decoded input event resulting in an action.
// It carries the rune to insert for ActionInsertRune, and the key string
// the event was decoded from.
type ActionEvent struct {
	Action Action
	Rune   rune
	Key    string
}

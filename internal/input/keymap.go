// internal/input/keymap.go
package input

import (
	"strings"
	"unicode"

	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps key strings such as "ctrl-x", "alt-up" or "shift-tab" to actions.
type Keymap map[string]Action

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		// File
		"alt-s":  ActionSave,
		"ctrl-x": ActionQuit,

		// Cursor movement
		"up":       ActionMoveUp,
		"down":     ActionMoveDown,
		"left":     ActionMoveLeft,
		"right":    ActionMoveRight,
		"ctrl-a":   ActionMoveLineStart,
		"ctrl-e":   ActionMoveLineEnd,
		"home":     ActionMoveLineStart,
		"end":      ActionMoveLineEnd,
		"alt-f":    ActionMoveWordRight,
		"alt-b":    ActionMoveWordLeft,
		"ctrl-b":   ActionMoveWordLeft,
		"alt-up":   ActionMoveLineUp,
		"alt-down": ActionMoveLineDown,
		"ctrl-v":   ActionMovePageDown,
		"alt-v":    ActionMovePageUp,
		"pagedown": ActionMovePageDown,
		"pageup":   ActionMovePageUp,
		"ctrl-n":   ActionNextDelimiter,
		"ctrl-p":   ActionPrevDelimiter,
		"alt->":    ActionMoveFileEnd,
		"alt-<":    ActionMoveFileStart,

		// Text editing
		"backspace":     ActionDeleteCharBackward,
		"delete":        ActionDeleteCharForward,
		"ctrl-d":        ActionDeleteCharForward,
		"alt-backspace": ActionHungryDelete,
		"ctrl-k":        ActionKillLine,
		"ctrl-y":        ActionYank,
		"ctrl-_":        ActionUndo,
		"alt-_":         ActionRedo,
		"tab":           ActionIndent,
		"shift-tab":     ActionOutdent,
		"alt-/":         ActionToggleComment,
		"ctrl-t":        ActionToggleCheckbox,
		"enter":         ActionInsertNewLine,

		// Selection
		"ctrl-space": ActionSetMarker,
		"ctrl-w":     ActionCutSelection,
		"alt-w":      ActionCopySelection,
		"ctrl-g":     ActionClearMarker,

		// Search
		"ctrl-s": ActionEnterSearch,
		"ctrl-f": ActionEnterFuzzySearch,

		"esc": ActionExitMode,
	}
}

// Merge applies user bindings over km. Unknown action names are logged and
// skipped; the name "unbind" removes a default binding.
func (km Keymap) Merge(bindings map[string]string) {
	for key, name := range bindings {
		key = strings.ToLower(strings.TrimSpace(key))
		if name == "unbind" {
			delete(km, key)
			continue
		}
		action, ok := ParseAction(name)
		if !ok {
			logger.Warnf("Keymap: unknown action %q for key %q, ignoring", name, key)
			continue
		}
		logger.DebugTagf("keymap", "Keymap: %s -> %s", key, action)
		km[key] = action
	}
}

// keyNames maps special tcell keys to their key strings. The control codes
// that share a value with a Ctrl-letter (Backspace, Tab, Enter) are listed
// here so they win over the generic ctrl- naming.
var keyNames = map[tcell.Key]string{
	tcell.KeyUp:             "up",
	tcell.KeyDown:           "down",
	tcell.KeyLeft:           "left",
	tcell.KeyRight:          "right",
	tcell.KeyHome:           "home",
	tcell.KeyEnd:            "end",
	tcell.KeyPgUp:           "pageup",
	tcell.KeyPgDn:           "pagedown",
	tcell.KeyBackspace:      "backspace",
	tcell.KeyBackspace2:     "backspace",
	tcell.KeyDelete:         "delete",
	tcell.KeyTab:            "tab",
	tcell.KeyBacktab:        "shift-tab",
	tcell.KeyEnter:          "enter",
	tcell.KeyEscape:         "esc",
	tcell.KeyCtrlSpace:      "ctrl-space",
	tcell.KeyCtrlUnderscore: "ctrl-_",
}

// KeyString names a key event the way keymap.toml does. Plain printable
// runes yield "".
func KeyString(ev *tcell.EventKey) string {
	key, mod, r := ev.Key(), ev.Modifiers(), ev.Rune()
	prefix := ""
	if mod&tcell.ModAlt != 0 {
		prefix = "alt-"
	}

	if key == tcell.KeyRune {
		switch {
		case r == ' ' && mod&tcell.ModCtrl != 0:
			return prefix + "ctrl-space"
		case prefix != "":
			return prefix + string(unicode.ToLower(r))
		}
		return ""
	}
	if name, ok := keyNames[key]; ok {
		if name == "tab" && mod&tcell.ModShift != 0 {
			return prefix + "shift-tab"
		}
		return prefix + name
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return prefix + "ctrl-" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	return ""
}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap Keymap
}

// NewInputProcessor creates a processor with the default bindings and the
// user's bindings on top.
func NewInputProcessor(user map[string]string) *InputProcessor {
	km := DefaultKeymap()
	km.Merge(user)
	return &InputProcessor{keymap: km}
}

// Keymap returns the active bindings.
func (p *InputProcessor) Keymap() Keymap { return p.keymap }

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// INPUT MODE IS NOT HANDLED HERE - the mode handler decides based on mode + event.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	ks := KeyString(ev)
	if ks != "" {
		if action, ok := p.keymap[ks]; ok {
			return ActionEvent{Action: action, Key: ks}
		}
		return ActionEvent{Action: ActionUnknown, Key: ks}
	}
	if ev.Key() == tcell.KeyRune && !unicode.IsControl(ev.Rune()) {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	return ActionEvent{Action: ActionUnknown}
}

package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl), "ctrl-x"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModAlt), "alt-s"},
		{"alt symbol", tcell.NewEventKey(tcell.KeyRune, '<', tcell.ModAlt), "alt-<"},
		{"alt arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModAlt), "alt-up"},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "backspace"},
		{"alt backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModAlt), "alt-backspace"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "tab"},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), "shift-tab"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{"ctrl underscore", tcell.NewEventKey(tcell.KeyCtrlUnderscore, 0, tcell.ModCtrl), "ctrl-_"},
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyString(tt.ev); got != tt.want {
				t.Errorf("KeyString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor(nil)

	if got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModCtrl)); got.Action != ActionKillLine {
		t.Errorf("ctrl-k -> %v, want kill_line", got.Action)
	}
	if got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)); got.Action != ActionInsertRune || got.Rune != 'é' {
		t.Errorf("rune -> %+v, want insert of é", got)
	}
	if got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModAlt)); got.Action != ActionUnknown || got.Key != "alt-q" {
		t.Errorf("alt-q -> %+v, want unknown with key", got)
	}
}

func TestMergeBindings(t *testing.T) {
	p := NewInputProcessor(map[string]string{
		"Alt-Q":  "quit",
		"ctrl-f": "word_right",
		"ctrl-t": "no_such_action",
		"ctrl-n": "unbind",
	})
	km := p.Keymap()
	if km["alt-q"] != ActionQuit {
		t.Errorf("alt-q = %v, want quit", km["alt-q"])
	}
	if km["ctrl-f"] != ActionMoveWordRight {
		t.Errorf("ctrl-f = %v, want word_right", km["ctrl-f"])
	}
	if km["ctrl-t"] != ActionToggleCheckbox {
		t.Errorf("unknown action replaced ctrl-t: %v", km["ctrl-t"])
	}
	if _, ok := km["ctrl-n"]; ok {
		t.Error("ctrl-n should be unbound")
	}
	// the defaults are untouched
	if DefaultKeymap()["ctrl-f"] != ActionEnterFuzzySearch {
		t.Error("DefaultKeymap changed")
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionQuit; a < actionCount; a++ {
		if a == ActionInsertRune {
			if _, ok := ParseAction(a.String()); ok {
				t.Errorf("insert_char should not be bindable")
			}
			continue
		}
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
}

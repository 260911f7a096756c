package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGetStyleFallback(t *testing.T) {
	th := Terminal()
	if got := th.GetStyle(StyleStatusBarFile); got != tcell.StyleDefault.Bold(true) {
		t.Errorf("StatusBar.File = %v", got)
	}
	delete(th.Styles, StylePanelSelected)
	if got := th.GetStyle(StylePanelSelected); got != th.Styles[StylePanel] {
		t.Errorf("Panel.Selected should fall back to Panel")
	}
	if got := th.GetStyle("Nope"); got != th.Styles[StyleDefault] {
		t.Errorf("unknown style should fall back to Default")
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	content := `
[styles.Default]
fg = "#c5cdd9"

[styles.Selection]
bg = "navy"

[styles.Task]
fg = "nocolor"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile: %v", err)
	}
	if loaded.Name != "theme" {
		t.Errorf("Name = %q, want file name", loaded.Name)
	}
	base := tcell.StyleDefault.Foreground(tcell.NewHexColor(0xc5cdd9))
	if got := loaded.Styles[StyleSelection]; got != base.Background(tcell.ColorNavy) {
		t.Errorf("Selection = %v", got)
	}
	if _, ok := loaded.Styles[StyleTask]; ok {
		t.Error("style with a bad color should be skipped")
	}

	th := Terminal()
	th.Merge(loaded)
	if th.GetStyle(StyleSelection) != loaded.Styles[StyleSelection] {
		t.Error("Merge did not apply Selection")
	}
	if th.GetStyle(StyleTask) != tcell.StyleDefault.Bold(true) {
		t.Error("Merge touched Task")
	}
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#ff0000", tcell.NewHexColor(0xff0000), false},
		{" Red ", tcell.ColorRed, false},
		{"reset", tcell.ColorReset, false},
		{"default", tcell.ColorDefault, false},
		{"#fff", tcell.ColorDefault, true},
		{"chartreuse-ish", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColorString(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("color = %v, want %v", got, tt.want)
			}
		})
	}
}

package statusbar

import (
	"testing"

	"github.com/bethropolis/dmacs/internal/theme"
	"github.com/gdamore/tcell/v2"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{}, "[No Name]"},
		{Info{Dirty: true}, "[No Name]*"},
		{Info{FilePath: "/home/me/notes/todo.md"}, "todo.md"},
		{Info{FilePath: "todo.md", Dirty: true}, "todo.md*"},
	}
	for _, tt := range tests {
		if got := Title(tt.info); got != tt.want {
			t.Errorf("Title(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
	if got := LineCount(Info{LineCount: 3}); got != " - 3 lines" {
		t.Errorf("LineCount = %q", got)
	}
}

func rowText(s tcell.SimulationScreen, y, width int) string {
	cells, w, _ := s.GetContents()
	var out []rune
	for x := 0; x < width; x++ {
		out = append(out, cells[y*w+x].Runes...)
	}
	return string(out)
}

func TestDraw(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer s.Fini()
	s.SetSize(40, 5)

	sb := New(theme.Terminal())
	sb.Draw(s, 40, Info{FilePath: "a.txt", Dirty: true, LineCount: 2, Message: "Saved."})
	s.Show()

	want := "a.txt* - 2 lines                  Saved."
	if got := rowText(s, 0, 40); got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
	if r, _, _, _ := s.GetContent(10, 1); r != tcell.RuneHLine {
		t.Errorf("row 1 = %q, want a rule", r)
	}
	if _, _, style, _ := s.GetContent(0, 0); style != tcell.StyleDefault.Bold(true) {
		t.Errorf("file name style = %v, want bold", style)
	}
}

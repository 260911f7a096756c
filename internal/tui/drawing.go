// internal/tui/drawing.go
package tui

import (
	"fmt"
	"strings"

	"github.com/bethropolis/dmacs/internal/core"
	"github.com/bethropolis/dmacs/internal/core/scroll"
	"github.com/bethropolis/dmacs/internal/statusbar"
	"github.com/bethropolis/dmacs/internal/theme"
	"github.com/bethropolis/dmacs/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const delimiterLine = "---"

// lineStyleName picks the style of a whole line: "#" lines and checked tasks
// are dim, unchecked tasks bold.
func lineStyleName(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, "#"), strings.HasPrefix(trimmed, "- [x]"):
		return theme.StyleDim
	case strings.HasPrefix(trimmed, "- [ ]"):
		return theme.StyleTask
	}
	return theme.StyleDefault
}

// Draw renders the editor: status bar, text, and the task or fuzzy panel
// when one is open. The terminal cursor follows the editor cursor.
func Draw(t *TUI, ed *core.Editor) {
	width, height := t.Size()
	t.screen.Clear()
	if width <= 0 || height <= 0 {
		return
	}

	doc := ed.Document()
	t.statusBar.Draw(t.screen, width, statusbar.Info{
		FilePath:  doc.FilePath(),
		Dirty:     doc.IsDirty(),
		LineCount: doc.LineCount(),
		Message:   ed.Status(),
	})

	vp := ed.Viewport()
	reserved := ed.ReservedRows()
	top := scroll.StatusBarHeight
	rows := min(vp.TextHeight(reserved), height-top)
	for screenY := 0; screenY < rows; screenY++ {
		y := vp.RowOffset + screenY
		if y >= doc.LineCount() {
			break
		}
		drawLine(t, ed, y, top+screenY, width)
	}

	panelTop := height - reserved
	switch ed.Mode() {
	case core.ModeTaskSelection:
		drawTaskPanel(t, ed, panelTop, width, height)
	case core.ModeFuzzySearch:
		drawFuzzyPanel(t, ed, panelTop, width, height)
	}

	drawCursor(t, ed, top, rows, width)
}

// drawLine draws document line y on screen row row, starting at the
// viewport's column offset.
func drawLine(t *TUI, ed *core.Editor, y, row, width int) {
	line := ed.Document().Line(y)
	if line == delimiterLine {
		drawRule(t, row, width)
		return
	}

	base := t.theme.GetStyle(lineStyleName(line))
	selected := t.theme.GetStyle(theme.StyleSelection)
	match := t.theme.GetStyle(theme.StyleSearchMatch)
	searching := ed.Mode() == core.ModeSearch
	colOffset := ed.Viewport().ColOffset

	col := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		from, _ := gr.Positions()
		runes := gr.Runes()
		clusterWidth := 0
		for _, r := range runes {
			clusterWidth += scroll.RuneWidth(r, col+clusterWidth)
		}
		screenX := col - colOffset
		col += clusterWidth
		if screenX < 0 {
			continue
		}
		if screenX+clusterWidth > width {
			break
		}

		style := base
		if searching && ed.Find().Covers(y, from) {
			style = match
		}
		if ed.InSelection(y, from) {
			style = selected
		}

		if runes[0] == '\t' {
			for i := 0; i < clusterWidth; i++ {
				t.screen.SetContent(screenX+i, row, ' ', nil, style)
			}
			continue
		}
		t.screen.SetContent(screenX, row, runes[0], runes[1:], style)
	}

	if selectionCoversEOL(ed, y, line) {
		if x := col - colOffset; x >= 0 && x < width {
			t.screen.SetContent(x, row, ' ', nil, selected)
		}
	}
}

// selectionCoversEOL reports whether the cell after the end of line y is
// drawn as selected: the selection runs past the line, or ends exactly at its end.
func selectionCoversEOL(ed *core.Editor, y int, line string) bool {
	if ed.SelectionReachesEOL(y) {
		return true
	}
	start, end, ok := ed.SelectionRange()
	return ok && y == end.Line && y >= start.Line && end.Col == len(line)
}

// drawRule draws a "---" line as a horizontal rule. The first three cells
// keep the normal style.
func drawRule(t *TUI, row, width int) {
	normal := t.theme.GetStyle(theme.StyleDefault)
	dim := t.theme.GetStyle(theme.StyleDelimiter)
	for x := 0; x < width; x++ {
		style := dim
		if x < len(delimiterLine) {
			style = normal
		}
		t.screen.SetContent(x, row, tcell.RuneHLine, nil, style)
	}
}

func drawSeparator(t *TUI, row, width int) {
	style := t.theme.GetStyle(theme.StylePanelSeparator)
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, row, tcell.RuneHLine, nil, style)
	}
}

// drawPanelRow fills row with text, cut to width.
func drawPanelRow(t *TUI, row, width int, text string, style tcell.Style) {
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, row, ' ', nil, style)
	}
	x := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		runes := gr.Runes()
		t.screen.SetContent(x, row, runes[0], runes[1:], style)
		x += w
	}
}

func drawTaskPanel(t *TUI, ed *core.Editor, top, width, height int) {
	if top < scroll.StatusBarHeight || top >= height {
		return
	}
	drawSeparator(t, top, width)
	tasks := ed.Tasks()
	items := tasks.Items()
	normal := t.theme.GetStyle(theme.StylePanel)
	selected := t.theme.GetStyle(theme.StylePanelSelected)
	for i := tasks.Offset(); i < len(items); i++ {
		row := top + 1 + i - tasks.Offset()
		if row >= height {
			break
		}
		style := normal
		if i == tasks.SelectedIndex() {
			style = selected
		}
		drawPanelRow(t, row, width, items[i].Text, style)
	}
}

func drawFuzzyPanel(t *TUI, ed *core.Editor, top, width, height int) {
	if top < scroll.StatusBarHeight || top >= height {
		return
	}
	drawSeparator(t, top, width)
	fz := ed.Fuzzy()
	matches := fz.Matches()
	listHeight := height - top - 1
	first := fz.Window(listHeight)
	normal := t.theme.GetStyle(theme.StylePanel)
	selected := t.theme.GetStyle(theme.StylePanelSelected)
	for i := first; i < len(matches) && i-first < listHeight; i++ {
		style := normal
		if i == fz.SelectedIndex() {
			style = selected
		}
		m := matches[i]
		drawPanelRow(t, top+1+i-first, width, fmt.Sprintf("%d: %s", m.Line+1, m.Text), style)
	}
}

// drawCursor shows the terminal cursor at the editor cursor, or hides it
// when the cursor is off screen or the fuzzy picker is open.
func drawCursor(t *TUI, ed *core.Editor, top, rows, width int) {
	if ed.Mode() == core.ModeFuzzySearch {
		t.screen.HideCursor()
		return
	}
	c := ed.Cursor()
	x, y := cursorCell(ed, c)
	if x < 0 || x >= width || y < 0 || y >= rows {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, top+y)
}

func cursorCell(ed *core.Editor, c types.Position) (int, int) {
	return ed.Viewport().ScreenPosition(ed.Document().Line(c.Line), c)
}

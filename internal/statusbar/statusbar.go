// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"path/filepath"

	"github.com/bethropolis/dmacs/internal/core/scroll"
	"github.com/bethropolis/dmacs/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Info is what the status bar shows about the editor.
type Info struct {
	FilePath  string
	Dirty     bool
	LineCount int
	Message   string
}

// StatusBar draws the top rows of the screen: file name, dirty mark and line
// count on the left, the status message on the right, and a rule underneath.
type StatusBar struct {
	theme *theme.Theme
}

// New creates a StatusBar drawing with th.
func New(th *theme.Theme) *StatusBar {
	return &StatusBar{theme: th}
}

// Height is the number of rows the bar takes.
func (sb *StatusBar) Height() int { return scroll.StatusBarHeight }

// Title returns the file part of the bar: the base name, or "[No Name]",
// followed by "*" when there are unsaved changes.
func Title(info Info) string {
	name := "[No Name]"
	if info.FilePath != "" {
		name = filepath.Base(info.FilePath)
	}
	if info.Dirty {
		name += "*"
	}
	return name
}

// LineCount returns the " - N lines" part of the bar.
func LineCount(info Info) string {
	return fmt.Sprintf(" - %d lines", info.LineCount)
}

// Draw renders the status bar onto the screen using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width int, info Info) {
	if width <= 0 {
		return
	}
	base := sb.theme.GetStyle(theme.StyleStatusBar)
	for x := 0; x < width; x++ {
		screen.SetContent(x, 0, ' ', nil, base)
	}

	x := drawText(screen, 0, 0, width, Title(info), sb.theme.GetStyle(theme.StyleStatusBarFile))
	drawText(screen, x, 0, width, LineCount(info), base)

	if info.Message != "" {
		start := max(0, width-uniseg.StringWidth(info.Message))
		drawText(screen, start, 0, width, info.Message, base)
	}

	rule := sb.theme.GetStyle(theme.StyleStatusBarRule)
	for x := 0; x < width; x++ {
		screen.SetContent(x, scroll.StatusBarHeight-1, tcell.RuneHLine, nil, rule)
	}
}

// drawText draws text from column x, stopping before maxX, and returns the
// column after the last cluster drawn.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += clusterWidth
	}
	return x
}

// Package scroll converts between byte offsets and display columns and keeps
// the viewport around the cursor.
package scroll

import (
	"unicode/utf8"

	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/types"
	"github.com/mattn/go-runewidth"
)

const (
	TabStop = 4
	// StatusBarHeight is the number of screen rows not available to text.
	StatusBarHeight = 2
	// DefaultMargin is the horizontal scroll margin in display columns.
	DefaultMargin = 10
)

// RuneWidth returns the display width of r when it starts at display column col.
func RuneWidth(r rune, col int) int {
	if r == '\t' {
		return TabStop - col%TabStop
	}
	return runewidth.RuneWidth(r)
}

// DisplayWidth returns the display columns taken by line[:untilByte].
func DisplayWidth(line string, untilByte int) int {
	width := 0
	for i, r := range line {
		if i >= untilByte {
			break
		}
		width += RuneWidth(r, width)
	}
	return width
}

// ByteFromDisplay returns the largest codepoint boundary whose display width
// does not exceed target, together with that width.
func ByteFromDisplay(line string, target int) (int, int) {
	width := 0
	for i, r := range line {
		if width >= target {
			return i, width
		}
		next := width + RuneWidth(r, width)
		if next > target {
			return i, width
		}
		width = next
	}
	return len(line), width
}

// Viewport is the visible window into the document.
type Viewport struct {
	RowOffset  int
	ColOffset  int
	ScreenRows int
	ScreenCols int
	Margin     int
}

// NewViewport creates a viewport with the default horizontal margin.
func NewViewport() *Viewport {
	return &Viewport{Margin: DefaultMargin}
}

// Resize records the terminal size.
func (v *Viewport) Resize(rows, cols int) {
	v.ScreenRows, v.ScreenCols = rows, cols
	logger.DebugTagf("scroll", "Viewport: resized to %dx%d", cols, rows)
}

// TextHeight returns the rows available for text when reserved extra rows
// are taken by an overlay.
func (v *Viewport) TextHeight(reserved int) int {
	h := v.ScreenRows - StatusBarHeight - reserved
	if h < 1 {
		return 1
	}
	return h
}

// PageHeight is the number of lines a page motion moves.
func (v *Viewport) PageHeight() int {
	return max(1, v.ScreenRows-StatusBarHeight)
}

// ScrollToCursor adjusts the offsets by the smallest amount that keeps the
// cursor visible and at least Margin columns away from either horizontal edge.
func (v *Viewport) ScrollToCursor(line string, cursor types.Position, reserved int) {
	height := v.TextHeight(reserved)
	if cursor.Line < v.RowOffset {
		v.RowOffset = cursor.Line
	}
	if cursor.Line >= v.RowOffset+height {
		v.RowOffset = cursor.Line - height + 1
	}

	margin := v.Margin
	if margin > v.ScreenCols/2 {
		margin = v.ScreenCols / 2
	}
	col := DisplayWidth(line, cursor.Col)
	switch {
	case col >= v.ColOffset+v.ScreenCols-margin:
		v.ColOffset = max(0, col-(v.ScreenCols-margin))
	case col < v.ColOffset+margin:
		v.ColOffset = max(0, col-margin)
	}
}

// PageDown moves the top row down a page and returns the new top row.
func (v *Viewport) PageDown(lineCount int) int {
	v.RowOffset = min(v.RowOffset+v.PageHeight(), max(0, lineCount-1))
	return v.RowOffset
}

// PageUp moves the top row up a page and returns the new top row.
func (v *Viewport) PageUp() int {
	v.RowOffset = max(0, v.RowOffset-v.PageHeight())
	return v.RowOffset
}

// ScreenPosition maps a document position onto screen coordinates relative
// to the text area.
func (v *Viewport) ScreenPosition(line string, pos types.Position) (x, y int) {
	return DisplayWidth(line, pos.Col) - v.ColOffset, pos.Line - v.RowOffset
}

// ClampCol returns col limited to the line and moved back onto a codepoint boundary.
func ClampCol(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	if col < 0 {
		return 0
	}
	for col > 0 && !utf8.RuneStart(line[col]) {
		col--
	}
	return col
}

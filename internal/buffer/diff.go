package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/dmacs/internal/types"
)

// DiffKind tags an ActionDiff variant.
type DiffKind int

const (
	DiffCharChange DiffKind = iota
	DiffNewlineInsertion
	DiffLineSwap
	DiffDeleteRange
)

func (k DiffKind) String() string {
	switch k {
	case DiffCharChange:
		return "CharChange"
	case DiffNewlineInsertion:
		return "NewlineInsertion"
	case DiffLineSwap:
		return "LineSwap"
	case DiffDeleteRange:
		return "DeleteRange"
	}
	return fmt.Sprintf("DiffKind(%d)", int(k))
}

// ActionDiff is a reversible edit record. Every variant carries everything
// needed to invert it, plus the cursor before and after the edit.
type ActionDiff interface {
	Kind() DiffKind
	CursorStart() types.Position
	CursorEnd() types.Position
	identity() bool
	check(lines []string, reverse bool) error
	mutate(lines []string, reverse bool) ([]string, types.Position)
}

// Cursors holds the cursor positions recorded around a diff.
type Cursors struct {
	Start types.Position
	End   types.Position
}

func (c Cursors) CursorStart() types.Position { return c.Start }
func (c Cursors) CursorEnd() types.Position   { return c.End }

// CharChange removes Deleted at (X, Y) and inserts Added there. Both are single-line.
type CharChange struct {
	Cursors
	X, Y    int
	Added   string
	Deleted string
}

// NewlineInsertion splits line Y at byte X.
type NewlineInsertion struct {
	Cursors
	X, Y int
}

// LineSwap exchanges lines Y1 and Y2.
type LineSwap struct {
	Cursors
	Y1, Y2 int
}

// DeleteRange removes the span from (StartX, StartY) to (EndX, EndY).
// Content holds the removed text, one entry per line touched.
type DeleteRange struct {
	Cursors
	StartX, StartY int
	EndX, EndY     int
	Content        []string
}

func (CharChange) Kind() DiffKind       { return DiffCharChange }
func (NewlineInsertion) Kind() DiffKind { return DiffNewlineInsertion }
func (LineSwap) Kind() DiffKind         { return DiffLineSwap }
func (DeleteRange) Kind() DiffKind      { return DiffDeleteRange }

// --- CharChange ---

func (d CharChange) identity() bool { return d.Added == d.Deleted }

func (d CharChange) direction(reverse bool) (remove, insert string) {
	if reverse {
		return d.Added, d.Deleted
	}
	return d.Deleted, d.Added
}

func (d CharChange) check(lines []string, reverse bool) error {
	const op = "CharChange"
	remove, insert := d.direction(reverse)
	if strings.ContainsRune(insert, '\n') || !utf8.ValidString(insert) {
		return docErr(KindInvalidText, op, d.X, d.Y, "%q", insert)
	}
	if d.Y < 0 || d.Y >= len(lines) {
		return docErr(KindOutOfRange, op, d.X, d.Y, "line %d of %d", d.Y, len(lines))
	}
	line := lines[d.Y]
	end := d.X + len(remove)
	if d.X < 0 || end > len(line) {
		return docErr(KindOutOfRange, op, d.X, d.Y, "span %d..%d of %d bytes", d.X, end, len(line))
	}
	if !isBoundary(line, d.X) || !isBoundary(line, end) {
		return docErr(KindNotCharBoundary, op, d.X, d.Y, "span %d..%d", d.X, end)
	}
	if line[d.X:end] != remove {
		return docErr(KindMismatch, op, d.X, d.Y, "expected %q, found %q", remove, line[d.X:end])
	}
	return nil
}

func (d CharChange) mutate(lines []string, reverse bool) ([]string, types.Position) {
	remove, insert := d.direction(reverse)
	line := lines[d.Y]
	lines[d.Y] = line[:d.X] + insert + line[d.X+len(remove):]
	return lines, types.Position{Line: d.Y, Col: d.X + len(insert)}
}

// --- NewlineInsertion ---

func (d NewlineInsertion) identity() bool { return false }

func (d NewlineInsertion) check(lines []string, reverse bool) error {
	const op = "NewlineInsertion"
	if d.Y < 0 || d.Y >= len(lines) {
		return docErr(KindOutOfRange, op, d.X, d.Y, "line %d of %d", d.Y, len(lines))
	}
	line := lines[d.Y]
	if reverse {
		if d.Y+1 >= len(lines) {
			return docErr(KindOutOfRange, op, d.X, d.Y, "no line below to join")
		}
		if len(line) != d.X {
			return docErr(KindMismatch, op, d.X, d.Y, "line has %d bytes, split was at %d", len(line), d.X)
		}
		return nil
	}
	if d.X < 0 || d.X > len(line) {
		return docErr(KindOutOfRange, op, d.X, d.Y, "offset beyond %d bytes", len(line))
	}
	if !isBoundary(line, d.X) {
		return docErr(KindNotCharBoundary, op, d.X, d.Y, "")
	}
	return nil
}

func (d NewlineInsertion) mutate(lines []string, reverse bool) ([]string, types.Position) {
	if reverse {
		lines[d.Y] += lines[d.Y+1]
		lines = append(lines[:d.Y+1], lines[d.Y+2:]...)
		return lines, types.Position{Line: d.Y, Col: d.X}
	}
	line := lines[d.Y]
	head, tail := line[:d.X], line[d.X:]
	lines = append(lines, "")
	copy(lines[d.Y+2:], lines[d.Y+1:])
	lines[d.Y] = head
	lines[d.Y+1] = tail
	return lines, types.Position{Line: d.Y + 1, Col: 0}
}

// --- LineSwap ---

func (d LineSwap) identity() bool { return d.Y1 == d.Y2 }

func (d LineSwap) check(lines []string, _ bool) error {
	if d.Y1 < 0 || d.Y1 >= len(lines) || d.Y2 < 0 || d.Y2 >= len(lines) {
		return docErr(KindOutOfRange, "LineSwap", 0, d.Y1, "swap %d<->%d of %d lines", d.Y1, d.Y2, len(lines))
	}
	return nil
}

func (d LineSwap) mutate(lines []string, reverse bool) ([]string, types.Position) {
	lines[d.Y1], lines[d.Y2] = lines[d.Y2], lines[d.Y1]
	if reverse {
		return lines, d.Start
	}
	return lines, d.End
}

// --- DeleteRange ---

func (d DeleteRange) identity() bool {
	return d.StartY == d.EndY && d.StartX == d.EndX
}

// span returns the text currently covering the range, one entry per line.
func (d DeleteRange) span(lines []string) []string {
	if d.StartY == d.EndY {
		return []string{lines[d.StartY][d.StartX:d.EndX]}
	}
	out := make([]string, 0, d.EndY-d.StartY+1)
	out = append(out, lines[d.StartY][d.StartX:])
	out = append(out, lines[d.StartY+1:d.EndY]...)
	out = append(out, lines[d.EndY][:d.EndX])
	return out
}

func (d DeleteRange) check(lines []string, reverse bool) error {
	const op = "DeleteRange"
	if d.StartY < 0 || d.EndY < d.StartY || (d.StartY == d.EndY && d.EndX < d.StartX) {
		return docErr(KindOutOfRange, op, d.StartX, d.StartY, "inverted range to %d,%d", d.EndX, d.EndY)
	}
	if len(d.Content) != d.EndY-d.StartY+1 {
		return docErr(KindMismatch, op, d.StartX, d.StartY, "%d content lines for %d-line range", len(d.Content), d.EndY-d.StartY+1)
	}
	for _, c := range d.Content {
		if strings.ContainsRune(c, '\n') || !utf8.ValidString(c) {
			return docErr(KindInvalidText, op, d.StartX, d.StartY, "%q", c)
		}
	}
	if reverse {
		if d.StartY >= len(lines) {
			return docErr(KindOutOfRange, op, d.StartX, d.StartY, "line %d of %d", d.StartY, len(lines))
		}
		line := lines[d.StartY]
		if d.StartX < 0 || d.StartX > len(line) {
			return docErr(KindOutOfRange, op, d.StartX, d.StartY, "offset beyond %d bytes", len(line))
		}
		if !isBoundary(line, d.StartX) {
			return docErr(KindNotCharBoundary, op, d.StartX, d.StartY, "")
		}
		if d.StartY == d.EndY && d.EndX-d.StartX != len(d.Content[0]) {
			return docErr(KindMismatch, op, d.StartX, d.StartY, "span width %d, content %d bytes", d.EndX-d.StartX, len(d.Content[0]))
		}
		if d.StartY != d.EndY && d.EndX != len(d.Content[len(d.Content)-1]) {
			return docErr(KindMismatch, op, d.EndX, d.EndY, "end offset %d, last content line %d bytes", d.EndX, len(d.Content[len(d.Content)-1]))
		}
		return nil
	}
	if d.EndY >= len(lines) {
		return docErr(KindOutOfRange, op, d.EndX, d.EndY, "line %d of %d", d.EndY, len(lines))
	}
	if d.StartX < 0 || d.StartX > len(lines[d.StartY]) {
		return docErr(KindOutOfRange, op, d.StartX, d.StartY, "offset beyond %d bytes", len(lines[d.StartY]))
	}
	if d.EndX < 0 || d.EndX > len(lines[d.EndY]) {
		return docErr(KindOutOfRange, op, d.EndX, d.EndY, "offset beyond %d bytes", len(lines[d.EndY]))
	}
	if !isBoundary(lines[d.StartY], d.StartX) {
		return docErr(KindNotCharBoundary, op, d.StartX, d.StartY, "")
	}
	if !isBoundary(lines[d.EndY], d.EndX) {
		return docErr(KindNotCharBoundary, op, d.EndX, d.EndY, "")
	}
	for i, got := range d.span(lines) {
		if got != d.Content[i] {
			return docErr(KindMismatch, op, d.StartX, d.StartY+i, "expected %q, found %q", d.Content[i], got)
		}
	}
	return nil
}

func (d DeleteRange) mutate(lines []string, reverse bool) ([]string, types.Position) {
	if reverse {
		line := lines[d.StartY]
		head, tail := line[:d.StartX], line[d.StartX:]
		if len(d.Content) == 1 {
			lines[d.StartY] = head + d.Content[0] + tail
			return lines, types.Position{Line: d.EndY, Col: d.EndX}
		}
		restored := make([]string, 0, len(d.Content))
		restored = append(restored, head+d.Content[0])
		restored = append(restored, d.Content[1:len(d.Content)-1]...)
		restored = append(restored, d.Content[len(d.Content)-1]+tail)

		out := make([]string, 0, len(lines)+len(restored)-1)
		out = append(out, lines[:d.StartY]...)
		out = append(out, restored...)
		out = append(out, lines[d.StartY+1:]...)
		return out, types.Position{Line: d.EndY, Col: d.EndX}
	}
	joined := lines[d.StartY][:d.StartX] + lines[d.EndY][d.EndX:]
	lines[d.StartY] = joined
	lines = append(lines[:d.StartY+1], lines[d.EndY+1:]...)
	return lines, types.Position{Line: d.StartY, Col: d.StartX}
}

// Text returns the removed content joined with newlines.
func (d DeleteRange) Text() string {
	return strings.Join(d.Content, "\n")
}

func isBoundary(line string, offset int) bool {
	if offset == 0 || offset == len(line) {
		return true
	}
	return offset > 0 && offset < len(line) && utf8.RuneStart(line[offset])
}

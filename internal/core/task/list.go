// Package task holds the state of task selection mode: the unchecked tasks
// found below the cursor, an optional fuzzy filter and the selection.
package task

import (
	"math"
	"strings"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/core/fuzzy"
	"github.com/bethropolis/dmacs/internal/logger"
)

// UncheckedPrefix marks an open task once leading whitespace is trimmed.
const UncheckedPrefix = "- [ ] "

// Item is an unchecked task and the line it was found on.
type Item struct {
	Line int
	Text string
}

// UIHeight returns the rows taken by the task panel on a screen of rows rows,
// separator included.
func UIHeight(rows int) int {
	return int(math.Round(float64(rows) * 0.4))
}

// VisibleRows returns how many tasks fit in the panel.
func VisibleRows(rows int) int {
	return max(1, UIHeight(rows)-1)
}

// IsUnchecked reports whether line is an open task.
func IsUnchecked(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), UncheckedPrefix)
}

// List is the task picker.
type List struct {
	all      []Item
	items    []Item // all, narrowed by query
	query    string
	selected int // -1 when empty
	offset   int
	visible  int
}

// NewList creates an empty picker showing visible rows at a time.
func NewList(visible int) *List {
	return &List{selected: -1, visible: max(1, visible)}
}

// Reset empties the picker.
func (l *List) Reset() {
	l.all, l.items = nil, nil
	l.query = ""
	l.selected = -1
	l.offset = 0
}

// SetVisibleRows changes the panel height and keeps the selection in view.
func (l *List) SetVisibleRows(n int) {
	l.visible = max(1, n)
	l.follow()
}

// Scan collects the open tasks below line afterY. The selection index is
// kept, clamped to the new list.
func (l *List) Scan(buf buffer.Buffer, afterY int) {
	l.all = l.all[:0]
	for y := afterY + 1; y < buf.LineCount(); y++ {
		line := buf.Line(y)
		if IsUnchecked(line) {
			l.all = append(l.all, Item{Line: y, Text: line})
		}
	}
	l.apply()
	logger.DebugTagf("task", "Tasks: %d unchecked below line %d, %d shown", len(l.all), afterY, len(l.items))
}

// Filter narrows the list to tasks matching query.
func (l *List) Filter(query string) {
	l.query = query
	l.selected = 0
	l.offset = 0
	l.apply()
}

// Query returns the current filter.
func (l *List) Query() string { return l.query }

func (l *List) apply() {
	pattern := fuzzy.Parse(l.query)
	l.items = l.items[:0]
	for _, it := range l.all {
		if _, ok := pattern.Score(it.Text); ok {
			l.items = append(l.items, it)
		}
	}
	switch {
	case len(l.items) == 0:
		l.selected = -1
		l.offset = 0
	case l.selected < 0:
		l.selected = 0
	case l.selected >= len(l.items):
		l.selected = len(l.items) - 1
	}
	l.follow()
}

// follow keeps the selection inside the visible window.
func (l *List) follow() {
	if l.selected < 0 {
		return
	}
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+l.visible {
		l.offset = l.selected - l.visible + 1
	}
}

// Up moves the selection up, wrapping to the last task.
func (l *List) Up() {
	if len(l.items) == 0 {
		return
	}
	if l.selected > 0 {
		l.selected--
	} else {
		l.selected = len(l.items) - 1
	}
	l.follow()
}

// Down moves the selection down, wrapping to the first task.
func (l *List) Down() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected + 1) % len(l.items)
	l.follow()
}

// Selected returns the highlighted task.
func (l *List) Selected() (Item, bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		return Item{}, false
	}
	return l.items[l.selected], true
}

// SelectedIndex returns the highlighted index, or -1.
func (l *List) SelectedIndex() int { return l.selected }

// Offset returns the index of the first visible task.
func (l *List) Offset() int { return l.offset }

// Items returns the shown tasks. Callers must not modify the slice.
func (l *List) Items() []Item { return l.items }

// Len returns the number of shown tasks.
func (l *List) Len() int { return len(l.items) }

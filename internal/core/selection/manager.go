package selection

import (
	"strings"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/core/scroll"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/types"
)

// Manager tracks the marker. Together with the cursor it defines the selection.
type Manager struct {
	marker types.Position
	active bool
}

// NewManager creates a selection manager with no marker.
func NewManager() *Manager {
	return &Manager{}
}

// SetMarker anchors the selection at pos.
func (m *Manager) SetMarker(pos types.Position) {
	m.marker = pos
	m.active = true
	logger.DebugTagf("core", "Selection: marker set at %v", pos)
}

// ClearMarker drops the selection.
func (m *Manager) ClearMarker() {
	if m.active {
		logger.DebugTagf("core", "Selection: marker cleared")
	}
	m.active = false
	m.marker = types.Position{}
}

// IsActive reports whether a marker is set.
func (m *Manager) IsActive() bool { return m.active }

// Marker returns the marker position and whether it is set.
func (m *Manager) Marker() (types.Position, bool) { return m.marker, m.active }

// Range returns the selection ordered so start is not after end.
func (m *Manager) Range(cursor types.Position) (start, end types.Position, ok bool) {
	if !m.active {
		return types.Position{}, types.Position{}, false
	}
	start, end = types.Ordered(m.marker, cursor)
	return start, end, true
}

// Contains reports whether the byte at pos on a line is inside the selection.
func (m *Manager) Contains(cursor, pos types.Position) bool {
	start, end, ok := m.Range(cursor)
	if !ok {
		return false
	}
	return !pos.Before(start) && pos.Before(end)
}

// bounded is Range with both ends clamped to buf before ordering.
func (m *Manager) bounded(buf buffer.Buffer, cursor types.Position) (start, end types.Position, ok bool) {
	if !m.active {
		return types.Position{}, types.Position{}, false
	}
	start, end = types.Ordered(clampTo(buf, m.marker), clampTo(buf, cursor))
	return start, end, true
}

// clampTo moves p onto the nearest codepoint boundary inside buf.
func clampTo(buf buffer.Buffer, p types.Position) types.Position {
	if p.Line >= buf.LineCount() {
		p.Line = buf.LineCount() - 1
	}
	if p.Line < 0 {
		p.Line = 0
	}
	p.Col = scroll.ClampCol(buf.Line(p.Line), p.Col)
	return p
}

// Copy returns the selected text and clears the marker.
func (m *Manager) Copy(buf buffer.Buffer, cursor types.Position) string {
	start, end, ok := m.bounded(buf, cursor)
	if !ok {
		return ""
	}
	text := strings.Join(extract(buf, start, end), "\n")
	m.ClearMarker()
	return text
}

// Cut returns the selected text and the diff removing it without touching the
// document, then clears the marker. The diff is nil when nothing is selected.
func (m *Manager) Cut(buf buffer.Buffer, cursor types.Position) (string, *buffer.DeleteRange) {
	start, end, ok := m.bounded(buf, cursor)
	if !ok {
		return "", nil
	}
	content := extract(buf, start, end)
	m.ClearMarker()
	diff := &buffer.DeleteRange{
		Cursors: buffer.Cursors{Start: cursor, End: start},
		StartX:  start.Col,
		StartY:  start.Line,
		EndX:    end.Col,
		EndY:    end.Line,
		Content: content,
	}
	return diff.Text(), diff
}

// extract returns the text between start and end, one entry per line. Both
// must lie inside buf with start not after end.
func extract(buf buffer.Buffer, start, end types.Position) []string {
	if start.Line == end.Line {
		return []string{buf.Line(start.Line)[start.Col:end.Col]}
	}
	out := make([]string, 0, end.Line-start.Line+1)
	out = append(out, buf.Line(start.Line)[start.Col:])
	for y := start.Line + 1; y < end.Line; y++ {
		out = append(out, buf.Line(y))
	}
	out = append(out, buf.Line(end.Line)[:end.Col])
	return out
}

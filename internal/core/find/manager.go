// Package find implements incremental substring search over document lines.
package find

import (
	"strings"
	"sync"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/types"
)

// Manager holds the search query, its matches in document order and the
// index of the current match.
type Manager struct {
	mutex   sync.RWMutex
	query   string
	results []types.Position
	current int // -1 when no match is selected
}

// NewManager creates an idle search manager.
func NewManager() *Manager {
	return &Manager{current: -1}
}

// Reset clears the query and all matches.
func (m *Manager) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.query = ""
	m.results = nil
	m.current = -1
}

// Query returns the current query.
func (m *Manager) Query() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.query
}

// SetQuery recomputes the matches for query and selects the first match at
// or after cursor, wrapping to the first match. It returns the selected match.
func (m *Manager) SetQuery(buf buffer.Buffer, query string, cursor types.Position) (types.Position, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.query = query
	m.results = m.results[:0]
	m.current = -1
	if query == "" {
		return types.Position{}, false
	}

	for y, line := range buf.Lines() {
		offset := 0
		for {
			i := strings.Index(line[offset:], query)
			if i < 0 {
				break
			}
			m.results = append(m.results, types.Position{Line: y, Col: offset + i})
			offset += i + len(query)
		}
	}
	logger.DebugTagf("search", "Search: %q has %d matches", query, len(m.results))
	if len(m.results) == 0 {
		return types.Position{}, false
	}

	m.current = 0
	for i, p := range m.results {
		if !p.Before(cursor) {
			m.current = i
			break
		}
	}
	return m.results[m.current], true
}

// Next selects the following match, wrapping at the end.
func (m *Manager) Next() (types.Position, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.results) == 0 {
		return types.Position{}, false
	}
	m.current = (m.current + 1) % len(m.results)
	return m.results[m.current], true
}

// Prev selects the preceding match, wrapping at the start.
func (m *Manager) Prev() (types.Position, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.results) == 0 {
		return types.Position{}, false
	}
	if m.current <= 0 {
		m.current = len(m.results) - 1
	} else {
		m.current--
	}
	return m.results[m.current], true
}

// Results returns a copy of all match positions.
func (m *Manager) Results() []types.Position {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	out := make([]types.Position, len(m.results))
	copy(out, m.results)
	return out
}

// Current returns the selected match index, or -1.
func (m *Manager) Current() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

// Covers reports whether byte col of line y falls inside any match.
func (m *Manager) Covers(y, col int) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	n := len(m.query)
	for _, p := range m.results {
		if p.Line == y && col >= p.Col && col < p.Col+n {
			return true
		}
		if p.Line > y {
			break
		}
	}
	return false
}

// Status returns the prompt shown while searching.
func (m *Manager) Status() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.query != "" && len(m.results) == 0 {
		return "Search: " + m.query + " (No match)"
	}
	return "Search: " + m.query
}

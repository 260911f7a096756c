package fuzzy

import (
	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/logger"
)

// LineMatch is a document line accepted by the query.
type LineMatch struct {
	Line int
	Text string
}

// Search is the fuzzy line picker. Matches stay in document order.
type Search struct {
	query        string
	matches      []LineMatch
	selected     int
	scrollOffset int
}

// NewSearch creates an empty picker.
func NewSearch() *Search {
	return &Search{}
}

// Reset clears the query, matches and selection.
func (s *Search) Reset() {
	s.query = ""
	s.matches = nil
	s.selected = 0
	s.scrollOffset = 0
}

// Query returns the current query.
func (s *Search) Query() string { return s.query }

// SetQuery replaces the query and rescans buf. An empty query lists every line.
func (s *Search) SetQuery(buf buffer.Buffer, query string) {
	s.query = query
	s.Update(buf)
}

// Update rescans buf with the current query and selects the first match.
func (s *Search) Update(buf buffer.Buffer) {
	pattern := Parse(s.query)
	s.matches = s.matches[:0]
	for i, line := range buf.Lines() {
		if _, ok := pattern.Score(line); ok {
			s.matches = append(s.matches, LineMatch{Line: i, Text: line})
		}
	}
	s.selected = 0
	s.scrollOffset = 0
	logger.DebugTagf("search", "FuzzySearch: %q matched %d lines", s.query, len(s.matches))
}

// Up moves the selection up, wrapping to the last match.
func (s *Search) Up() {
	if len(s.matches) == 0 {
		return
	}
	if s.selected > 0 {
		s.selected--
	} else {
		s.selected = len(s.matches) - 1
	}
}

// Down moves the selection down, wrapping to the first match.
func (s *Search) Down() {
	if len(s.matches) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.matches)
}

// Selected returns the highlighted match.
func (s *Search) Selected() (LineMatch, bool) {
	if s.selected < 0 || s.selected >= len(s.matches) {
		return LineMatch{}, false
	}
	return s.matches[s.selected], true
}

// SelectedIndex returns the index of the highlighted match.
func (s *Search) SelectedIndex() int { return s.selected }

// Matches returns the current matches. Callers must not modify the slice.
func (s *Search) Matches() []LineMatch { return s.matches }

// Window scrolls so the selection fits in height rows and returns the index
// of the first visible match.
func (s *Search) Window(height int) int {
	if height < 1 {
		height = 1
	}
	if s.selected < s.scrollOffset {
		s.scrollOffset = s.selected
	}
	if s.selected >= s.scrollOffset+height {
		s.scrollOffset = s.selected - height + 1
	}
	return s.scrollOffset
}

package find

import (
	"testing"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/types"
)

func pos(x, y int) types.Position { return types.Position{Line: y, Col: x} }

func TestSetQuery(t *testing.T) {
	doc := buffer.NewFromLines("foo bar foo", "nothing", "foofoo")

	tests := []struct {
		name   string
		query  string
		cursor types.Position
		want   types.Position
		count  int
	}{
		{"first after cursor", "foo", pos(1, 0), pos(8, 0), 4},
		{"at cursor", "foo", pos(8, 0), pos(8, 0), 4},
		{"wraps", "foo", pos(4, 2), pos(0, 0), 4},
		{"non-overlapping", "oo", pos(0, 2), pos(1, 2), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			got, ok := m.SetQuery(doc, tt.query, tt.cursor)
			if !ok || got != tt.want {
				t.Errorf("SetQuery = %v, %v; want %v", got, ok, tt.want)
			}
			if n := len(m.Results()); n != tt.count {
				t.Errorf("matches = %d, want %d", n, tt.count)
			}
		})
	}
}

func TestNavigationWraps(t *testing.T) {
	doc := buffer.NewFromLines("ab", "ab", "ab")
	m := NewManager()
	if _, ok := m.SetQuery(doc, "ab", pos(0, 1)); !ok {
		t.Fatal("no match")
	}
	steps := []struct {
		next bool
		want types.Position
	}{
		{true, pos(0, 2)},
		{true, pos(0, 0)},
		{false, pos(0, 2)},
		{false, pos(0, 1)},
	}
	for i, s := range steps {
		var got types.Position
		if s.next {
			got, _ = m.Next()
		} else {
			got, _ = m.Prev()
		}
		if got != s.want {
			t.Errorf("step %d: got %v, want %v", i, got, s.want)
		}
	}
}

func TestStatus(t *testing.T) {
	doc := buffer.NewFromLines("hello")
	m := NewManager()
	if got := m.Status(); got != "Search: " {
		t.Errorf("empty status = %q", got)
	}
	m.SetQuery(doc, "xyz", pos(0, 0))
	if got := m.Status(); got != "Search: xyz (No match)" {
		t.Errorf("status = %q", got)
	}
	if _, ok := m.Next(); ok {
		t.Errorf("Next moved without matches")
	}
	m.SetQuery(doc, "ell", pos(0, 0))
	if got := m.Status(); got != "Search: ell" {
		t.Errorf("status = %q", got)
	}
	if !m.Covers(0, 3) || m.Covers(0, 4) {
		t.Errorf("Covers disagrees with match span")
	}
}

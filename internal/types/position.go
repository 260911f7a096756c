// internal/types/position.go
package types

import "fmt"

// Position represents a cursor or text position within the document.
// Line is the 0-based line index.
// Col is the 0-based byte offset into the line and always sits on a UTF-8 boundary.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p comes strictly before other in (line, col) order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Ordered returns a and b sorted so that the first is not after the second.
func Ordered(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Line)
}

// Package history provides undo/redo over transactions of document diffs.
package history

import (
	"fmt"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/types"
)

// ActionKind classifies a recorded edit for coalescing.
type ActionKind int

const (
	KindNone ActionKind = iota
	KindInsertion
	KindDeletion
	KindNewline
	KindLineMovement
	// KindAmend appends to the open transaction without changing the last kind.
	KindAmend
	KindToggleCheckbox
	KindToggleComment
	KindIndent
	KindOutdent
	KindOther
)

var kindNames = [...]string{
	KindNone:           "None",
	KindInsertion:      "Insertion",
	KindDeletion:       "Deletion",
	KindNewline:        "Newline",
	KindLineMovement:   "LineMovement",
	KindAmend:          "Amend",
	KindToggleCheckbox: "ToggleCheckbox",
	KindToggleComment:  "ToggleComment",
	KindIndent:         "Indent",
	KindOutdent:        "Outdent",
	KindOther:          "Other",
}

func (k ActionKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// MarkerShift records a selection marker moved by the transaction.
type MarkerShift struct {
	Before types.Position
	After  types.Position
}

// Transaction is an ordered list of diffs that undo and redo as one unit.
type Transaction struct {
	Kind   ActionKind
	Diffs  []buffer.ActionDiff
	Marker *MarkerShift
}

// Restore is where the cursor, and the marker if the transaction moved it,
// end up after an undo or redo.
type Restore struct {
	Cursor types.Position
	Marker *types.Position
}

// Len returns the number of diffs in the transaction.
func (t Transaction) Len() int { return len(t.Diffs) }

package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/types"
)

const (
	DefaultMaxHistory = 1000
	DefaultDebounce   = 500 * time.Millisecond
)

// Applier is the part of a document the history manager needs.
type Applier interface {
	Apply(diff buffer.ActionDiff, reverse bool) (types.Position, error)
}

// Manager holds the undo and redo stacks and groups recorded diffs into
// transactions by action kind and time.
type Manager struct {
	undoStack  []Transaction
	redoStack  []Transaction
	lastKind   ActionKind
	lastTime   time.Time // zero until the first record, and after undo/redo
	debounce   time.Duration
	maxHistory int
	now        func() time.Time
	mutex      sync.Mutex
}

// NewManager creates a history manager. A non-positive debounce selects the default.
func NewManager(debounce time.Duration, maxHistory int) *Manager {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		lastKind:   KindNone,
		debounce:   debounce,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// SetClock replaces the time source used for coalescing.
func (m *Manager) SetClock(now func() time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.now = now
}

// SetDebounce changes the coalescing window. Zero makes every record its own group.
func (m *Manager) SetDebounce(d time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.debounce = d
}

// startsGroup decides whether a record of kind opens a new transaction.
func (m *Manager) startsGroup(kind ActionKind, now time.Time) bool {
	switch {
	case len(m.undoStack) == 0:
		return true
	case kind == KindAmend:
		return false
	case m.lastTime.IsZero():
		return true
	case kind == KindToggleCheckbox:
		return true
	case kind != m.lastKind:
		return true
	}
	return now.Sub(m.lastTime) >= m.debounce
}

// Record adds an already applied diff to the history and clears the redo stack.
func (m *Manager) Record(kind ActionKind, diff buffer.ActionDiff) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := m.now()
	if m.startsGroup(kind, now) {
		m.undoStack = append(m.undoStack, Transaction{Kind: kind})
		if len(m.undoStack) > m.maxHistory {
			m.undoStack = m.undoStack[len(m.undoStack)-m.maxHistory:]
		}
		logger.Debugf("History: new transaction (%v), depth %d", kind, len(m.undoStack))
	}
	top := &m.undoStack[len(m.undoStack)-1]
	top.Diffs = append(top.Diffs, diff)
	m.redoStack = m.redoStack[:0]

	m.lastTime = now
	if kind != KindAmend {
		m.lastKind = kind
	}
	logger.Debugf("History: recorded %v as %v (%d diffs in transaction)", diff.Kind(), kind, len(top.Diffs))
}

// Break makes the next record open a new transaction regardless of timing.
func (m *Manager) Break() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.lastTime = time.Time{}
	m.lastKind = KindNone
}

// ShiftMarker attaches a marker move to the open transaction. A transaction
// that already moved the marker keeps its original Before.
func (m *Manager) ShiftMarker(before, after types.Position) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.undoStack) == 0 {
		return
	}
	top := &m.undoStack[len(m.undoStack)-1]
	if top.Marker != nil {
		top.Marker.After = after
		return
	}
	top.Marker = &MarkerShift{Before: before, After: after}
}

// Undo reverts the newest transaction. The cursor comes back to where it was
// before the transaction's first diff. It returns false when there was nothing
// to undo. On failure the document and both stacks are restored.
func (m *Manager) Undo(doc Applier) (Restore, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.undoStack) == 0 {
		logger.Debugf("History: Nothing to undo.")
		return Restore{}, false, nil
	}
	tx := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]

	for i := len(tx.Diffs) - 1; i >= 0; i-- {
		if _, err := doc.Apply(tx.Diffs[i], true); err != nil {
			logger.Errorf("History: undo of diff %d (%v) failed: %v", i, tx.Diffs[i].Kind(), err)
			// re-apply what was already reverted, newest last
			for j := i + 1; j < len(tx.Diffs); j++ {
				if _, rbErr := doc.Apply(tx.Diffs[j], false); rbErr != nil {
					logger.Errorf("History: rollback of diff %d failed: %v", j, rbErr)
				}
			}
			m.undoStack = append(m.undoStack, tx)
			return Restore{}, false, fmt.Errorf("undo failed: %w", err)
		}
	}

	m.redoStack = append(m.redoStack, tx)
	m.lastTime = time.Time{}
	m.lastKind = KindNone
	r := Restore{Cursor: tx.Diffs[0].CursorStart()}
	if tx.Marker != nil {
		marker := tx.Marker.Before
		r.Marker = &marker
	}
	logger.Debugf("History: undid %v transaction (%d diffs), cursor %v", tx.Kind, len(tx.Diffs), r.Cursor)
	return r, true, nil
}

// Redo reapplies the newest undone transaction. The cursor goes to where it
// was after the transaction's last diff.
func (m *Manager) Redo(doc Applier) (Restore, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.redoStack) == 0 {
		logger.Debugf("History: Nothing to redo.")
		return Restore{}, false, nil
	}
	tx := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]

	for i, diff := range tx.Diffs {
		if _, err := doc.Apply(diff, false); err != nil {
			logger.Errorf("History: redo of diff %d (%v) failed: %v", i, diff.Kind(), err)
			for j := i - 1; j >= 0; j-- {
				if _, rbErr := doc.Apply(tx.Diffs[j], true); rbErr != nil {
					logger.Errorf("History: rollback of diff %d failed: %v", j, rbErr)
				}
			}
			m.redoStack = append(m.redoStack, tx)
			return Restore{}, false, fmt.Errorf("redo failed: %w", err)
		}
	}

	m.undoStack = append(m.undoStack, tx)
	m.lastTime = time.Time{}
	m.lastKind = KindNone
	r := Restore{Cursor: tx.Diffs[len(tx.Diffs)-1].CursorEnd()}
	if tx.Marker != nil {
		marker := tx.Marker.After
		r.Marker = &marker
	}
	logger.Debugf("History: redid %v transaction (%d diffs), cursor %v", tx.Kind, len(tx.Diffs), r.Cursor)
	return r, true, nil
}

// Clear resets both stacks. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.undoStack = nil
	m.redoStack = nil
	m.lastTime = time.Time{}
	m.lastKind = KindNone
	logger.Debugf("History: Cleared.")
}

// CanUndo returns true if there are transactions that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if there are transactions that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redoStack) > 0
}

// UndoDepth returns the number of transactions on the undo stack.
func (m *Manager) UndoDepth() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undoStack)
}

// RedoDepth returns the number of transactions on the redo stack.
func (m *Manager) RedoDepth() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redoStack)
}

// Top returns a copy of the newest undo transaction.
func (m *Manager) Top() (Transaction, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.undoStack) == 0 {
		return Transaction{}, false
	}
	top := m.undoStack[len(m.undoStack)-1]
	diffs := make([]buffer.ActionDiff, len(top.Diffs))
	copy(diffs, top.Diffs)
	return Transaction{Kind: top.Kind, Diffs: diffs, Marker: top.Marker}, true
}

// Package clipboard holds the kill buffer and bridges it to the OS clipboard.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/dmacs/internal/logger"
)

// System is an OS clipboard.
type System interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// osClipboard forwards to the platform clipboard utility.
type osClipboard struct{}

func (osClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (osClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// OS returns the platform clipboard.
func OS() System { return osClipboard{} }

// Manager owns the kill buffer. The kill buffer stays authoritative when the
// OS clipboard is missing or fails.
type Manager struct {
	killBuffer        string
	lastActionWasKill bool
	system            System // nil when the OS clipboard is disabled
	mutex             sync.Mutex
}

// NewManager creates a clipboard manager. Pass nil to keep everything internal.
func NewManager(system System) *Manager {
	return &Manager{system: system}
}

// SetSystem replaces the OS clipboard bridge; nil disables it.
func (m *Manager) SetSystem(system System) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.system = system
}

// Kill stores killed text. Consecutive kills accumulate.
func (m *Manager) Kill(text string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.lastActionWasKill {
		m.killBuffer += text
	} else {
		m.killBuffer = text
	}
	m.lastActionWasKill = true
	m.writeSystem()
	logger.DebugTagf("clipboard", "Clipboard: kill buffer now %d bytes", len(m.killBuffer))
}

// Copy replaces the kill buffer and ends any kill streak.
func (m *Manager) Copy(text string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.killBuffer = text
	m.lastActionWasKill = false
	m.writeSystem()
	logger.DebugTagf("clipboard", "Clipboard: copied %d bytes", len(text))
}

// Yank returns the text to insert. The OS clipboard wins when it can be read.
func (m *Manager) Yank() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.lastActionWasKill = false
	if m.system != nil {
		text, err := m.system.ReadAll()
		if err != nil {
			logger.DebugTagf("clipboard", "Clipboard: OS read failed: %v", err)
		} else {
			m.killBuffer = text
		}
	}
	return m.killBuffer
}

// BreakStreak ends a run of kills so the next kill replaces the buffer.
func (m *Manager) BreakStreak() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.lastActionWasKill = false
}

// LastActionWasKill reports whether the previous clipboard action was a kill.
func (m *Manager) LastActionWasKill() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.lastActionWasKill
}

// Contents returns the kill buffer without consulting the OS clipboard.
func (m *Manager) Contents() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.killBuffer
}

// SetContents overwrites the kill buffer only.
func (m *Manager) SetContents(text string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.killBuffer = text
}

func (m *Manager) writeSystem() {
	if m.system == nil {
		return
	}
	if err := m.system.WriteAll(m.killBuffer); err != nil {
		logger.DebugTagf("clipboard", "Clipboard: OS write failed: %v", err)
	}
}

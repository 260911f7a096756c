package app

import (
	"github.com/bethropolis/dmacs/internal/tui"
)

// drawEditor clears screen and redraws all components. It also drops the
// Ctrl-C prompt once the confirmation window has passed.
func (a *App) drawEditor() {
	if a.ctrlC.Load() == 0 && a.editor.Status() == quitPrompt {
		a.editor.SetStatus("")
	}
	tui.Draw(a.tuiManager, a.editor)
	a.tuiManager.Show()
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

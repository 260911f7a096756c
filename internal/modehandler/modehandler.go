// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/bethropolis/dmacs/internal/core"
	"github.com/bethropolis/dmacs/internal/event"
	"github.com/bethropolis/dmacs/internal/input"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// ModeHandler routes key events to the editor according to its mode.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	quitSignal     chan<- struct{} // closed to make the app quit

	noExitOnSave bool
	quitting     bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
	NoExitOnSave   bool            // Ctrl-X saves without quitting
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.QuitSignal == nil {
		// panic indicates programming error during setup
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		quitSignal:     cfg.QuitSignal,
		noExitOnSave:   cfg.NoExitOnSave,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event may have changed what is on screen.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	if mh.quitting {
		return false
	}
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	var processed bool
	switch mode := mh.editor.Mode(); mode {
	case core.ModeNormal:
		processed = mh.executeAction(actionEvent)
	case core.ModeSearch:
		processed = mh.handleActionSearch(actionEvent)
	case core.ModeFuzzySearch:
		processed = mh.handleActionFuzzy(actionEvent)
	case core.ModeTaskSelection:
		processed = mh.handleActionTask(actionEvent)
	default:
		logger.Warnf("ModeHandler: unknown mode %v", mode)
	}

	if processed {
		mh.editor.ScrollToCursor()
	}
	return processed
}

// quit closes the quit signal once.
func (mh *ModeHandler) quit(saved bool) {
	if mh.quitting {
		return
	}
	mh.quitting = true
	logger.Infof("ModeHandler: quitting (saved=%v)", saved)
	mh.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{Saved: saved})
	close(mh.quitSignal)
}

// IsQuitting reports whether the quit signal was sent.
func (mh *ModeHandler) IsQuitting() bool { return mh.quitting }

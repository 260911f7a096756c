package app

import (
	"github.com/bethropolis/dmacs/internal/event"
	"github.com/bethropolis/dmacs/internal/logger"
)

// handleBufferSaved prunes old backups after every save.
func (a *App) handleBufferSaved(e event.Event) bool {
	data, ok := e.Data.(event.BufferSavedData)
	if !ok {
		logger.Warnf("App: BufferSaved event with unexpected data type: %T", e.Data)
		return false
	}
	if data.BackupPath != "" {
		logger.Debugf("App: %s backed up to %s", data.FilePath, data.BackupPath)
	}
	if a.backups == nil {
		return false
	}
	if _, err := a.backups.Clean(a.cfg.Editor.Retention()); err != nil {
		logger.Warnf("App: backup cleanup failed: %v", err)
	}
	return false
}

// handleAppQuit prunes cursor positions of files not opened for a while.
func (a *App) handleAppQuit(e event.Event) bool {
	if data, ok := e.Data.(event.AppQuitData); ok {
		logger.Debugf("App: quit event (saved=%v)", data.Saved)
	}
	if a.positions == nil {
		return false
	}
	if n, err := a.positions.Clean(a.cfg.Editor.Retention()); err != nil {
		logger.Warnf("App: cursor position cleanup failed: %v", err)
	} else if n > 0 {
		logger.Infof("App: removed %d old cursor positions", n)
	}
	return false
}

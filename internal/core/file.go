// internal/core/file.go
package core

import (
	"errors"
	"fmt"

	"github.com/bethropolis/dmacs/internal/event"
	"github.com/bethropolis/dmacs/internal/logger"
)

// Backuper keeps a copy of a file's previous content before it is overwritten.
type Backuper interface {
	Save(filePath, content string) (string, error)
}

// SetBackups sets where Save copies the previous on-disk content.
func (e *Editor) SetBackups(b Backuper) {
	e.backups = b
}

// Save writes the document to its file. When the document was modified, the
// content it was loaded with is backed up first; a failed backup does not
// stop the save.
func (e *Editor) Save() error {
	path := e.doc.FilePath()
	if path == "" {
		err := errors.New("no file name")
		e.SetStatus("Error saving file: no file name.")
		return err
	}

	var backupPath string
	if original, ok := e.doc.OriginalContent(); ok && e.doc.IsDirty() && e.backups != nil {
		p, err := e.backups.Save(path, original)
		if err != nil {
			logger.Warnf("Editor: backup of %s failed: %v", path, err)
		}
		backupPath = p
	}

	if err := e.doc.Save(""); err != nil {
		e.SetStatus(fmt.Sprintf("Error saving file: %v", err))
		return fmt.Errorf("save %s: %w", path, err)
	}
	e.SetStatus("File saved successfully.")
	e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path, BackupPath: backupPath})
	return nil
}

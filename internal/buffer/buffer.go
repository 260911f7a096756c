// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/dmacs/internal/types"

// Buffer is the read-only view of a document used by search, selection and task scanning.
type Buffer interface {
	Lines() []string
	Line(index int) string
	LineCount() int
}

// TextBuffer is a Buffer that can be mutated through diffs and persisted.
type TextBuffer interface {
	Buffer
	Apply(diff ActionDiff, reverse bool) (types.Position, error)
	Load(filePath string) error
	Save(filePath string) error
	FilePath() string
	IsDirty() bool
	MarkClean()
}

// internal/buffer/document.go
package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/types"
	"github.com/dimchansky/utfbom"
)

// Document is an ordered list of lines. It always holds at least one line
// and is only mutated through Apply.
type Document struct {
	lines    []string
	filePath string
	dirty    bool

	// content as last read from or written to disk
	original    string
	hasOriginal bool
}

var _ TextBuffer = (*Document)(nil)

// New creates an empty document with a single empty line.
func New() *Document {
	return &Document{lines: []string{""}}
}

// NewFromLines creates an unbound document holding a copy of lines.
func NewFromLines(lines ...string) *Document {
	if len(lines) == 0 {
		return New()
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Document{lines: cp}
}

// Load reads a file into the document, replacing its content.
// A missing file yields an empty document bound to filePath.
func (d *Document) Load(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.lines = []string{""}
			d.filePath = filePath
			d.dirty = false
			d.original, d.hasOriginal = "", false
			logger.Debugf("Document: %s does not exist, starting empty", filePath)
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	lines, raw, err := readLines(utfbom.SkipOnly(file))
	if err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	d.lines = lines
	d.filePath = filePath
	d.dirty = false
	d.original, d.hasOriginal = raw, true
	logger.Debugf("Document: loaded %s (%d lines)", filePath, len(lines))
	return nil
}

func readLines(r io.Reader) ([]string, string, error) {
	var raw strings.Builder
	lines := []string{}
	reader := bufio.NewReader(r)
	for {
		chunk, err := reader.ReadString('\n')
		raw.WriteString(chunk)
		if len(chunk) > 0 {
			line := strings.TrimSuffix(chunk, "\n")
			line = strings.TrimSuffix(line, "\r")
			// a final newline does not open a new line
			if strings.HasSuffix(chunk, "\n") || line != "" {
				lines = append(lines, line)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines, raw.String(), nil
}

// Save writes every line followed by a newline and marks the document clean.
func (d *Document) Save(filePath string) error {
	path := d.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	content := d.Content() + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	d.filePath = path
	d.original, d.hasOriginal = content, true
	d.MarkClean()
	logger.Debugf("Document: saved %s (%d lines)", path, len(d.lines))
	return nil
}

// Apply applies diff forward, or inverts it when reverse is set, and returns
// the cursor position implied by that direction. Nothing is modified on error.
func (d *Document) Apply(diff ActionDiff, reverse bool) (types.Position, error) {
	if err := diff.check(d.lines, reverse); err != nil {
		logger.Debugf("Document: rejected %v (reverse=%v): %v", diff.Kind(), reverse, err)
		return types.Position{}, err
	}
	lines, pos := diff.mutate(d.lines, reverse)
	d.lines = lines
	if !diff.identity() {
		d.dirty = true
	}
	return pos, nil
}

// Lines returns the document lines. Callers must not modify the slice.
func (d *Document) Lines() []string { return d.lines }

// Line returns line index, or "" when out of range.
func (d *Document) Line(index int) string {
	if index < 0 || index >= len(d.lines) {
		return ""
	}
	return d.lines[index]
}

// LineCount returns the number of lines, which is never zero.
func (d *Document) LineCount() int { return len(d.lines) }

// Content returns the lines joined with newlines.
func (d *Document) Content() string { return strings.Join(d.lines, "\n") }

// FilePath returns the bound path, possibly empty.
func (d *Document) FilePath() string { return d.filePath }

// SetFilePath binds the document to a path without touching its content.
func (d *Document) SetFilePath(path string) { d.filePath = path }

// IsDirty reports whether the in-memory content differs from the last load or save.
func (d *Document) IsDirty() bool { return d.dirty }

// MarkClean resets the dirty flag.
func (d *Document) MarkClean() { d.dirty = false }

// OriginalContent returns the content as last loaded or saved, and whether there was any.
func (d *Document) OriginalContent() (string, bool) { return d.original, d.hasOriginal }

// LastModified returns the modification time of the bound file.
func (d *Document) LastModified() (time.Time, error) {
	if d.filePath == "" {
		return time.Time{}, errors.New("document has no file path")
	}
	info, err := os.Stat(d.filePath)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat '%s': %w", d.filePath, err)
	}
	return info.ModTime(), nil
}

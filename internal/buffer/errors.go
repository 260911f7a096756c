package buffer

import (
	"errors"
	"fmt"

	"github.com/bethropolis/dmacs/internal/types"
)

// ErrorKind classifies a failed diff application.
type ErrorKind int

const (
	KindOutOfRange ErrorKind = iota
	KindNotCharBoundary
	KindMismatch
	KindInvalidText
)

func (k ErrorKind) String() string {
	switch k {
	case KindOutOfRange:
		return "out of range"
	case KindNotCharBoundary:
		return "not on a character boundary"
	case KindMismatch:
		return "content mismatch"
	case KindInvalidText:
		return "invalid text"
	}
	return "unknown"
}

// Sentinels usable with errors.Is against a *DocumentError.
var (
	ErrOutOfRange      = errors.New("coordinate out of range")
	ErrNotCharBoundary = errors.New("offset inside a multi-byte character")
	ErrMismatch        = errors.New("diff does not match document content")
	ErrInvalidText     = errors.New("text is not a valid single-line UTF-8 string")
)

// DocumentError is returned by Apply when a diff cannot be applied.
// The document is left untouched whenever one is returned.
type DocumentError struct {
	Kind   ErrorKind
	Op     string
	Pos    types.Position
	Detail string
}

func (e *DocumentError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s at %s: %s: %s", e.Op, e.Pos, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s at %s: %s", e.Op, e.Pos, e.Kind)
}

// Is maps the error kind onto the package sentinels.
func (e *DocumentError) Is(target error) bool {
	switch target {
	case ErrOutOfRange:
		return e.Kind == KindOutOfRange
	case ErrNotCharBoundary:
		return e.Kind == KindNotCharBoundary
	case ErrMismatch:
		return e.Kind == KindMismatch
	case ErrInvalidText:
		return e.Kind == KindInvalidText
	}
	return false
}

func docErr(kind ErrorKind, op string, x, y int, format string, args ...interface{}) error {
	return &DocumentError{
		Kind:   kind,
		Op:     op,
		Pos:    types.Position{Line: y, Col: x},
		Detail: fmt.Sprintf(format, args...),
	}
}

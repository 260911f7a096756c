// Package event is a small synchronous event bus between the editor core and the application.
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified // a diff was applied, including by undo/redo
	TypeBufferLoaded
	TypeBufferSaved
	TypeModeChanged
	TypeStatusChanged

	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:        "Unknown",
	TypeBufferModified: "BufferModified",
	TypeBufferLoaded:   "BufferLoaded",
	TypeBufferSaved:    "BufferSaved",
	TypeModeChanged:    "ModeChanged",
	TypeStatusChanged:  "StatusChanged",
	TypeAppReady:       "AppReady",
	TypeAppQuit:        "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Type(?)"
}

// Event is passed to every handler subscribed to its type.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes the first line touched by a change.
type BufferModifiedData struct {
	Line int
	Undo bool
}

// BufferLoadedData carries the loaded file.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData carries the saved file and the backup taken before writing, if any.
type BufferSavedData struct {
	FilePath   string
	BackupPath string
}

// ModeChangedData carries the previous and new editor mode names.
type ModeChangedData struct {
	From string
	To   string
}

// StatusChangedData carries the new status message.
type StatusChangedData struct {
	Message string
}

// AppQuitData tells whether the buffer was saved on the way out.
type AppQuitData struct {
	Saved bool
}

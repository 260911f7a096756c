package event

import "testing"

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var calls []string
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "first:"+e.Data.(BufferSavedData).FilePath)
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "second")
		return true
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "third")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "notes.txt"})
	if len(calls) != 2 || calls[0] != "first:notes.txt" || calls[1] != "second" {
		t.Errorf("calls = %q", calls)
	}

	m.Dispatch(TypeAppQuit, nil)
	if len(calls) != 2 {
		t.Errorf("handler ran for an unsubscribed type")
	}
}

func TestDispatchOnNilManager(t *testing.T) {
	var m *Manager
	m.Dispatch(TypeAppReady, nil)
}

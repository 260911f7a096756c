// internal/core/search.go
package core

import (
	"github.com/bethropolis/dmacs/internal/logger"
)

// EnterSearch starts an incremental substring search from the cursor.
func (e *Editor) EnterSearch() {
	e.clipboard.BreakStreak()
	e.statusBefore = e.status
	e.find.Reset()
	e.setMode(ModeSearch)
	e.SetStatus(e.find.Status())
}

// SearchAppend extends the query by r and jumps to the first match at or
// after the cursor.
func (e *Editor) SearchAppend(r rune) {
	e.setSearchQuery(e.find.Query() + string(r))
}

// SearchBackspace drops the last rune of the query.
func (e *Editor) SearchBackspace() {
	q := []rune(e.find.Query())
	if len(q) == 0 {
		return
	}
	e.setSearchQuery(string(q[:len(q)-1]))
}

func (e *Editor) setSearchQuery(q string) {
	if p, ok := e.find.SetQuery(e.doc, q, e.cursor); ok {
		e.moveTo(p.Col, p.Line)
	}
	e.SetStatus(e.find.Status())
}

// SearchNext jumps to the following match, wrapping.
func (e *Editor) SearchNext() {
	if p, ok := e.find.Next(); ok {
		e.moveTo(p.Col, p.Line)
	}
	e.SetStatus(e.find.Status())
}

// SearchPrev jumps to the preceding match, wrapping.
func (e *Editor) SearchPrev() {
	if p, ok := e.find.Prev(); ok {
		e.moveTo(p.Col, p.Line)
	}
	e.SetStatus(e.find.Status())
}

// ExitSearch leaves search mode with the cursor on the current match and
// brings back the status message from before the search.
func (e *Editor) ExitSearch() {
	logger.Debugf("Editor: search %q ended at %v", e.find.Query(), e.cursor)
	e.find.Reset()
	e.setMode(ModeNormal)
	e.SetStatus(e.statusBefore)
	e.statusBefore = ""
}

const fuzzyPrompt = "FUZZY SEARCH: "

// EnterFuzzySearch opens the fuzzy line picker listing every line.
func (e *Editor) EnterFuzzySearch() {
	e.clipboard.BreakStreak()
	e.fuzzy.SetQuery(e.doc, "")
	e.setMode(ModeFuzzySearch)
	e.SetStatus(fuzzyPrompt)
}

// FuzzyAppend extends the fuzzy query by r.
func (e *Editor) FuzzyAppend(r rune) {
	e.fuzzy.SetQuery(e.doc, e.fuzzy.Query()+string(r))
	e.SetStatus(fuzzyPrompt + e.fuzzy.Query())
}

// FuzzyBackspace drops the last rune of the fuzzy query.
func (e *Editor) FuzzyBackspace() {
	q := []rune(e.fuzzy.Query())
	if len(q) == 0 {
		return
	}
	e.fuzzy.SetQuery(e.doc, string(q[:len(q)-1]))
	e.SetStatus(fuzzyPrompt + e.fuzzy.Query())
}

// FuzzyUp selects the previous match.
func (e *Editor) FuzzyUp() { e.fuzzy.Up() }

// FuzzyDown selects the next match.
func (e *Editor) FuzzyDown() { e.fuzzy.Down() }

// FuzzyAccept moves the cursor to the start of the selected line and closes the picker.
func (e *Editor) FuzzyAccept() {
	m, ok := e.fuzzy.Selected()
	if ok {
		e.moveTo(0, m.Line)
	}
	e.ExitFuzzySearch()
}

// ExitFuzzySearch closes the picker.
func (e *Editor) ExitFuzzySearch() {
	e.fuzzy.Reset()
	e.setMode(ModeNormal)
	e.SetStatus("")
}

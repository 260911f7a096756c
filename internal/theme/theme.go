// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the drawing code.
const (
	StyleDefault        = "Default"
	StyleDim            = "Dim"       // "#" lines and checked tasks
	StyleTask           = "Task"      // unchecked tasks
	StyleDelimiter      = "Delimiter" // the rule drawn for "---"
	StyleSelection      = "Selection"
	StyleSearchMatch    = "SearchMatch"
	StyleStatusBar      = "StatusBar"
	StyleStatusBarFile  = "StatusBar.File"
	StyleStatusBarRule  = "StatusBar.Rule"
	StylePanel          = "Panel"
	StylePanelSelected  = "Panel.Selected"
	StylePanelSeparator = "Panel.Separator"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, then the style of its base name (the part
// before the first dot), then "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Merge copies the styles of other over t.
func (t *Theme) Merge(other *Theme) {
	if other == nil {
		return
	}
	for name, style := range other.Styles {
		t.Styles[name] = style
	}
	logger.Infof("Theme '%s': applied %d styles from '%s'", t.Name, len(other.Styles), other.Name)
}

// Terminal returns the built-in theme. It only uses attributes so it reads
// on any terminal palette.
func Terminal() *Theme {
	base := tcell.StyleDefault
	return &Theme{
		Name: "Terminal",
		Styles: map[string]tcell.Style{
			StyleDefault:        base,
			StyleDim:            base.Dim(true),
			StyleTask:           base.Bold(true),
			StyleDelimiter:      base.Dim(true),
			StyleSelection:      base.Reverse(true),
			StyleSearchMatch:    base.Reverse(true),
			StyleStatusBar:      base,
			StyleStatusBarFile:  base.Bold(true),
			StyleStatusBarRule:  base.Dim(true),
			StylePanel:          base,
			StylePanelSelected:  base.Reverse(true),
			StylePanelSeparator: base.Dim(true),
		},
	}
}

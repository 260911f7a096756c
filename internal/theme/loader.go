// internal/theme/loader.go
package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// StyleDef is one [styles.<Name>] table. Unset fields are inherited.
type StyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
	Dim       *bool   `toml:"dim"`
}

// File is the layout of theme.toml.
type File struct {
	Name   string              `toml:"name"`
	Styles map[string]StyleDef `toml:"styles"`
}

var knownStyles = map[string]bool{
	StyleDefault: true, StyleDim: true, StyleTask: true, StyleDelimiter: true,
	StyleSelection: true, StyleSearchMatch: true,
	StyleStatusBar: true, StyleStatusBarFile: true, StyleStatusBarRule: true,
	StylePanel: true, StylePanelSelected: true, StylePanelSeparator: true,
}

// LoadThemeFromFile reads a theme file. Every style starts from the file's
// Default style. Styles that fail to parse are left out so the theme they
// are merged into keeps its own.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	var file File
	md, err := toml.DecodeFile(filePath, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme file '%s': %w", filePath, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme: unrecognized keys in '%s': %v", filePath, undecoded)
	}
	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	th := &Theme{Name: file.Name, Styles: make(map[string]tcell.Style, len(file.Styles))}
	base := tcell.StyleDefault
	if def, ok := file.Styles[StyleDefault]; ok {
		if style, err := def.apply(base); err != nil {
			logger.Warnf("Theme %s: style %s: %v", th.Name, StyleDefault, err)
		} else {
			base = style
			th.Styles[StyleDefault] = style
		}
	}
	for name, def := range file.Styles {
		if name == StyleDefault {
			continue
		}
		if !knownStyles[name] {
			logger.Warnf("Theme %s: unknown style %s", th.Name, name)
		}
		style, err := def.apply(base)
		if err != nil {
			logger.Warnf("Theme %s: style %s: %v", th.Name, name, err)
			continue
		}
		th.Styles[name] = style
	}
	logger.Debugf("Theme: loaded %s with %d styles", th.Name, len(th.Styles))
	return th, nil
}

// apply sets the fields of d on style.
func (d StyleDef) apply(style tcell.Style) (tcell.Style, error) {
	if d.Fg != nil {
		c, err := parseColorString(*d.Fg)
		if err != nil {
			return style, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(c)
	}
	if d.Bg != nil {
		c, err := parseColorString(*d.Bg)
		if err != nil {
			return style, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(c)
	}
	attrs := []struct {
		v   *bool
		set func(tcell.Style, bool) tcell.Style
	}{
		{d.Bold, tcell.Style.Bold},
		{d.Italic, tcell.Style.Italic},
		{d.Underline, func(s tcell.Style, on bool) tcell.Style { return s.Underline(on) }},
		{d.Reverse, tcell.Style.Reverse},
		{d.Dim, tcell.Style.Dim},
	}
	for _, a := range attrs {
		if a.v != nil {
			style = a.set(style, *a.v)
		}
	}
	return style, nil
}

// parseColorString accepts "#rrggbb", the color names tcell knows, "reset"
// and "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if c := tcell.GetColor(s); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color %q", s)
}

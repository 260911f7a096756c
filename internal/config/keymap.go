// internal/config/keymap.go
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/dmacs/internal/logger"
)

// KeymapFile is the layout of keymap.toml:
//
//	[bindings]
//	"ctrl+s" = "fuzzy_search"
//	"alt+s"  = "save"
type KeymapFile struct {
	Bindings map[string]string `toml:"bindings"`
}

// LoadKeymap reads the key bindings at path, or ~/.dmacs/keymap.toml when
// path is empty. A missing file yields no bindings.
func LoadKeymap(path string) (map[string]string, error) {
	if path == "" {
		path = DefaultPath(DefaultKeymapFileName)
		if path == "" {
			return nil, nil
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debugf("Keymap file not found at %s, using default bindings.", path)
		return nil, nil
	}

	var km KeymapFile
	metadata, err := toml.DecodeFile(path, &km)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keymap file '%s': %w", path, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Unknown keys in keymap file %s: %v", path, undecoded)
	}
	logger.Infof("Loaded %d key bindings from %s", len(km.Bindings), path)
	return km.Bindings, nil
}

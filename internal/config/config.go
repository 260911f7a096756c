// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/dmacs/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // [logger] table
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	UndoDebounceMs      int  `toml:"undo_debounce_ms"`
	SystemClipboard     bool `toml:"system_clipboard"`
	HorizontalMargin    int  `toml:"horizontal_margin"`
	NoExitOnSave        bool `toml:"no_exit_on_save"`
	BackupRetentionDays int  `toml:"backup_retention_days"`
}

// UndoDebounce returns the coalescing window as a duration.
func (e EditorConfig) UndoDebounce() time.Duration {
	return time.Duration(e.UndoDebounceMs) * time.Millisecond
}

// Retention returns how long backups and cursor records are kept.
func (e EditorConfig) Retention() time.Duration {
	return time.Duration(e.BackupRetentionDays) * 24 * time.Hour
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			UndoDebounceMs:      int(DefaultUndoDebounce / time.Millisecond),
			SystemClipboard:     SystemClipboard,
			HorizontalMargin:    DefaultHorizontalMargin,
			BackupRetentionDays: DefaultRetentionDays,
		},
	}
}

// DataDir returns ~/.dmacs.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory not found: %w", err)
	}
	return filepath.Join(home, DataDirName), nil
}

// DefaultPath returns the path of name inside the data directory, or "" if
// the home directory is unknown.
func DefaultPath(name string) string {
	dir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, name)
}

// loadFromFile decodes filePath over cfg. A missing file leaves cfg as it is.
// Unknown keys are returned so they can be reported once logging is up.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var unknown []string
	for _, key := range metadata.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// validate resets out-of-range values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.UndoDebounceMs <= 0 {
		c.Editor.UndoDebounceMs = defaults.Editor.UndoDebounceMs
	}
	if c.Editor.HorizontalMargin < 0 {
		c.Editor.HorizontalMargin = defaults.Editor.HorizontalMargin
	}
	if c.Editor.BackupRetentionDays <= 0 {
		c.Editor.BackupRetentionDays = defaults.Editor.BackupRetentionDays
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a configuration from defaults, the TOML file at configFilePath
// (or ~/.dmacs/config.toml when empty) and flag overrides. The unknown keys
// of the file are returned alongside.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath(DefaultConfigFileName)
	}

	var unknown []string
	var fileErr error
	if path != "" {
		unknown, fileErr = loadFromFile(path, cfg)
		if fileErr != nil {
			// keep going with defaults
			cfg = NewDefaultConfig()
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, unknown, fileErr
}

// LoadConfig loads the configuration once and reports unknown keys once the
// logger is ready. It should be called only from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, []string, error) {
	var unknown []string
	loadOnce.Do(func() {
		loadedConfig, unknown, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, unknown, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// Package logger provides configurable logging capabilities
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds all settings for the logger. It is decoded from the
// [logger] table of the config file.
type Config struct {
	// LogLevel is the minimum level to log: debug, info, warn or error.
	LogLevel string `toml:"level"`

	// LogFilePath is the output file. Empty disables logging, "-" means stderr.
	LogFilePath string `toml:"file"`

	// Tag filters. Disabled wins over enabled; an enabled list drops untagged records.
	EnabledTags  []string `toml:"enabled_tags"`
	DisabledTags []string `toml:"disabled_tags"`

	// Package filters match the directory of the calling file (e.g. "history", "core").
	EnabledPackages  []string `toml:"enabled_packages"`
	DisabledPackages []string `toml:"disabled_packages"`

	// File filters match the base name of the calling file (e.g. "editor.go").
	EnabledFiles  []string `toml:"enabled_files"`
	DisabledFiles []string `toml:"disabled_files"`

	level    slog.Leveler
	tags     filterSet
	packages filterSet
	files    filterSet
}

// filterSet is an enabled/disabled pair of lowercase lookup sets.
type filterSet struct {
	enabled  map[string]struct{}
	disabled map[string]struct{}
}

// allows reports whether key passes the set. Empty keys always pass.
func (f filterSet) allows(key string) bool {
	if key == "" {
		return true
	}
	key = strings.ToLower(key)
	if _, found := f.disabled[key]; found {
		return false
	}
	if f.enabled != nil {
		_, found := f.enabled[key]
		return found
	}
	return true
}

// NewConfig creates a new Config with default values
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// ParseLevel maps a level name onto a slog level. Unknown names yield info and false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// process converts the string options into lookup structures.
func (c *Config) process() {
	level, ok := ParseLevel(c.LogLevel)
	if !ok && debugFilter {
		fmt.Fprintf(os.Stderr, "[CONFIG PROCESS] unknown log level %q, using info\n", c.LogLevel)
	}
	c.level = level
	c.tags = filterSet{enabled: sliceToSet(c.EnabledTags), disabled: sliceToSet(c.DisabledTags)}
	c.packages = filterSet{enabled: sliceToSet(c.EnabledPackages), disabled: sliceToSet(c.DisabledPackages)}
	c.files = filterSet{enabled: sliceToSet(c.EnabledFiles), disabled: sliceToSet(c.DisabledFiles)}

	if debugFilter {
		fmt.Fprintf(os.Stderr, "[CONFIG PROCESS] packages enabled=%v disabled=%v\n", c.packages.enabled, c.packages.disabled)
	}
}

// sliceToSet lowercases items into a set; nil when there is nothing to match.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

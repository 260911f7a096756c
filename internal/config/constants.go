package config

import "time"

// Base application details
const AppName = "dmacs"
const DataDirName = ".dmacs" // under the home directory
const BackupDirName = "backup"
const CursorPositionsDirName = "cursor_positions"
const DefaultConfigFileName = "config.toml"
const DefaultKeymapFileName = "keymap.toml"
const DefaultLogFileName = "dmacs.log"
const DefaultThemeFileName = "theme.toml"

// Editing
const DefaultUndoDebounce = 500 * time.Millisecond
const DefaultMaxHistory = 1000
const DefaultHorizontalMargin = 10
const SystemClipboard = true

// Files kept under DataDirName are pruned after this many days.
const DefaultRetentionDays = 3

// Input Behavior
const QuitConfirmTimeout = 2 * time.Second

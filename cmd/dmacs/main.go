// cmd/dmacs/main.go
package main

import (
	"fmt"
	"io"
	stlog "log" // for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/dmacs/internal/app"
	"github.com/bethropolis/dmacs/internal/config"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/theme"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	flags := &config.Flags{}
	args := flags.ParseFlags()
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}
	if len(args) > 1 {
		stlog.Fatalf("usage: %s [flags] [file]", config.AppName)
	}
	var filePath string
	if len(args) == 1 {
		filePath = args[0]
	}

	cfg, unknownKeys, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	// --- Logger Initialization ---
	logOutput, closeLog := openLog(cfg.Logger.LogFilePath)
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)
	logger.SetDebugFilter(*flags.DebugLog)

	logger.Infof("Starting %s %s", config.AppName, version)
	if cfgErr != nil {
		logger.Warnf("Config: %v (using defaults)", cfgErr)
	}
	for _, key := range unknownKeys {
		logger.Warnf("Config: unknown key %q", key)
	}

	keymap, err := config.LoadKeymap(*flags.KeymapFilePath)
	if err != nil {
		logger.Warnf("Keymap: %v (using defaults)", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		logger.Warnf("%v; backups and cursor positions disabled", err)
	}

	// --- Create and Run App ---
	dmacsApp, err := app.NewApp(app.Options{
		FilePath: filePath,
		Config:   cfg,
		Keymap:   keymap,
		Theme:    loadTheme(),
		DataDir:  dataDir,
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}

	if err := dmacsApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// openLog opens the log destination. An empty path discards logs and "-"
// writes to stderr.
func openLog(path string) (io.Writer, func()) {
	switch path {
	case "":
		return nil, func() {}
	case "-":
		return os.Stderr, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", path, err)
	}
	return f, func() { f.Close() }
}

// loadTheme merges ~/.dmacs/theme.toml over the terminal theme when present.
func loadTheme() *theme.Theme {
	base := theme.Terminal()
	path := config.DefaultPath(config.DefaultThemeFileName)
	if path == "" {
		return base
	}
	if _, err := os.Stat(path); err != nil {
		return base
	}
	user, err := theme.LoadThemeFromFile(path)
	if err != nil {
		logger.Warnf("Theme: %v", err)
		return base
	}
	base.Merge(user)
	return base
}

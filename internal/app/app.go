// internal/app/app.go
package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bethropolis/dmacs/internal/backup"
	"github.com/bethropolis/dmacs/internal/buffer"
	"github.com/bethropolis/dmacs/internal/config"
	"github.com/bethropolis/dmacs/internal/core"
	"github.com/bethropolis/dmacs/internal/core/clipboard"
	"github.com/bethropolis/dmacs/internal/event"
	"github.com/bethropolis/dmacs/internal/input"
	"github.com/bethropolis/dmacs/internal/logger"
	"github.com/bethropolis/dmacs/internal/modehandler"
	"github.com/bethropolis/dmacs/internal/persistence"
	"github.com/bethropolis/dmacs/internal/theme"
	"github.com/bethropolis/dmacs/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Options configures NewApp.
type Options struct {
	FilePath string
	Config   *config.Config
	Keymap   map[string]string // user bindings merged over the defaults
	Theme    *theme.Theme      // nil uses the terminal theme

	// DataDir holds backups and cursor positions. Empty disables both.
	DataDir string

	// Screen replaces the terminal, e.g. with a simulation screen.
	Screen    tcell.Screen
	Clipboard clipboard.System // overrides the system clipboard when set
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	tuiManager   *tui.TUI
	editor       *core.Editor
	eventManager *event.Manager
	modeHandler  *modehandler.ModeHandler
	backups      *backup.Manager
	positions    *persistence.Store
	cfg          *config.Config

	// Channels managed by the App
	quit          chan struct{}
	done          chan struct{}
	events        chan tcell.Event
	signals       chan os.Signal
	redrawRequest chan struct{}

	// ctrlC counts interrupts since the last other key
	ctrlC       atomic.Int32
	quitTimer   *time.Timer
	quitArm     atomic.Int64 // bumped each time quitTimer is armed
	quitTimeout time.Duration
}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	doc := buffer.New()
	var loadErr error
	if opts.FilePath != "" {
		loadErr = doc.Load(opts.FilePath)
		if loadErr != nil {
			logger.Errorf("App: %v", loadErr)
			// keep the name so a save can still create the file
			doc.SetFilePath(opts.FilePath)
		}
	}

	system := opts.Clipboard
	if system == nil && cfg.Editor.SystemClipboard {
		system = clipboard.OS()
	}
	editor := core.NewEditor(doc, core.Options{
		UndoDebounce:     cfg.Editor.UndoDebounce(),
		MaxHistory:       config.DefaultMaxHistory,
		Clipboard:        system,
		HorizontalMargin: cfg.Editor.HorizontalMargin,
	})
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	var tuiManager *tui.TUI
	var err error
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, opts.Theme)
	} else {
		tuiManager, err = tui.New(opts.Theme)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	quitChan := make(chan struct{})
	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(opts.Keymap),
		EventManager:   eventManager,
		QuitSignal:     quitChan,
		NoExitOnSave:   cfg.Editor.NoExitOnSave,
	})

	a := &App{
		tuiManager:    tuiManager,
		editor:        editor,
		eventManager:  eventManager,
		modeHandler:   modeHandler,
		cfg:           cfg,
		quit:          quitChan,
		done:          make(chan struct{}),
		events:        make(chan tcell.Event),
		signals:       make(chan os.Signal, 1),
		redrawRequest: make(chan struct{}, 1),
		quitTimeout:   config.QuitConfirmTimeout,
	}

	if opts.DataDir != "" {
		a.openDataDir(opts.DataDir)
	}

	eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	eventManager.Subscribe(event.TypeAppQuit, a.handleAppQuit)

	width, height := tuiManager.Size()
	editor.Resize(height, width)

	if loadErr != nil {
		editor.SetStatus(fmt.Sprintf("Error loading file: %v", loadErr))
	} else if doc.FilePath() != "" {
		a.restoreCursor()
		eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: doc.FilePath()})
	}

	return a, nil
}

// openDataDir sets up backups and cursor positions under dir and prunes
// stale backups. A directory that cannot be created only disables the feature.
func (a *App) openDataDir(dir string) {
	backups, err := backup.NewManager(filepath.Join(dir, config.BackupDirName))
	if err != nil {
		logger.Warnf("App: backups disabled: %v", err)
	} else {
		a.backups = backups
		a.editor.SetBackups(backups)
		if n, err := backups.Clean(a.cfg.Editor.Retention()); err != nil {
			logger.Warnf("App: backup cleanup failed: %v", err)
		} else if n > 0 {
			logger.Infof("App: removed %d old backups", n)
		}
	}

	positions, err := persistence.NewStore(filepath.Join(dir, config.CursorPositionsDirName))
	if err != nil {
		logger.Warnf("App: cursor positions disabled: %v", err)
		return
	}
	a.positions = positions
}

// Editor returns the editor driven by the app.
func (a *App) Editor() *core.Editor { return a.editor }

// Run starts the application's main event and drawing loop. It returns once
// the editor quits or the terminal goes away.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer close(a.done)

	signal.Notify(a.signals, os.Interrupt)
	defer signal.Stop(a.signals)

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.drawEditor()

	for {
		select {
		case <-a.quit: // closed by the ModeHandler
			a.shutdown()
			return nil
		case ev, ok := <-a.events:
			if !ok {
				a.shutdown()
				return nil
			}
			if a.handleEvent(ev) {
				a.shutdown()
				return nil
			}
		case <-a.signals:
			if a.interrupt() {
				a.shutdown()
				return nil
			}
		case <-a.redrawRequest:
		}
		a.drawEditor()
	}
}

// eventLoop forwards terminal events to Run, which owns the editor.
func (a *App) eventLoop() {
	defer close(a.events)
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.done:
			return
		}
	}
}

// handleEvent applies one terminal event and reports whether the app must exit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		width, height := a.tuiManager.Size()
		a.editor.Resize(height, width)
		a.editor.ScrollToCursor()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return a.interrupt()
		}
		a.ctrlC.Store(0)
		a.modeHandler.HandleKeyEvent(ev)
	}
	return false
}

// interrupt handles Ctrl-C and SIGINT. The first one asks for confirmation,
// a second within the timeout quits without saving.
func (a *App) interrupt() bool {
	if a.ctrlC.Add(1) >= 2 {
		logger.Infof("App: interrupted twice, quitting without saving")
		a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{Saved: false})
		return true
	}
	a.editor.SetStatus(quitPrompt)
	if a.quitTimer != nil {
		a.quitTimer.Stop()
	}
	arm := a.quitArm.Add(1)
	a.quitTimer = time.AfterFunc(a.quitTimeout, func() {
		// a timer that fired while being replaced must not reset the new window
		if a.quitArm.Load() == arm && a.ctrlC.CompareAndSwap(1, 0) {
			a.requestRedraw()
		}
	})
	return false
}

const quitPrompt = "Press Ctrl+C again to quit."

// shutdown stores the view of the file for the next session.
func (a *App) shutdown() {
	if a.editor.Document().IsDirty() {
		logger.Warnf("App: exited with unsaved changes")
	}
	a.saveCursor()
	logger.Infof("App: exiting")
}

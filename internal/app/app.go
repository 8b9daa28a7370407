package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/config"
	"github.com/bethropolis/pixie/internal/core"
	"github.com/bethropolis/pixie/internal/core/clipboard"
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/input"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/modehandler"
	"github.com/bethropolis/pixie/internal/plugin"
	"github.com/bethropolis/pixie/internal/statusbar"
	"github.com/bethropolis/pixie/internal/theme"
	"github.com/bethropolis/pixie/internal/tool"
	"github.com/bethropolis/pixie/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	clipboard     *clipboard.Manager
	editorAPI     plugin.EditorAPI

	mu           sync.Mutex
	snapshotPath string // last file saved or loaded

	// Mouse painting state; only touched from the event loop.
	dragging    bool
	lastDragRow int
	lastDragCol int

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates the application on the real terminal. snapshotPath, if
// non-empty, is loaded into the session.
func NewApp(cfg *config.Config, snapshotPath string) (*App, error) {
	themeManager := newThemeManager(cfg)
	tuiManager, err := tui.New(themeManager.Current().GetStyle(theme.StyleDefault))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(cfg, snapshotPath, tuiManager, themeManager, clipboard.NewManager(cfg.Editor.SystemClipboard))
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

// NewAppWithScreen builds the application on s with an in-process
// clipboard backend. Used by tests with a tcell.SimulationScreen.
func NewAppWithScreen(cfg *config.Config, snapshotPath string, s tcell.Screen, cb clipboard.Backend) (*App, error) {
	themeManager := newThemeManager(cfg)
	tuiManager, err := tui.NewWithScreen(s, themeManager.Current().GetStyle(theme.StyleDefault))
	if err != nil {
		return nil, err
	}
	a, err := newApp(cfg, snapshotPath, tuiManager, themeManager, clipboard.NewManagerWithBackend(cb))
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, snapshotPath string, tuiManager *tui.TUI, themeManager *theme.Manager, cb *clipboard.Manager) (*App, error) {
	opts, err := editorOptions(cfg)
	if err != nil {
		return nil, err
	}
	editor, err := core.NewEditor(opts)
	if err != nil {
		return nil, fmt.Errorf("editor initialization failed: %w", err)
	}

	statusBar := statusbar.New(statusBarConfig(themeManager.Current()))
	// The editor publishes its changes here; the app and plugins listen.
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		clipboard:     cb,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}
	a.editorAPI = newEditorAPI(a)

	// Subscribe before loading so the loaded event sets the snapshot path.
	a.subscribeEvents()

	if snapshotPath != "" {
		if err := editor.LoadFile(snapshotPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load '%s': %w", snapshotPath, err)
			}
			// A new file: remember the name so the first save goes there.
			logger.Infof("App: '%s' does not exist yet, starting empty", snapshotPath)
			a.setSnapshotPath(snapshotPath)
		}
	}

	// Built-in commands first so a plugin cannot take their names.
	registerAppCommands(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: plugin registration incomplete: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	// Initial viewport; drawing updates it on every frame.
	width, height := tuiManager.Size()
	editor.SetViewSize(tui.ViewSize(width, height))
	return a, nil
}

// editorOptions turns the validated config into editor options.
func editorOptions(cfg *config.Config) (core.Options, error) {
	pen, err := color.Parse(cfg.Editor.PenColor)
	if err != nil {
		return core.Options{}, err
	}
	bg, err := color.Parse(cfg.Editor.BackgroundColor)
	if err != nil {
		return core.Options{}, err
	}
	t, err := tool.Parse(cfg.Editor.Tool)
	if err != nil {
		logger.Warnf("App: %v, starting with the pen", err)
		t = tool.Pen
	}
	return core.Options{
		Size:       cfg.Editor.GridSize,
		Pen:        pen,
		Background: bg,
		GridLines:  cfg.Editor.GridLines,
		Tool:       t,
		MaxHistory: cfg.Editor.MaxHistory,
	}, nil
}

// newThemeManager loads user themes and applies the configured one.
func newThemeManager(cfg *config.Config) *theme.Manager {
	dir := theme.DefaultThemesDir(config.AppName, config.ThemesDirName)
	mgr := theme.NewManager(dir)

	choice := cfg.Theme
	// No explicit choice: a theme.toml in the themes dir acts as the default.
	if choice == "" && dir != "" {
		if p := filepath.Join(dir, config.DefaultThemeFileName); fileExists(p) {
			choice = p
		}
	}
	if choice == "" {
		return mgr
	}
	// The config value is either a path or a theme name.
	if fileExists(choice) {
		if err := mgr.LoadFile(choice); err != nil {
			logger.Warnf("App: theme file '%s': %v", choice, err)
		}
	} else if err := mgr.SetTheme(choice); err != nil {
		logger.Warnf("App: %v", err)
	}
	return mgr
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

func statusBarConfig(t *theme.Theme) statusbar.Config {
	return statusbar.Config{
		StyleDefault:   t.GetStyle(theme.StyleStatusBar),
		StyleModified:  t.GetStyle(theme.StyleStatusBarModified),
		StyleMessage:   t.GetStyle(theme.StyleStatusBarMessage),
		StyleCommand:   t.GetStyle(theme.StyleStatusBarCommand),
		MessageTimeout: config.MessageTimeout,
	}
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins() // Runs before Close, while the screen is still up

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Pixie - Space paint | p/e/f/s/L/c tools | : commands | q quit")
	a.requestRedraw()

	// Drawing happens only on this goroutine.
	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.Modified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop handles TUI events until the screen is finalized.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return // Screen finalized
		}
		if a.handleEvent(ev) {
			a.requestRedraw()
		}
	}
}

// handleEvent processes one terminal event and reports whether a redraw
// is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch eventData := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(eventData)
	case *tcell.EventMouse:
		return a.handleMouse(eventData)
	}
	return false
}

// handleMouse paints on press and on every new cell entered while the
// primary button is held.
func (a *App) handleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		a.dragging = false
		return false
	}
	x, y := ev.Position()
	_, height := a.tuiManager.Size()
	viewY, viewX := a.editor.GetViewport()
	row, col, ok := tui.CellAt(x, y, viewY, viewX, a.editor.Size(), height)
	if !ok {
		return false
	}
	// Motion inside the same cell would record another history entry.
	if a.dragging && row == a.lastDragRow && col == a.lastDragCol {
		return false
	}
	a.dragging = true
	a.lastDragRow, a.lastDragCol = row, col

	a.editor.SetCursor(row, col)
	if err := a.editor.OnCellActivate(row, col); err != nil {
		a.statusBar.SetTemporaryMessage("Paint failed: %v", err)
	}
	return true
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// GetModeHandler allows the API adapter to access the mode handler for command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// GetThemeManager returns the theme manager.
func (a *App) GetThemeManager() *theme.Manager {
	return a.themeManager
}

// SetTheme changes the active theme and restyles the screen.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	current := a.themeManager.Current()
	a.statusBar.SetConfig(statusBarConfig(current))
	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
	a.requestRedraw()
	return nil
}

func (a *App) setSnapshotPath(p string) {
	a.mu.Lock()
	a.snapshotPath = p
	a.mu.Unlock()
}

// SnapshotPath returns the file last saved or loaded, or "".
func (a *App) SnapshotPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotPath
}

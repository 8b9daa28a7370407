// Package plugintest provides an in-memory EditorAPI for plugin and
// command tests.
package plugintest

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/core"
	"github.com/bethropolis/pixie/internal/core/clipboard"
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/export"
	"github.com/bethropolis/pixie/internal/plugin"
	"github.com/bethropolis/pixie/internal/theme"
	"github.com/bethropolis/pixie/internal/tool"
	"github.com/gdamore/tcell/v2"
)

// memBackend is a clipboard that never touches the system.
type memBackend struct {
	mu   sync.Mutex
	text string
}

func (b *memBackend) ReadAll() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text, nil
}

func (b *memBackend) WriteAll(s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = s
	return nil
}

// API is a plugin.EditorAPI over a real editor session.
type API struct {
	Editor    *core.Editor
	Events    *event.Manager
	Themes    *theme.Manager
	Clipboard *clipboard.Manager
	Dir       string                            // default save/export directory
	Config    map[string]map[string]interface{} // plugin -> key -> value

	mu        sync.Mutex
	commands  map[string]plugin.CommandFunc
	messages  []string
	quit      int
	saveError error
}

var _ plugin.EditorAPI = (*API)(nil)

// New returns an API over a size x size editor storing files in dir.
func New(size int, dir string) *API {
	ed, err := core.NewEditor(core.Options{
		Size:       size,
		Pen:        color.Black,
		Background: color.White,
		GridLines:  true,
	})
	if err != nil {
		panic(err)
	}
	events := event.NewManager()
	ed.SetEventManager(events)
	return &API{
		Editor:    ed,
		Events:    events,
		Themes:    theme.NewManager(""),
		Clipboard: clipboard.NewManagerWithBackend(&memBackend{}),
		Dir:       dir,
		Config:    make(map[string]map[string]interface{}),
		commands:  make(map[string]plugin.CommandFunc),
	}
}

// FailSaves makes SaveSnapshot return err until called with nil.
func (a *API) FailSaves(err error) {
	a.mu.Lock()
	a.saveError = err
	a.mu.Unlock()
}

// Run executes a registered command.
func (a *API) Run(name string, args ...string) error {
	a.mu.Lock()
	fn, ok := a.commands[name]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	return fn(args)
}

// Commands lists registered command names, sorted.
func (a *API) Commands() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.commands))
	for n := range a.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Messages returns every status message set so far.
func (a *API) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

// LastMessage returns the most recent status message, or "".
func (a *API) LastMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.messages) == 0 {
		return ""
	}
	return a.messages[len(a.messages)-1]
}

// QuitRequests counts RequestQuit calls.
func (a *API) QuitRequests() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quit
}

func (a *API) path(p, def string) string {
	if p == "" {
		return filepath.Join(a.Dir, def)
	}
	return p
}

func (a *API) GetGridSize() int { return a.Editor.Size() }
func (a *API) GetCell(row, col int) (color.RGB, bool, error) {
	return a.Editor.CellView(row, col)
}
func (a *API) IsModified() bool { return a.Editor.Modified() }
func (a *API) ActivateCell(row, col int) error { return a.Editor.OnCellActivate(row, col) }
func (a *API) SetTool(t tool.Tool) { a.Editor.OnToolChange(t) }
func (a *API) GetTool() tool.Tool { return a.Editor.Tool() }
func (a *API) SetPenColor(c color.RGB) { a.Editor.OnPenColorChange(c) }
func (a *API) GetPenColor() color.RGB { return a.Editor.PenColor() }
func (a *API) SetBackgroundColor(c color.RGB) { a.Editor.OnBackgroundColorChange(c) }
func (a *API) GetBackgroundColor() color.RGB { return a.Editor.BackgroundColor() }
func (a *API) SetGridLines(on bool) { a.Editor.SetGridLines(on) }
func (a *API) GetGridLines() bool { return a.Editor.GridLines() }
func (a *API) Undo() (bool, error) { return a.Editor.OnUndo() }
func (a *API) Redo() (bool, error) { return a.Editor.OnRedo() }
func (a *API) Resize(size int) error { return a.Editor.OnResize(size) }
func (a *API) Clear() error { return a.Editor.OnClear() }
func (a *API) CopySnapshot() error { return a.Editor.CopySnapshot(a.Clipboard) }
func (a *API) PasteSnapshot() error { return a.Editor.PasteSnapshot(a.Clipboard) }
func (a *API) GetThemeStyle(name string) tcell.Style { return a.Themes.Current().GetStyle(name) }
func (a *API) SetTheme(name string) error { return a.Themes.SetTheme(name) }
func (a *API) GetTheme() *theme.Theme { return a.Themes.Current() }
func (a *API) ListThemes() []string { return a.Themes.ListThemes() }

func (a *API) SaveSnapshot(path string) (string, error) {
	a.mu.Lock()
	err := a.saveError
	a.mu.Unlock()
	if err != nil {
		return "", err
	}
	path = a.path(path, "data.json")
	return path, a.Editor.SaveFile(path)
}

func (a *API) LoadSnapshot(path string) (string, error) {
	path = a.path(path, "data.json")
	return path, a.Editor.LoadFile(path)
}

func (a *API) ExportPNG(path string) (string, error) {
	path = a.path(path, "screenshot.png")
	view := a.Editor.View()
	return path, export.SavePNG(path, view, export.Options{
		CellSize:  4,
		GridLines: true,
		LineColor: export.LineColorFor(view.Background),
	})
}

func (a *API) DispatchEvent(t event.Type, data interface{}) { a.Events.Dispatch(t, data) }

func (a *API) SubscribeEvent(t event.Type, h event.Handler) { a.Events.Subscribe(t, h) }

func (a *API) RegisterCommand(name string, fn plugin.CommandFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.commands[name] = fn
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	a.messages = append(a.messages, fmt.Sprintf(format, args...))
	a.mu.Unlock()
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.Config[pluginName][key]
	return v, ok
}

func (a *API) RequestQuit(force bool) {
	a.mu.Lock()
	a.quit++
	a.mu.Unlock()
}

// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/theme"
	"github.com/bethropolis/pixie/internal/tool"
	"github.com/gdamore/tcell/v2"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor core.
// Every mutation goes through the editor session, so plugins get the same
// locking and history guarantees as keyboard input.
type EditorAPI interface {
	// --- Grid Access ---
	GetGridSize() int
	GetCell(row, col int) (c color.RGB, filled bool, err error)
	IsModified() bool

	// --- Editing ---
	ActivateCell(row, col int) error
	SetTool(t tool.Tool)
	GetTool() tool.Tool
	SetPenColor(c color.RGB)
	GetPenColor() color.RGB
	SetBackgroundColor(c color.RGB)
	GetBackgroundColor() color.RGB
	SetGridLines(on bool)
	GetGridLines() bool
	Undo() (bool, error)
	Redo() (bool, error)
	Resize(size int) error
	Clear() error

	// --- Files & Clipboard ---
	// An empty path uses the configured default location.
	SaveSnapshot(path string) (string, error)
	LoadSnapshot(path string) (string, error)
	ExportPNG(path string) (string, error)
	CopySnapshot() error
	PasteSnapshot() error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)

	// --- Application ---
	RequestQuit(force bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}

package app

import (
	"fmt"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/commands"
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/export"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/plugin"
	"github.com/bethropolis/pixie/internal/theme"
	"github.com/bethropolis/pixie/internal/tool"
	"github.com/gdamore/tcell/v2"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

var _ commands.ThemeAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Grid Access ---

func (api *appEditorAPI) GetGridSize() int {
	return api.app.editor.Size()
}

func (api *appEditorAPI) GetCell(row, col int) (color.RGB, bool, error) {
	return api.app.editor.CellView(row, col)
}

func (api *appEditorAPI) IsModified() bool {
	return api.app.editor.Modified()
}

// --- Editing ---

func (api *appEditorAPI) ActivateCell(row, col int) error {
	return api.app.editor.OnCellActivate(row, col)
}

func (api *appEditorAPI) SetTool(t tool.Tool) {
	api.app.editor.OnToolChange(t)
}

func (api *appEditorAPI) GetTool() tool.Tool {
	return api.app.editor.Tool()
}

func (api *appEditorAPI) SetPenColor(c color.RGB) {
	api.app.editor.OnPenColorChange(c)
}

func (api *appEditorAPI) GetPenColor() color.RGB {
	return api.app.editor.PenColor()
}

func (api *appEditorAPI) SetBackgroundColor(c color.RGB) {
	api.app.editor.OnBackgroundColorChange(c)
}

func (api *appEditorAPI) GetBackgroundColor() color.RGB {
	return api.app.editor.BackgroundColor()
}

func (api *appEditorAPI) SetGridLines(on bool) {
	api.app.editor.SetGridLines(on)
}

func (api *appEditorAPI) GetGridLines() bool {
	return api.app.editor.GridLines()
}

func (api *appEditorAPI) Undo() (bool, error) {
	return api.app.editor.OnUndo()
}

func (api *appEditorAPI) Redo() (bool, error) {
	return api.app.editor.OnRedo()
}

func (api *appEditorAPI) Resize(size int) error {
	return api.app.editor.OnResize(size)
}

func (api *appEditorAPI) Clear() error {
	return api.app.editor.OnClear()
}

// --- Files & Clipboard ---

// snapshotTarget resolves the file for save and load. The last file the
// session touched wins over the configured default.
func (api *appEditorAPI) snapshotTarget(path string) string {
	if path != "" {
		return path
	}
	if p := api.app.SnapshotPath(); p != "" {
		return p
	}
	cfg := api.app.cfg
	return cfg.SavePath(cfg.Files.SnapshotName)
}

func (api *appEditorAPI) SaveSnapshot(path string) (string, error) {
	path = api.snapshotTarget(path)
	return path, api.app.editor.SaveFile(path)
}

func (api *appEditorAPI) LoadSnapshot(path string) (string, error) {
	path = api.snapshotTarget(path)
	return path, api.app.editor.LoadFile(path)
}

func (api *appEditorAPI) ExportPNG(path string) (string, error) {
	cfg := api.app.cfg
	// Exports never replace the snapshot file, so they get their own default.
	if path == "" {
		path = cfg.SavePath(cfg.Files.ExportName)
	}
	view := api.app.editor.View()
	err := export.SavePNG(path, view, export.Options{
		CellSize:  cfg.Export.CellSize,
		GridLines: cfg.Export.GridLines,
		Ruler:     cfg.Export.Ruler,
		LineColor: export.LineColorFor(view.Background),
	})
	if err != nil {
		logger.Errorf("API: export to '%s' failed: %v", path, err)
	}
	return path, err
}

func (api *appEditorAPI) CopySnapshot() error {
	return api.app.editor.CopySnapshot(api.app.clipboard)
}

func (api *appEditorAPI) PasteSnapshot() error {
	return api.app.editor.PasteSnapshot(api.app.clipboard)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app.modeHandler == nil {
		return fmt.Errorf("mode handler not initialized")
	}
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

func (api *appEditorAPI) SetTheme(name string) error {
	return api.app.SetTheme(name)
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Configuration ---

// GetPluginConfigValue exposes the config sections plugins know about.
func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	cfg := api.app.cfg
	// Only autosave has settings for now; other plugins get (nil, false).
	switch pluginName {
	case "autosave":
		switch key {
		case "enabled":
			return cfg.Autosave.Enabled, true
		case "interval":
			return cfg.Autosave.Interval.Duration, true
		}
	}
	return nil, false
}

// --- Application ---

func (api *appEditorAPI) RequestQuit(force bool) {
	api.app.modeHandler.RequestQuit(force)
}

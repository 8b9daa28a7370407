package app

import (
	"github.com/bethropolis/pixie/internal/statusbar"
	"github.com/bethropolis/pixie/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	currentTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()
	tui.DrawGrid(a.tuiManager, a.editor, currentTheme)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.SnapshotPath(), a.editor.Modified())
	a.statusBar.SetCursorInfo(a.editor.Cursor())

	gridLines := "OFF"
	if a.editor.GridLines() {
		gridLines = "ON"
	}
	a.statusBar.SetCanvasInfo(statusbar.CanvasInfo{
		Tool:       a.editor.Tool().String(),
		Pen:        a.editor.PenColor().Hex(),
		Background: a.editor.BackgroundColor().Hex(),
		Size:       a.editor.Size(),
		GridLines:  gridLines,
	})
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentMode().String())
}

// SetStatusMessage shows a temporary message and redraws.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}

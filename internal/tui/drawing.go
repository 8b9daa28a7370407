// internal/tui/drawing.go
package tui

import (
	"github.com/bethropolis/pixie/internal/core"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// CellWidth is how many terminal columns one grid cell occupies, which
// keeps cells roughly square in most fonts.
const CellWidth = 2

const (
	statusBarHeight = 1   // Reserved line at the bottom
	gridLineRune    = '▏' // Thin left border drawn in the first column of a cell
	cursorLeft      = '['
	cursorRight     = ']'
)

// ViewSize returns how many cells fit in a width x height terminal.
func ViewSize(width, height int) (cols, rows int) {
	return max(width/CellWidth, 0), max(height-statusBarHeight, 0)
}

// CellAt maps a screen position to a grid cell given the viewport origin.
// ok is false for positions outside the grid or on the status bar.
func CellAt(x, y, viewY, viewX, size, screenHeight int) (row, col int, ok bool) {
	// The status bar occupies the last line; clicks there paint nothing.
	if x < 0 || y < 0 || y >= screenHeight-statusBarHeight {
		return 0, 0, false
	}
	row = y + viewY
	col = x/CellWidth + viewX
	if row >= size || col >= size {
		return 0, 0, false
	}
	return row, col, true
}

// DrawGrid draws the visible part of the canvas using the active theme.
func DrawGrid(tuiManager *TUI, editor *core.Editor, activeTheme *theme.Theme) {
	if activeTheme == nil {
		logger.Warnf("DrawGrid called with nil theme, using package default.")
		activeTheme = &theme.PixieDark
	}
	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	gridLineStyle := activeTheme.GetStyle(theme.StyleGridLine)
	cursorStyle := activeTheme.GetStyle(theme.StyleCursor)
	// Only the foregrounds come from the theme; each cell paints its own
	// color as the background.
	lineFg, _, _ := gridLineStyle.Decompose()
	cursorFg, _, cursorAttrs := cursorStyle.Decompose()

	width, height := tuiManager.Size()
	cols, rows := ViewSize(width, height)
	if cols <= 0 || rows <= 0 {
		return
	}
	// Tell the editor how much fits so cursor moves scroll correctly.
	editor.SetViewSize(cols, rows)

	// One consistent copy of the grid for the whole frame.
	view := editor.View()
	viewY, viewX := editor.GetViewport()
	curRow, curCol := editor.Cursor()
	s := tuiManager.screen

	for y := 0; y < rows; y++ {
		// Clear the whole line first: the grid may be narrower than the screen.
		for x := 0; x < width; x++ {
			s.SetContent(x, y, ' ', nil, defaultStyle)
		}
		row := y + viewY
		if row >= view.Size {
			continue
		}
		for c := 0; c < cols; c++ {
			col := c + viewX
			if col >= view.Size {
				break
			}
			bg := view.At(row, col).TCell()
			cellStyle := tcell.StyleDefault.Background(bg)
			left, right := ' ', ' '
			leftStyle := cellStyle
			if view.GridLines {
				left = gridLineRune
				leftStyle = cellStyle.Foreground(lineFg)
			}
			// The cursor takes both columns and hides the grid line.
			if row == curRow && col == curCol {
				left, right = cursorLeft, cursorRight
				leftStyle = cellStyle.Foreground(cursorFg).Attributes(cursorAttrs)
				cellStyle = leftStyle
			}
			x := c * CellWidth
			s.SetContent(x, y, left, nil, leftStyle)
			s.SetContent(x+1, y, right, nil, cellStyle)
		}
	}
}

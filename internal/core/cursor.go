package core

// Cursor returns the keyboard cursor cell.
func (e *Editor) Cursor() (row, col int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.cursorRow, e.cursorCol
}

// GetViewport returns the top-left visible cell.
func (e *Editor) GetViewport() (int, int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.ViewportY, e.ViewportX
}

// SetViewSize updates how many cells fit on screen. Called on resize or
// before drawing.
func (e *Editor) SetViewSize(cols, rows int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.viewWidth = max(cols, 0)
	e.viewHeight = max(rows, 0)
	e.scrollToCursor()
}

// MoveCursor moves the keyboard cursor, clamped to the grid.
func (e *Editor) MoveCursor(deltaRow, deltaCol int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.cursorRow += deltaRow
	e.cursorCol += deltaCol
	e.clampCursor()
}

// SetCursor places the keyboard cursor, clamped to the grid.
func (e *Editor) SetCursor(row, col int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.cursorRow, e.cursorCol = row, col
	e.clampCursor()
}

// ActivateCursor applies the active tool at the keyboard cursor.
func (e *Editor) ActivateCursor() error {
	row, col := e.Cursor()
	return e.OnCellActivate(row, col)
}

// clampCursor keeps the cursor on the grid and in view. Caller holds the lock.
func (e *Editor) clampCursor() {
	n := e.grid.Rows()
	e.cursorRow = min(max(e.cursorRow, 0), n-1)
	e.cursorCol = min(max(e.cursorCol, 0), n-1)
	e.scrollToCursor()
}

// scrollToCursor adjusts the viewport incorporating ScrollOff.
func (e *Editor) scrollToCursor() {
	n := e.grid.Rows()
	e.ViewportY = scrollAxis(e.ViewportY, e.cursorRow, e.viewHeight, n, e.ScrollOff)
	e.ViewportX = scrollAxis(e.ViewportX, e.cursorCol, e.viewWidth, n, e.ScrollOff)
}

// scrollAxis returns the new first visible index along one axis.
func scrollAxis(top, pos, view, total, scrollOff int) int {
	if view <= 0 || total <= view {
		return 0
	}
	// Effective scrolloff cannot be larger than half the view.
	off := scrollOff
	if off*2 >= view {
		off = (view - 1) / 2
	}
	if pos < top+off {
		top = pos - off
	} else if pos >= top+view-off {
		top = pos - view + off + 1
	}
	return min(max(top, 0), total-view)
}

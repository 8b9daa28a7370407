// internal/grid/cell.go
package grid

import "github.com/bethropolis/pixie/internal/color"

// Cell is a single grid unit. It keeps every color it has been painted in
// an append-only log together with a cursor marking the displayed entry.
// Undo and redo move the cursor; the entries past it are kept until the
// next fresh edit trims them.
type Cell struct {
	row, col int
	filled   bool
	history  []color.RGB
	cursor   int // -1 while the cell has never been painted
}

func newCell(row, col int) *Cell {
	return &Cell{row: row, col: col, cursor: -1}
}

// Row returns the cell's zero-based row.
func (c *Cell) Row() int { return c.row }

// Col returns the cell's zero-based column.
func (c *Cell) Col() int { return c.col }

// Filled reports whether the cell currently shows ink rather than background.
func (c *Cell) Filled() bool { return c.filled }

// Cursor returns the index of the displayed history entry.
func (c *Cell) Cursor() int { return c.cursor }

// HistoryLen returns the number of entries in the color log, including
// entries past the cursor that are kept for redo.
func (c *Cell) HistoryLen() int { return len(c.history) }

// Color returns the entry under the cursor. ok is false when the cursor
// does not point into the log.
func (c *Cell) Color() (col color.RGB, ok bool) {
	if c.cursor < 0 || c.cursor >= len(c.history) {
		return color.RGB{}, false
	}
	return c.history[c.cursor], true
}

// Display returns what a renderer should show: the cursor color when the
// cell is filled, the background otherwise.
func (c *Cell) Display(background color.RGB) color.RGB {
	if !c.filled {
		return background
	}
	if col, ok := c.Color(); ok {
		return col
	}
	return background
}

// Paint writes col just past the cursor, advances the cursor and marks the
// cell filled. Any entry already at that slot is overwritten.
func (c *Cell) Paint(col color.RGB) {
	next := c.cursor + 1
	if next < len(c.history) {
		c.history[next] = col
	} else {
		c.history = append(c.history, col)
	}
	c.cursor = next
	c.filled = true
}

// Erase clears the fill state. The cursor is left alone so the color can
// be brought back.
func (c *Cell) Erase() {
	c.filled = false
}

// TrimRedoTail drops every log entry past the cursor.
func (c *Cell) TrimRedoTail() {
	c.history = c.history[:c.cursor+1]
}

// Retreat moves the cursor one entry back.
func (c *Cell) Retreat() {
	if c.cursor >= 0 {
		c.cursor--
	}
}

// Advance moves the cursor one entry forward.
func (c *Cell) Advance() {
	if c.cursor+1 < len(c.history) {
		c.cursor++
	}
}

// SetFilled sets the fill state directly.
func (c *Cell) SetFilled(filled bool) {
	c.filled = filled
}

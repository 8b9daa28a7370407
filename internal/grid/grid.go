// internal/grid/grid.go
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is wrapped by OutOfBoundsError.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidSize is returned when a grid dimension is not positive.
	ErrInvalidSize = errors.New("invalid grid size")
	// ErrDestroyed is returned by lookups on a destroyed grid.
	ErrDestroyed = errors.New("grid destroyed")
)

// OutOfBoundsError reports a lookup outside [0, Rows)x[0, Cols).
type OutOfBoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside %dx%d grid", e.Row, e.Col, e.Rows, e.Cols)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// Grid is a fixed-size matrix of cells addressed by (row, column).
// Dimensions never change; resizing means building a new Grid.
type Grid struct {
	rows, cols int
	cells      [][]*Cell
}

// New allocates a rows x cols grid of blank cells.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	cells := make([][]*Cell, rows)
	for r := range cells {
		cells[r] = make([]*Cell, cols)
		for c := range cells[r] {
			cells[r][c] = newCell(r, c)
		}
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// NewSquare is New(size, size).
func NewSquare(size int) (*Grid, error) {
	return New(size, size)
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (*Cell, error) {
	if g.cells == nil {
		return nil, ErrDestroyed
	}
	if !g.InBounds(row, col) {
		return nil, &OutOfBoundsError{Row: row, Col: col, Rows: g.rows, Cols: g.cols}
	}
	return g.cells[row][col], nil
}

// ForEach visits every cell in row-major order.
func (g *Grid) ForEach(fn func(c *Cell)) {
	for _, row := range g.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// TrimRedoTails trims the color log of every cell to its cursor. Called
// after each fresh edit: cells untouched by the edit may still carry
// forward history from an older undone edit.
func (g *Grid) TrimRedoTails() {
	g.ForEach(func(c *Cell) { c.TrimRedoTail() })
}

// FilledCount returns the number of filled cells.
func (g *Grid) FilledCount() int {
	n := 0
	g.ForEach(func(c *Cell) {
		if c.filled {
			n++
		}
	})
	return n
}

// Destroy releases every cell. The caller must drop all actions that
// reference this grid in the same step.
func (g *Grid) Destroy() {
	g.cells = nil
}

// Destroyed reports whether Destroy has been called.
func (g *Grid) Destroyed() bool {
	return g.cells == nil
}

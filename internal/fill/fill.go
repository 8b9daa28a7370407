// Package fill implements 4-directional flood fill over a grid.
//
// Both variants walk an explicit stack instead of recursing. A popped
// coordinate is checked, mutated so it can never match again, and only
// then are its neighbours pushed. Neighbours are pushed in reverse so they
// pop in the order row+1, row-1, col+1, col-1, which gives the same
// discovery order as the recursive formulation.
package fill

import (
	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/grid"
	"github.com/bethropolis/pixie/internal/logger"
)

type coord struct{ row, col int }

// neighbours in pop order.
var offsets = [4]coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Blank paints every unfilled cell reachable from (row, col) with pen.
// Filled cells bound the region. Cells are returned in discovery order.
func Blank(g *grid.Grid, row, col int, pen color.RGB) []*grid.Cell {
	return walk(g, row, col, func(c *grid.Cell) bool {
		if c.Filled() {
			return false
		}
		c.Paint(pen)
		return true
	})
}

// Filled repaints every filled cell reachable from (row, col) whose
// displayed color equals source and differs from pen. With source == pen
// nothing matches and the result is empty.
func Filled(g *grid.Grid, row, col int, source, pen color.RGB) []*grid.Cell {
	return walk(g, row, col, func(c *grid.Cell) bool {
		if !c.Filled() {
			return false
		}
		cur, ok := c.Color()
		if !ok || cur == pen || cur != source {
			return false
		}
		c.Paint(pen)
		return true
	})
}

// walk runs the shared work-list. visit must mutate any cell it accepts
// so that a second visit rejects it.
func walk(g *grid.Grid, row, col int, visit func(c *grid.Cell) bool) []*grid.Cell {
	var affected []*grid.Cell
	stack := []coord{{row, col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c, err := g.Get(p.row, p.col)
		if err != nil {
			continue
		}
		if !visit(c) {
			continue
		}
		affected = append(affected, c)

		for i := len(offsets) - 1; i >= 0; i-- {
			stack = append(stack, coord{p.row + offsets[i].row, p.col + offsets[i].col})
		}
	}
	logger.DebugTagf("fill", "flood fill from (%d,%d) touched %d cells", row, col, len(affected))
	return affected
}

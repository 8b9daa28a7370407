// Package history provides undo/redo over per-cell color logs.
package history

import (
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/grid"
)

// Kind tags an Action. The tag alone decides how undo and redo move the
// referenced cells; actions never store colors.
type Kind int

const (
	Erase Kind = iota
	DrawOnBlank
	DrawOnFilled
	ShadeOnBlank
	ShadeOnFilled
	LightenOnBlank
	LightenOnFilled
	FillOnBlank
	FillOnFilled
)

var kindNames = [...]string{
	Erase:           "erase",
	DrawOnBlank:     "drawBlank",
	DrawOnFilled:    "drawFilled",
	ShadeOnBlank:    "shadeBlank",
	ShadeOnFilled:   "shadeFilled",
	LightenOnBlank:  "lightenBlank",
	LightenOnFilled: "lightenFilled",
	FillOnBlank:     "fillBlank",
	FillOnFilled:    "fillFilled",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// OnBlank reports whether the edit started from an unfilled cell, so
// undoing it must also clear the fill state.
func (k Kind) OnBlank() bool {
	switch k {
	case DrawOnBlank, ShadeOnBlank, LightenOnBlank, FillOnBlank:
		return true
	}
	return false
}

// IsFill reports whether the action covers a flood-fill region.
func (k Kind) IsFill() bool {
	return k == FillOnBlank || k == FillOnFilled
}

// Action is one recorded user edit. Single-cell tools reference one cell;
// fills reference the whole region they touched.
type Action struct {
	Kind  Kind
	Cells []*grid.Cell
}

// Single builds an action over one cell.
func Single(kind Kind, c *grid.Cell) Action {
	return Action{Kind: kind, Cells: []*grid.Cell{c}}
}

// Coords lists the affected cells for change notifications.
func (a Action) Coords() []event.Coord {
	coords := make([]event.Coord, len(a.Cells))
	for i, c := range a.Cells {
		coords[i] = event.Coord{Row: c.Row(), Col: c.Col()}
	}
	return coords
}

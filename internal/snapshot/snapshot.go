// Package snapshot serializes a grid to the flat JSON save format and
// rebuilds grids from it.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/core/history"
	"github.com/bethropolis/pixie/internal/grid"
	"github.com/bethropolis/pixie/internal/logger"
)

// Grid-lines status values.
const (
	GridLinesOn  = "ON"
	GridLinesOff = "OFF"
)

// MaxGridSize bounds the grid a snapshot may ask for.
const MaxGridSize = 512

// Snapshot is the persisted form of a grid and its tool metadata.
type Snapshot struct {
	GridSize        int     `json:"gridSize"`
	GridLinesStatus string  `json:"gridLinesStatus"`
	PenColor        string  `json:"penColor"`
	BackgroundColor string  `json:"backgroundColor"`
	Pixels          []Pixel `json:"pixels"`
}

// Pixel is one filled cell.
type Pixel struct {
	Position string `json:"position"` // "row,col"
	Color    string `json:"color"`    // "rgb(r, g, b)"
}

// Meta is the editor state saved next to the pixels.
type Meta struct {
	GridLines  bool
	Pen        color.RGB
	Background color.RGB
}

// Serialize captures every filled cell of g in row-major order. Colors
// are written clamped to [0, 255].
func Serialize(g *grid.Grid, meta Meta) *Snapshot {
	status := GridLinesOff
	if meta.GridLines {
		status = GridLinesOn
	}
	s := &Snapshot{
		GridSize:        g.Rows(),
		GridLinesStatus: status,
		PenColor:        meta.Pen.Hex(),
		BackgroundColor: meta.Background.Hex(),
		Pixels:          []Pixel{},
	}
	g.ForEach(func(c *grid.Cell) {
		if !c.Filled() {
			return
		}
		col, ok := c.Color()
		if !ok {
			return
		}
		// The model keeps shaded channels unclamped; the file must stay loadable.
		s.Pixels = append(s.Pixels, Pixel{
			Position: FormatPosition(c.Row(), c.Col()),
			Color:    col.Clamped().String(),
		})
	})
	logger.DebugTagf("snapshot", "Serialized %dx%d grid with %d pixel(s)", g.Rows(), g.Cols(), len(s.Pixels))
	return s
}

// Marshal encodes s as JSON.
func Marshal(s *Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Encode writes s as indented JSON.
func Encode(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Decode validates raw and, only if it passes, unmarshals it.
func Decode(raw []byte) (*Snapshot, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, invalid("", "%v", err)
	}
	return &s, nil
}

// Restored is a freshly rebuilt grid ready to be swapped in.
type Restored struct {
	Grid *grid.Grid
	Meta Meta
	// Actions holds one draw action per replayed pixel so the load can be
	// undone pixel by pixel.
	Actions []history.Action
}

// Restore builds a new grid from s and replays every pixel as a fresh
// paint. Nothing is returned unless every pixel fits, so a failing load
// never reaches the caller's grid.
func Restore(s *Snapshot) (*Restored, error) {
	if s.GridSize <= 0 || s.GridSize > MaxGridSize {
		return nil, invalid("gridSize", "%d outside 1..%d", s.GridSize, MaxGridSize)
	}
	pen, err := color.ParseHex(s.PenColor)
	if err != nil {
		return nil, invalid("penColor", "%v", err)
	}
	bg, err := color.ParseHex(s.BackgroundColor)
	if err != nil {
		return nil, invalid("backgroundColor", "%v", err)
	}

	g, err := grid.NewSquare(s.GridSize)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	actions := make([]history.Action, 0, len(s.Pixels))
	for i, p := range s.Pixels {
		field := fmt.Sprintf("pixels[%d]", i)
		row, col, err := ParsePosition(p.Position)
		if err != nil {
			return nil, invalid(field+".position", "%v", err)
		}
		cell, err := g.Get(row, col)
		if err != nil {
			return nil, invalid(field+".position", "%v", err)
		}
		c, err := color.ParseRGB(p.Color)
		if err != nil {
			return nil, invalid(field+".color", "%v", err)
		}
		kind := history.DrawOnBlank
		if cell.Filled() {
			kind = history.DrawOnFilled
		}
		cell.Paint(c)
		actions = append(actions, history.Single(kind, cell))
	}

	logger.DebugTagf("snapshot", "Restored %dx%d grid with %d pixel(s)", s.GridSize, s.GridSize, len(actions))
	return &Restored{
		Grid:    g,
		Meta:    Meta{GridLines: s.GridLinesStatus == GridLinesOn, Pen: pen, Background: bg},
		Actions: actions,
	}, nil
}

// FormatPosition renders "row,col".
func FormatPosition(row, col int) string {
	return strconv.Itoa(row) + "," + strconv.Itoa(col)
}

// ParsePosition parses "row,col".
func ParsePosition(s string) (row, col int, err error) {
	if !positionPattern.MatchString(s) {
		return 0, 0, fmt.Errorf("position %q is not row,col", s)
	}
	r, c, _ := strings.Cut(s, ",")
	if row, err = strconv.Atoi(r); err != nil {
		return 0, 0, fmt.Errorf("row %q: %w", r, err)
	}
	if col, err = strconv.Atoi(c); err != nil {
		return 0, 0, fmt.Errorf("col %q: %w", c, err)
	}
	return row, col, nil
}

package tool

import (
	"fmt"
	"math/rand"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/core/history"
	"github.com/bethropolis/pixie/internal/fill"
	"github.com/bethropolis/pixie/internal/grid"
	"github.com/bethropolis/pixie/internal/logger"
)

// Request is one activation of a cell with the current palette.
type Request struct {
	Tool       Tool
	Row, Col   int
	Pen        color.RGB
	Background color.RGB
}

// Dispatcher applies tools to a grid. It holds no editing state beyond
// the random source used by the colorful tool.
type Dispatcher struct {
	rng *rand.Rand
}

// NewDispatcher creates a dispatcher. A nil rng uses the global source.
func NewDispatcher(rng *rand.Rand) *Dispatcher {
	return &Dispatcher{rng: rng}
}

// Apply mutates g for req and returns the action to record. A nil action
// with a nil error means the tool had nothing to do (pen over the same
// color, eraser on a blank cell, empty fill). Out-of-range targets fail
// before anything is touched.
func (d *Dispatcher) Apply(g *grid.Grid, req Request) (*history.Action, error) {
	cell, err := g.Get(req.Row, req.Col)
	if err != nil {
		return nil, fmt.Errorf("apply %v: %w", req.Tool, err)
	}

	wasFilled := cell.Filled()
	shown := cell.Display(req.Background)
	pick := func(onBlank, onFilled history.Kind) history.Kind {
		if wasFilled {
			return onFilled
		}
		return onBlank
	}

	var action history.Action
	switch req.Tool {
	case Pen:
		if wasFilled && shown == req.Pen {
			return nil, nil
		}
		cell.Paint(req.Pen)
		action = history.Single(pick(history.DrawOnBlank, history.DrawOnFilled), cell)

	case Eraser:
		if !wasFilled {
			return nil, nil
		}
		cell.Erase()
		action = history.Single(history.Erase, cell)

	case Fill:
		var region []*grid.Cell
		if wasFilled {
			region = fill.Filled(g, req.Row, req.Col, shown, req.Pen)
		} else {
			region = fill.Blank(g, req.Row, req.Col, req.Pen)
		}
		if len(region) == 0 {
			logger.DebugTagf("tool", "Fill at (%d,%d) matched nothing", req.Row, req.Col)
			return nil, nil
		}
		action = history.Action{Kind: pick(history.FillOnBlank, history.FillOnFilled), Cells: region}

	case Shade:
		cell.Paint(color.Shade(shown))
		action = history.Single(pick(history.ShadeOnBlank, history.ShadeOnFilled), cell)

	case Lighten:
		cell.Paint(color.Lighten(shown))
		action = history.Single(pick(history.LightenOnBlank, history.LightenOnFilled), cell)

	case Colorful:
		cell.Paint(color.Random(d.rng))
		action = history.Single(pick(history.DrawOnBlank, history.DrawOnFilled), cell)

	default:
		return nil, fmt.Errorf("unknown tool %v", req.Tool)
	}

	logger.DebugTagf("tool", "%v at (%d,%d) -> %v (%d cell(s))",
		req.Tool, req.Row, req.Col, action.Kind, len(action.Cells))
	return &action, nil
}

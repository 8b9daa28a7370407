package tool

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/core/history"
	"github.com/bethropolis/pixie/internal/grid"
)

var (
	red   = color.RGB{R: 255}
	blue  = color.RGB{B: 255}
	white = color.White
)

type cellState struct {
	filled bool
	shown  color.RGB
}

func snapshotGrid(g *grid.Grid) []cellState {
	var out []cellState
	g.ForEach(func(c *grid.Cell) {
		out = append(out, cellState{filled: c.Filled(), shown: c.Display(white)})
	})
	return out
}

func equalStates(a, b []cellState) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// apply runs one request and records the result the way the editor does.
func apply(t *testing.T, d *Dispatcher, g *grid.Grid, h *history.Manager, req Request) *history.Action {
	t.Helper()
	a, err := d.Apply(g, req)
	if err != nil {
		t.Fatalf("Apply(%+v): %v", req, err)
	}
	if a != nil {
		h.Record(*a)
	}
	return a
}

func TestParse(t *testing.T) {
	for _, tl := range All {
		got, err := Parse(tl.String())
		if err != nil || got != tl {
			t.Errorf("Parse(%q) = %v, %v", tl.String(), got, err)
		}
	}
	if got, _ := Parse("Shade"); got != Shade {
		t.Errorf("Parse(Shade) = %v", got)
	}
	if _, err := Parse("spray"); err == nil {
		t.Error("Parse(spray) should fail")
	}
}

func TestPenKinds(t *testing.T) {
	g, _ := grid.New(1, 1)
	d := NewDispatcher(nil)
	req := Request{Tool: Pen, Pen: red, Background: white}

	a, _ := d.Apply(g, req)
	if a == nil || a.Kind != history.DrawOnBlank {
		t.Fatalf("first pen = %+v", a)
	}
	if a, _ := d.Apply(g, req); a != nil {
		t.Errorf("pen over same color should be a no-op, got %v", a.Kind)
	}
	req.Pen = blue
	if a, _ := d.Apply(g, req); a == nil || a.Kind != history.DrawOnFilled {
		t.Errorf("pen over other color = %+v", a)
	}
}

func TestEraserOnBlankIsNoop(t *testing.T) {
	g, _ := grid.New(1, 1)
	d := NewDispatcher(nil)
	if a, err := d.Apply(g, Request{Tool: Eraser, Background: white}); a != nil || err != nil {
		t.Errorf("eraser on blank = %v, %v", a, err)
	}
}

func TestShadeAndLightenUseDisplayedColor(t *testing.T) {
	g, _ := grid.New(1, 2)
	d := NewDispatcher(nil)
	bg := color.RGB{R: 100, G: 100, B: 100}

	a, _ := d.Apply(g, Request{Tool: Shade, Row: 0, Col: 0, Background: bg})
	c, _ := g.Get(0, 0)
	if got, _ := c.Color(); a.Kind != history.ShadeOnBlank || got != (color.RGB{R: 75, G: 75, B: 75}) {
		t.Fatalf("shade on blank kind=%v color=%v", a.Kind, got)
	}
	a, _ = d.Apply(g, Request{Tool: Shade, Row: 0, Col: 0, Background: bg})
	if got, _ := c.Color(); a.Kind != history.ShadeOnFilled || got != (color.RGB{R: 50, G: 50, B: 50}) {
		t.Fatalf("shade on filled kind=%v color=%v", a.Kind, got)
	}

	a, _ = d.Apply(g, Request{Tool: Lighten, Row: 0, Col: 1, Background: color.White})
	c2, _ := g.Get(0, 1)
	if got, _ := c2.Color(); a.Kind != history.LightenOnBlank || got != (color.RGB{R: 280, G: 280, B: 280}) {
		t.Fatalf("lighten past 255 kind=%v color=%v", a.Kind, got)
	}
}

func TestColorfulIsDeterministicWithSeed(t *testing.T) {
	g1, _ := grid.New(1, 1)
	g2, _ := grid.New(1, 1)
	d1 := NewDispatcher(rand.New(rand.NewSource(3)))
	d2 := NewDispatcher(rand.New(rand.NewSource(3)))
	a, _ := d1.Apply(g1, Request{Tool: Colorful, Background: white})
	d2.Apply(g2, Request{Tool: Colorful, Background: white})
	c1, _ := g1.Get(0, 0)
	c2, _ := g2.Get(0, 0)
	x, _ := c1.Color()
	y, _ := c2.Color()
	if a.Kind != history.DrawOnBlank || x != y || !x.InRange() {
		t.Errorf("colorful kind=%v colors %v / %v", a.Kind, x, y)
	}
}

func TestOutOfBoundsDoesNotMutate(t *testing.T) {
	g, _ := grid.New(2, 2)
	d := NewDispatcher(nil)
	before := snapshotGrid(g)
	_, err := d.Apply(g, Request{Tool: Fill, Row: 2, Col: 0, Pen: red, Background: white})
	if !errors.Is(err, grid.ErrOutOfBounds) {
		t.Fatalf("error = %v, want ErrOutOfBounds", err)
	}
	if !equalStates(before, snapshotGrid(g)) {
		t.Error("grid mutated by rejected request")
	}
}

func TestFillOnFilledSamePenIsNoop(t *testing.T) {
	g, _ := grid.New(2, 2)
	h := history.NewManager(g, nil, 0)
	d := NewDispatcher(nil)
	apply(t, d, g, h, Request{Tool: Fill, Pen: red, Background: white})
	if h.UndoLen() != 1 {
		t.Fatalf("UndoLen = %d", h.UndoLen())
	}
	if a := apply(t, d, g, h, Request{Tool: Fill, Pen: red, Background: white}); a != nil {
		t.Fatalf("refill with same color recorded %v", a.Kind)
	}
	if h.UndoLen() != 1 {
		t.Errorf("no-op fill pushed an action")
	}
}

func TestThreeByThreeExample(t *testing.T) {
	g, _ := grid.New(3, 3)
	h := history.NewManager(g, nil, 0)
	d := NewDispatcher(nil)
	pen := color.MustParse("rgb(255, 0, 0)")

	apply(t, d, g, h, Request{Tool: Pen, Row: 0, Col: 0, Pen: pen, Background: white})
	a := apply(t, d, g, h, Request{Tool: Fill, Row: 0, Col: 1, Pen: pen, Background: white})
	if a == nil || a.Kind != history.FillOnBlank || len(a.Cells) != 8 {
		t.Fatalf("fill action = %+v", a)
	}
	if g.FilledCount() != 9 {
		t.Fatalf("FilledCount = %d", g.FilledCount())
	}

	h.Undo()
	if g.FilledCount() != 1 {
		t.Fatalf("after first undo FilledCount = %d, want 1", g.FilledCount())
	}
	origin, _ := g.Get(0, 0)
	if got := origin.Display(white); got != pen {
		t.Fatalf("(0,0) shows %v", got)
	}

	h.Undo()
	if g.FilledCount() != 0 {
		t.Fatalf("after second undo FilledCount = %d", g.FilledCount())
	}
}

func randomRequest(rng *rand.Rand, rows, cols int) Request {
	palette := []color.RGB{red, blue, {G: 200}, {R: 10, G: 20, B: 30}}
	return Request{
		Tool:       All[rng.Intn(len(All))],
		Row:        rng.Intn(rows),
		Col:        rng.Intn(cols),
		Pen:        palette[rng.Intn(len(palette))],
		Background: white,
	}
}

func TestUndoThenRedoRestoresState(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		g, _ := grid.New(4, 4)
		h := history.NewManager(g, nil, 0)
		d := NewDispatcher(rand.New(rand.NewSource(int64(trial))))

		for step := 0; step < 30; step++ {
			switch rng.Intn(4) {
			case 0:
				h.Undo()
			case 1:
				h.Redo()
			default:
				apply(t, d, g, h, randomRequest(rng, 4, 4))
			}

			if h.CanUndo() {
				before := snapshotGrid(g)
				if _, err := h.Undo(); err != nil {
					t.Fatalf("trial %d step %d: undo: %v", trial, step, err)
				}
				if _, err := h.Redo(); err != nil {
					t.Fatalf("trial %d step %d: redo: %v", trial, step, err)
				}
				if !equalStates(before, snapshotGrid(g)) {
					t.Fatalf("trial %d step %d: undo+redo changed the grid", trial, step)
				}
			}
		}
	}
}

func TestNEditsNUndosIsPristine(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for trial := 0; trial < 30; trial++ {
		g, _ := grid.New(5, 3)
		h := history.NewManager(g, nil, 0)
		d := NewDispatcher(rand.New(rand.NewSource(int64(trial))))
		pristine := snapshotGrid(g)

		for step := 0; step < 25; step++ {
			apply(t, d, g, h, randomRequest(rng, 5, 3))
		}
		for h.CanUndo() {
			if _, err := h.Undo(); err != nil {
				t.Fatalf("trial %d: %v", trial, err)
			}
		}
		if !equalStates(pristine, snapshotGrid(g)) {
			t.Fatalf("trial %d: grid not pristine after undoing everything", trial)
		}
	}
}

package tui

import (
	"testing"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/core"
	"github.com/bethropolis/pixie/internal/theme"
	"github.com/gdamore/tcell/v2"
)

func newSim(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	ui, err := NewWithScreen(s, tcell.StyleDefault)
	if err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(ui.Close)
	return ui, s
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y, viewY, viewX int
		row, col           int
		ok                 bool
	}{
		{0, 0, 0, 0, 0, 0, true},
		{3, 2, 0, 0, 2, 1, true},
		{5, 1, 4, 2, 5, 4, true},
		{20, 0, 0, 0, 0, 0, false}, // past the last column
		{0, 9, 0, 0, 0, 0, false},  // status bar
		{-1, 0, 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		row, col, ok := CellAt(tt.x, tt.y, tt.viewY, tt.viewX, 8, 10)
		if ok != tt.ok || (ok && (row != tt.row || col != tt.col)) {
			t.Errorf("CellAt(%d,%d) = %d,%d,%v want %d,%d,%v", tt.x, tt.y, row, col, ok, tt.row, tt.col, tt.ok)
		}
	}
	if cols, rows := ViewSize(21, 10); cols != 10 || rows != 9 {
		t.Errorf("ViewSize = %d,%d", cols, rows)
	}
}

func TestDrawGrid(t *testing.T) {
	ui, s := newSim(t, 10, 4)
	red := color.RGB{R: 255}
	ed, err := core.NewEditor(core.Options{Size: 8, Pen: red, Background: color.White, GridLines: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := ed.OnCellActivate(0, 1); err != nil {
		t.Fatal(err)
	}

	DrawGrid(ui, ed, &theme.PixieDark)

	// Cursor sits on (0,0).
	if r, _, _, _ := s.GetContent(0, 0); r != '[' {
		t.Errorf("cursor left = %q", r)
	}
	if r, _, _, _ := s.GetContent(1, 0); r != ']' {
		t.Errorf("cursor right = %q", r)
	}
	r, _, style, _ := s.GetContent(2, 0)
	if _, bg, _ := style.Decompose(); bg != red.TCell() {
		t.Errorf("painted cell bg = %v", bg)
	}
	if r != gridLineRune {
		t.Errorf("grid line rune = %q", r)
	}
	// Bottom row is left to the status bar.
	if _, _, style, _ := s.GetContent(0, 3); style != tcell.StyleDefault {
		t.Error("status row was drawn over")
	}

	ed.SetGridLines(false)
	ed.SetCursor(7, 7) // scrolls the 5x3 view
	DrawGrid(ui, ed, &theme.PixieDark)
	if y, x := ed.GetViewport(); y != 5 || x != 3 {
		t.Errorf("viewport = %d,%d", y, x)
	}
	if r, _, _, _ := s.GetContent(2, 1); r != ' ' {
		t.Errorf("grid lines still drawn: %q", r)
	}
	if r, _, _, _ := s.GetContent(8, 2); r != '[' {
		t.Errorf("scrolled cursor = %q", r)
	}
}

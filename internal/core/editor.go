// internal/core/editor.go
package core

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/core/history"
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/grid"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/snapshot"
	"github.com/bethropolis/pixie/internal/tool"
)

// ErrInvalidSize is returned by OnResize for sizes outside 1..snapshot.MaxGridSize.
var ErrInvalidSize = errors.New("grid size out of range")

// Options seeds a new Editor.
type Options struct {
	Size       int
	Pen        color.RGB
	Background color.RGB
	GridLines  bool
	Tool       tool.Tool
	MaxHistory int        // 0 keeps every action
	Rand       *rand.Rand // source for the colorful tool, nil uses the global one
}

// Editor is one editing session. Every edit, undo, redo, resize, clear,
// serialize and deserialize runs under mutex; events raised while it is
// held are queued and dispatched after release so handlers may call back
// into the editor.
type Editor struct {
	mutex sync.Mutex

	grid    *grid.Grid
	history *history.Manager
	tools   *tool.Dispatcher

	tool       tool.Tool
	pen        color.RGB
	background color.RGB
	gridLines  bool

	// Modified() is revision != savedRevision.
	revision      uint64
	savedRevision uint64

	// Keyboard cursor and viewport, in cells.
	cursorRow, cursorCol int
	ViewportY, ViewportX int
	viewWidth            int
	viewHeight           int
	ScrollOff            int

	eventManager *event.Manager
	queue        *eventQueue
}

// NewEditor creates a session with a blank grid.
func NewEditor(opts Options) (*Editor, error) {
	if opts.Size < 1 || opts.Size > snapshot.MaxGridSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, opts.Size)
	}
	g, err := grid.NewSquare(opts.Size)
	if err != nil {
		return nil, err
	}
	q := &eventQueue{}
	e := &Editor{
		grid:       g,
		history:    history.NewManager(g, q, opts.MaxHistory),
		tools:      tool.NewDispatcher(opts.Rand),
		tool:       opts.Tool,
		pen:        opts.Pen,
		background: opts.Background,
		gridLines:  opts.GridLines,
		ScrollOff:  1,
		queue:      q,
	}
	logger.Debugf("Editor: created %dx%d session, tool %v", opts.Size, opts.Size, opts.Tool)
	return e, nil
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.eventManager = mgr
}

// GetEventManager returns the event manager, possibly nil.
func (e *Editor) GetEventManager() *event.Manager {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.eventManager
}

// lock and unlock bracket every state change. unlock flushes the queue
// once the mutex is released.
func (e *Editor) lock() {
	e.mutex.Lock()
}

func (e *Editor) unlock() {
	// Take the queue and manager while still locked; handlers run unlocked.
	pending := e.queue.drain()
	mgr := e.eventManager
	e.mutex.Unlock()
	if mgr == nil {
		return
	}
	for _, ev := range pending {
		mgr.Dispatch(ev.typ, ev.data)
	}
}

// touch marks a change to the document. Callers hold the lock.
func (e *Editor) touch() {
	e.revision++
}

// OnCellActivate applies the active tool at (row, col) and records the
// resulting action. A tool with nothing to do records nothing.
func (e *Editor) OnCellActivate(row, col int) error {
	e.lock()
	defer e.unlock()

	a, err := e.tools.Apply(e.grid, tool.Request{
		Tool:       e.tool,
		Row:        row,
		Col:        col,
		Pen:        e.pen,
		Background: e.background,
	})
	if err != nil {
		logger.Warnf("Editor: %v", err)
		return err
	}
	if a == nil {
		return nil // e.g. erasing a blank cell
	}
	e.history.Record(*a)
	e.touch()
	e.queue.Dispatch(event.TypeCellsChanged, event.CellsChangedData{Cells: a.Coords()})
	return nil
}

// OnToolChange selects the tool used by subsequent activations.
func (e *Editor) OnToolChange(t tool.Tool) {
	e.lock()
	defer e.unlock()
	if e.tool == t {
		return
	}
	e.tool = t
	logger.DebugTagf("editor", "Tool changed to %v", t)
	e.queue.Dispatch(event.TypeToolChanged, event.ToolChangedData{Tool: t.String()})
}

// OnUndo reverts the latest action. It returns false, nil when there is
// nothing to undo.
func (e *Editor) OnUndo() (bool, error) {
	e.lock()
	defer e.unlock()
	ok, err := e.history.Undo()
	// Undoing back to the saved state still counts as modified.
	if ok {
		e.touch()
	}
	return ok, err
}

// OnRedo reapplies the latest undone action.
func (e *Editor) OnRedo() (bool, error) {
	e.lock()
	defer e.unlock()
	ok, err := e.history.Redo()
	if ok {
		e.touch()
	}
	return ok, err
}

// OnResize destroys the grid and both history stacks and starts over
// with a blank size x size grid.
func (e *Editor) OnResize(size int) error {
	e.lock()
	defer e.unlock()
	return e.rebuild(size)
}

// OnClear rebuilds the grid at its current size.
func (e *Editor) OnClear() error {
	e.lock()
	defer e.unlock()
	return e.rebuild(e.grid.Rows())
}

func (e *Editor) rebuild(size int) error {
	if size < 1 || size > snapshot.MaxGridSize {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	g, err := grid.NewSquare(size)
	if err != nil {
		return err
	}
	e.swapGrid(g)
	e.touch()
	logger.Infof("Editor: grid rebuilt at %dx%d", size, size)
	return nil
}

// swapGrid replaces the grid and drops history in one step.
func (e *Editor) swapGrid(g *grid.Grid) {
	// History actions point at the old grid's cells, so it goes too.
	e.grid.Destroy()
	e.grid = g
	e.history.Reset(g)
	e.clampCursor()
	e.queue.Dispatch(event.TypeGridRebuilt, event.GridRebuiltData{Rows: g.Rows(), Cols: g.Cols()})
}

// OnPenColorChange sets the color used by the pen and fill tools.
func (e *Editor) OnPenColorChange(c color.RGB) {
	e.lock()
	defer e.unlock()
	if e.pen == c {
		return
	}
	e.pen = c
	e.queue.Dispatch(event.TypePenColorChanged, event.ColorChangedData{Color: c.String()})
}

// OnBackgroundColorChange sets the color shown by unfilled cells and asks
// renderers to repaint every one of them.
func (e *Editor) OnBackgroundColorChange(c color.RGB) {
	e.lock()
	defer e.unlock()
	if e.background == c {
		return
	}
	e.background = c
	e.touch() // The background is saved with the snapshot

	var blank []event.Coord
	e.grid.ForEach(func(cell *grid.Cell) {
		if !cell.Filled() {
			blank = append(blank, event.Coord{Row: cell.Row(), Col: cell.Col()})
		}
	})
	e.queue.Dispatch(event.TypeBackgroundChanged, event.ColorChangedData{Color: c.String()})
	if len(blank) > 0 {
		e.queue.Dispatch(event.TypeCellsChanged, event.CellsChangedData{Cells: blank})
	}
}

// ToggleGridLines flips grid-line visibility.
func (e *Editor) ToggleGridLines() {
	e.lock()
	defer e.unlock()
	e.setGridLines(!e.gridLines)
}

// SetGridLines sets grid-line visibility.
func (e *Editor) SetGridLines(on bool) {
	e.lock()
	defer e.unlock()
	if e.gridLines != on {
		e.setGridLines(on)
	}
}

func (e *Editor) setGridLines(on bool) {
	e.gridLines = on
	e.touch()
	e.queue.Dispatch(event.TypeGridLinesChanged, event.GridLinesChangedData{Status: gridLinesStatus(on)})
}

func gridLinesStatus(on bool) string {
	if on {
		return snapshot.GridLinesOn
	}
	return snapshot.GridLinesOff
}

type queuedEvent struct {
	typ  event.Type
	data interface{}
}

// eventQueue collects events raised under the editor lock. It is only
// touched while that lock is held.
type eventQueue struct {
	events []queuedEvent
}

// Dispatch satisfies history.Dispatcher.
func (q *eventQueue) Dispatch(t event.Type, data interface{}) {
	q.events = append(q.events, queuedEvent{typ: t, data: data})
}

func (q *eventQueue) drain() []queuedEvent {
	out := q.events
	q.events = nil
	return out
}

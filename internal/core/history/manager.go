package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/grid"
	"github.com/bethropolis/pixie/internal/logger"
)

// ErrCorruptHistory is returned when an action no longer matches the
// cursor state of its cells. The stacks are left as they were.
var ErrCorruptHistory = errors.New("action does not match cell history")

// Dispatcher receives change notifications. *event.Manager satisfies it.
type Dispatcher interface {
	Dispatch(eventType event.Type, data interface{})
}

// Manager owns the undo and redo stacks for one grid.
type Manager struct {
	grid       *grid.Grid
	events     Dispatcher
	undo       []Action
	redo       []Action
	maxHistory int // 0 keeps everything
	mutex      sync.Mutex
}

// NewManager creates a history manager bound to g. events may be nil.
func NewManager(g *grid.Grid, events Dispatcher, maxHistory int) *Manager {
	if maxHistory < 0 {
		maxHistory = 0
	}
	return &Manager{
		grid:       g,
		events:     events,
		maxHistory: maxHistory,
	}
}

// Reset drops both stacks and binds the manager to a new grid. Call it in
// the same step that destroys the old grid.
func (m *Manager) Reset(g *grid.Grid) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.grid = g
	m.undo = nil
	m.redo = nil
	logger.DebugTagf("history", "History reset")
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.undo = nil
	m.redo = nil
}

// Record pushes a fresh edit, discards the redo stack and trims every
// cell's color log to its cursor.
func (m *Manager) Record(a Action) {
	m.RecordBatch([]Action{a})
}

// RecordBatch records several edits in order with a single trim sweep.
func (m *Manager) RecordBatch(actions []Action) {
	if len(actions) == 0 {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.undo = append(m.undo, actions...)
	if m.maxHistory > 0 && len(m.undo) > m.maxHistory {
		// Evicted actions are simply forgotten; their cells keep their logs.
		m.undo = append([]Action(nil), m.undo[len(m.undo)-m.maxHistory:]...)
	}
	m.redo = nil
	if m.grid != nil {
		m.grid.TrimRedoTails()
	}
	last := actions[len(actions)-1]
	logger.DebugTagf("history", "Recorded %d action(s), last %v over %d cell(s). Undo: %d",
		len(actions), last.Kind, len(last.Cells), len(m.undo))
}

// Undo reverts the most recent action. It returns false, nil when there
// is nothing to undo.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	if len(m.undo) == 0 {
		m.mutex.Unlock()
		logger.DebugTagf("history", "Nothing to undo")
		return false, nil
	}

	a := m.undo[len(m.undo)-1]
	if err := checkUndo(a); err != nil {
		m.mutex.Unlock()
		logger.Errorf("History: cannot undo %v: %v", a.Kind, err)
		return false, fmt.Errorf("undo failed: %w", err)
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, a)

	for _, c := range a.Cells {
		switch {
		case a.Kind == Erase:
			c.SetFilled(true)
		case a.Kind.OnBlank():
			c.SetFilled(false)
			c.Retreat()
		default:
			c.Retreat()
		}
	}
	m.mutex.Unlock()

	logger.DebugTagf("history", "Undid %v over %d cell(s)", a.Kind, len(a.Cells))
	m.notify(a)
	return true, nil
}

// Redo reapplies the most recently undone action.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	if len(m.redo) == 0 {
		m.mutex.Unlock()
		logger.DebugTagf("history", "Nothing to redo")
		return false, nil
	}

	a := m.redo[len(m.redo)-1]
	if err := checkRedo(a); err != nil {
		m.mutex.Unlock()
		logger.Errorf("History: cannot redo %v: %v", a.Kind, err)
		return false, fmt.Errorf("redo failed: %w", err)
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, a)

	for _, c := range a.Cells {
		switch {
		case a.Kind == Erase:
			c.SetFilled(false)
		case a.Kind.OnBlank():
			c.SetFilled(true)
			c.Advance()
		default:
			c.Advance()
		}
	}
	m.mutex.Unlock()

	logger.DebugTagf("history", "Redid %v over %d cell(s)", a.Kind, len(a.Cells))
	m.notify(a)
	return true, nil
}

func (m *Manager) notify(a Action) {
	if m.events != nil {
		m.events.Dispatch(event.TypeCellsChanged, event.CellsChangedData{Cells: a.Coords()})
	}
}

// checkUndo verifies every cursor can step back before anything moves.
func checkUndo(a Action) error {
	if len(a.Cells) == 0 {
		return fmt.Errorf("%w: %v has no cells", ErrCorruptHistory, a.Kind)
	}
	if a.Kind == Erase {
		return nil
	}
	// A filled cell must keep a color to fall back on.
	floor := 1
	if a.Kind.OnBlank() {
		floor = 0
	}
	for _, c := range a.Cells {
		if c.Cursor() < floor {
			return fmt.Errorf("%w: cell (%d,%d) has no color to revert", ErrCorruptHistory, c.Row(), c.Col())
		}
	}
	return nil
}

// checkRedo verifies every cursor has a forward entry to step onto.
func checkRedo(a Action) error {
	if len(a.Cells) == 0 {
		return fmt.Errorf("%w: %v has no cells", ErrCorruptHistory, a.Kind)
	}
	if a.Kind == Erase {
		return nil
	}
	for _, c := range a.Cells {
		if c.Cursor()+1 >= c.HistoryLen() {
			return fmt.Errorf("%w: cell (%d,%d) has no color to restore", ErrCorruptHistory, c.Row(), c.Col())
		}
	}
	return nil
}

// CanUndo returns true if there are actions that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo) > 0
}

// CanRedo returns true if there are actions that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo) > 0
}

// UndoLen returns the undo stack depth.
func (m *Manager) UndoLen() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo)
}

// RedoLen returns the redo stack depth.
func (m *Manager) RedoLen() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo)
}

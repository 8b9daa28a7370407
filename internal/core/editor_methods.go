package core

import (
	"fmt"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/core/history"
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/snapshot"
	"github.com/bethropolis/pixie/internal/tool"
)

// Size returns the grid side length.
func (e *Editor) Size() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.grid.Rows()
}

// CellView returns what the cell at (row, col) shows and whether it is
// filled.
func (e *Editor) CellView(row, col int) (color.RGB, bool, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	cell, err := e.grid.Get(row, col)
	if err != nil {
		return color.RGB{}, false, err
	}
	return cell.Display(e.background), cell.Filled(), nil
}

// View is a consistent copy of everything a renderer needs.
type View struct {
	Size       int
	Colors     [][]color.RGB // [row][col], already resolved against Background
	Filled     [][]bool
	Background color.RGB
	GridLines  bool
}

// At satisfies export.Source.
func (v *View) At(row, col int) color.RGB { return v.Colors[row][col] }

// Dim satisfies export.Source.
func (v *View) Dim() int { return v.Size }

// Lines satisfies export.Source.
func (v *View) Lines() bool { return v.GridLines }

// View copies the grid under the lock so a renderer can draw without
// holding it.
func (e *Editor) View() *View {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	n := e.grid.Rows()
	v := &View{
		Size:       n,
		Colors:     make([][]color.RGB, n),
		Filled:     make([][]bool, n),
		Background: e.background,
		GridLines:  e.gridLines,
	}
	for r := 0; r < n; r++ {
		v.Colors[r] = make([]color.RGB, n)
		v.Filled[r] = make([]bool, n)
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cell, _ := e.grid.Get(r, c)
			v.Colors[r][c] = cell.Display(e.background)
			v.Filled[r][c] = cell.Filled()
		}
	}
	return v
}

func (e *Editor) Tool() tool.Tool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.tool
}

func (e *Editor) PenColor() color.RGB {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.pen
}

func (e *Editor) BackgroundColor() color.RGB {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.background
}

func (e *Editor) GridLines() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.gridLines
}

// Modified reports whether anything changed since the last save or load.
func (e *Editor) Modified() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.revision != e.savedRevision
}

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// GetHistoryManager exposes the undo/redo stacks for inspection.
func (e *Editor) GetHistoryManager() *history.Manager { return e.history }

// --- Snapshot bridge ---

// Snapshot serializes the current grid and palette.
func (e *Editor) Snapshot() *snapshot.Snapshot {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.snapshotLocked()
}

func (e *Editor) snapshotLocked() *snapshot.Snapshot {
	return snapshot.Serialize(e.grid, snapshot.Meta{
		GridLines:  e.gridLines,
		Pen:        e.pen,
		Background: e.background,
	})
}

// LoadSnapshot rebuilds the session from s. The current grid is only
// replaced once the whole snapshot has been restored.
func (e *Editor) LoadSnapshot(s *snapshot.Snapshot) error {
	e.lock()
	defer e.unlock()
	return e.loadLocked(s, "")
}

// LoadJSON validates and loads a raw snapshot document.
func (e *Editor) LoadJSON(data []byte) error {
	s, err := snapshot.Decode(data)
	if err != nil {
		logger.Warnf("Editor: rejected snapshot: %v", err)
		return err
	}
	return e.LoadSnapshot(s)
}

// LoadFile loads the snapshot stored at path.
func (e *Editor) LoadFile(path string) error {
	s, err := snapshot.LoadFile(path)
	if err != nil {
		logger.Warnf("Editor: %v", err)
		return err
	}
	e.lock()
	defer e.unlock()
	return e.loadLocked(s, path)
}

func (e *Editor) loadLocked(s *snapshot.Snapshot, path string) error {
	r, err := snapshot.Restore(s)
	if err != nil {
		logger.Warnf("Editor: snapshot not loaded: %v", err)
		return err
	}

	e.swapGrid(r.Grid)
	e.history.RecordBatch(r.Actions)

	gridLinesChanged := e.gridLines != r.Meta.GridLines
	e.gridLines = r.Meta.GridLines
	e.pen = r.Meta.Pen
	e.background = r.Meta.Background
	e.touch()
	// Only a file load matches what is on disk. A paste or in-memory load
	// leaves the session modified so it is saved, or confirmed on quit.
	if path != "" {
		e.savedRevision = e.revision
	}

	if gridLinesChanged {
		e.queue.Dispatch(event.TypeGridLinesChanged, event.GridLinesChangedData{Status: gridLinesStatus(e.gridLines)})
	}
	e.queue.Dispatch(event.TypePenColorChanged, event.ColorChangedData{Color: e.pen.String()})
	e.queue.Dispatch(event.TypeBackgroundChanged, event.ColorChangedData{Color: e.background.String()})
	e.queue.Dispatch(event.TypeSnapshotLoaded, event.SnapshotData{Path: path})
	logger.Infof("Editor: loaded %dx%d snapshot with %d pixel(s)", r.Grid.Rows(), r.Grid.Cols(), len(r.Actions))
	return nil
}

// SaveFile writes the current snapshot to path. The file is written
// outside the lock; edits made meanwhile keep the session modified.
func (e *Editor) SaveFile(path string) error {
	e.mutex.Lock()
	s := e.snapshotLocked()
	rev := e.revision
	e.mutex.Unlock()

	if err := snapshot.SaveFile(path, s); err != nil {
		logger.Errorf("Editor: save failed: %v", err)
		return fmt.Errorf("save snapshot: %w", err)
	}

	e.lock()
	defer e.unlock()
	if rev > e.savedRevision {
		e.savedRevision = rev
	}
	e.queue.Dispatch(event.TypeSnapshotSaved, event.SnapshotData{Path: path})
	logger.Infof("Editor: saved %d pixel(s) to '%s'", len(s.Pixels), path)
	return nil
}

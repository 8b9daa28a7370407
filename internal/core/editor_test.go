package core

import (
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/core/clipboard"
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/grid"
	"github.com/bethropolis/pixie/internal/snapshot"
	"github.com/bethropolis/pixie/internal/tool"
)

var (
	red  = color.RGB{R: 255}
	blue = color.RGB{B: 255}
)

func newTestEditor(t *testing.T, size int) (*Editor, *event.Manager) {
	t.Helper()
	e, err := NewEditor(Options{
		Size:       size,
		Pen:        red,
		Background: color.White,
		GridLines:  true,
		Tool:       tool.Pen,
		Rand:       rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	mgr := event.NewManager()
	e.SetEventManager(mgr)
	return e, mgr
}

func mustActivate(t *testing.T, e *Editor, row, col int) {
	t.Helper()
	if err := e.OnCellActivate(row, col); err != nil {
		t.Fatalf("OnCellActivate(%d,%d): %v", row, col, err)
	}
}

func filledCount(e *Editor) int {
	n := 0
	v := e.View()
	for _, row := range v.Filled {
		for _, f := range row {
			if f {
				n++
			}
		}
	}
	return n
}

func TestNewEditorRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -1, snapshot.MaxGridSize + 1} {
		if _, err := NewEditor(Options{Size: size}); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("size %d: err = %v", size, err)
		}
	}
}

func TestPaintFillUndoSequence(t *testing.T) {
	e, _ := newTestEditor(t, 3)

	mustActivate(t, e, 0, 0)
	e.OnPenColorChange(blue)
	e.OnToolChange(tool.Fill)
	mustActivate(t, e, 0, 1)

	if got := filledCount(e); got != 9 {
		t.Fatalf("filled = %d, want 9", got)
	}
	if c, _, _ := e.CellView(0, 0); c != red {
		t.Errorf("(0,0) = %v, fill should not cross the filled seed", c)
	}

	if ok, err := e.OnUndo(); !ok || err != nil {
		t.Fatalf("undo fill: %v %v", ok, err)
	}
	if got := filledCount(e); got != 1 {
		t.Errorf("after undoing fill, filled = %d, want 1", got)
	}
	if ok, err := e.OnUndo(); !ok || err != nil {
		t.Fatalf("undo paint: %v %v", ok, err)
	}
	if got := filledCount(e); got != 0 {
		t.Errorf("after second undo, filled = %d", got)
	}
	if ok, _ := e.OnUndo(); ok {
		t.Error("undo on empty stack reported success")
	}
}

func TestUndoRedoRestoresView(t *testing.T) {
	e, _ := newTestEditor(t, 4)
	for i, tl := range []tool.Tool{tool.Pen, tool.Shade, tool.Lighten, tool.Colorful, tool.Eraser, tool.Fill} {
		e.OnToolChange(tl)
		mustActivate(t, e, i%4, (i*3)%4)
	}
	before := e.View()
	if ok, err := e.OnUndo(); !ok || err != nil {
		t.Fatal(ok, err)
	}
	if ok, err := e.OnRedo(); !ok || err != nil {
		t.Fatal(ok, err)
	}
	after := e.View()
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if before.Colors[r][c] != after.Colors[r][c] || before.Filled[r][c] != after.Filled[r][c] {
				t.Errorf("cell (%d,%d) changed across undo+redo", r, c)
			}
		}
	}
}

func TestEditClearsRedo(t *testing.T) {
	e, _ := newTestEditor(t, 2)
	mustActivate(t, e, 0, 0)
	e.OnUndo()
	if !e.CanRedo() {
		t.Fatal("expected redo")
	}
	mustActivate(t, e, 1, 1)
	if e.CanRedo() {
		t.Error("new edit kept the redo stack")
	}
}

func TestOutOfBoundsActivation(t *testing.T) {
	e, _ := newTestEditor(t, 2)
	err := e.OnCellActivate(2, 0)
	if !errors.Is(err, grid.ErrOutOfBounds) {
		t.Fatalf("err = %v", err)
	}
	if e.CanUndo() || e.Modified() {
		t.Error("failed activation recorded something")
	}
}

func TestEventsDispatchedOutsideLock(t *testing.T) {
	e, mgr := newTestEditor(t, 3)
	var sizes []int
	var cells int
	mgr.Subscribe(event.TypeCellsChanged, func(ev event.Event) bool {
		cells += len(ev.Data.(event.CellsChangedData).Cells)
		sizes = append(sizes, e.Size()) // re-enters the editor
		return false
	})

	mustActivate(t, e, 1, 1)
	e.OnUndo()
	e.OnRedo()
	if len(sizes) != 3 || cells != 3 {
		t.Errorf("handler calls = %d, cells = %d", len(sizes), cells)
	}
}

func TestResizeAndClear(t *testing.T) {
	e, mgr := newTestEditor(t, 3)
	var rebuilt []event.GridRebuiltData
	mgr.Subscribe(event.TypeGridRebuilt, func(ev event.Event) bool {
		rebuilt = append(rebuilt, ev.Data.(event.GridRebuiltData))
		return false
	})

	mustActivate(t, e, 2, 2)
	e.SetCursor(2, 2)
	if err := e.OnResize(2); err != nil {
		t.Fatal(err)
	}
	if e.Size() != 2 || e.CanUndo() || filledCount(e) != 0 {
		t.Errorf("resize kept state: size=%d undo=%v", e.Size(), e.CanUndo())
	}
	if r, c := e.Cursor(); r != 1 || c != 1 {
		t.Errorf("cursor = %d,%d, want clamped to 1,1", r, c)
	}
	if err := e.OnResize(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("OnResize(0) = %v", err)
	}
	if err := e.OnResize(snapshot.MaxGridSize + 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("oversize = %v", err)
	}

	mustActivate(t, e, 0, 0)
	if err := e.OnClear(); err != nil {
		t.Fatal(err)
	}
	if e.Size() != 2 || filledCount(e) != 0 || e.CanUndo() {
		t.Error("clear did not reset")
	}
	if len(rebuilt) != 2 || rebuilt[1].Rows != 2 {
		t.Errorf("rebuilt events = %v", rebuilt)
	}
}

func TestBackgroundChangeRepaintsBlankCells(t *testing.T) {
	e, mgr := newTestEditor(t, 2)
	mustActivate(t, e, 0, 0)

	var repainted []event.Coord
	mgr.Subscribe(event.TypeCellsChanged, func(ev event.Event) bool {
		repainted = ev.Data.(event.CellsChangedData).Cells
		return false
	})
	grey := color.RGB{R: 9, G: 9, B: 9}
	e.OnBackgroundColorChange(grey)

	if len(repainted) != 3 {
		t.Fatalf("repainted = %v", repainted)
	}
	if c, filled, _ := e.CellView(1, 1); filled || c != grey {
		t.Errorf("blank cell shows %v", c)
	}
	if c, _, _ := e.CellView(0, 0); c != red {
		t.Errorf("filled cell shows %v", c)
	}
}

func TestGridLinesToggle(t *testing.T) {
	e, mgr := newTestEditor(t, 2)
	var statuses []string
	mgr.Subscribe(event.TypeGridLinesChanged, func(ev event.Event) bool {
		statuses = append(statuses, ev.Data.(event.GridLinesChangedData).Status)
		return false
	})
	e.ToggleGridLines()
	e.SetGridLines(false)
	e.SetGridLines(true)
	if strings.Join(statuses, ",") != "OFF,ON" {
		t.Errorf("statuses = %v", statuses)
	}
	if got := e.Snapshot().GridLinesStatus; got != "ON" {
		t.Errorf("snapshot status = %q", got)
	}
}

func TestLoadJSONRejectsWithoutTouchingGrid(t *testing.T) {
	e, _ := newTestEditor(t, 3)
	mustActivate(t, e, 1, 1)

	bad := []string{
		`{"gridSize": 0, "gridLinesStatus": "ON", "penColor": "#000000", "backgroundColor": "#ffffff", "pixels": []}`,
		`{"gridSize": 2, "gridLinesStatus": "ON", "penColor": "#000000", "backgroundColor": "#ffffff", "pixels": [{"position": "5,5", "color": "rgb(1, 2, 3)"}]}`,
		`not json`,
	}
	for _, doc := range bad {
		if err := e.LoadJSON([]byte(doc)); !errors.Is(err, snapshot.ErrInvalidSnapshot) {
			t.Errorf("LoadJSON(%.30q) = %v", doc, err)
		}
	}
	if e.Size() != 3 || filledCount(e) != 1 || !e.CanUndo() {
		t.Error("rejected load changed the session")
	}
}

func TestLoadJSONReplacesSession(t *testing.T) {
	e, mgr := newTestEditor(t, 3)
	mustActivate(t, e, 0, 0)
	loaded := 0
	mgr.Subscribe(event.TypeSnapshotLoaded, func(ev event.Event) bool { loaded++; return false })

	doc := `{"gridSize": 4, "gridLinesStatus": "OFF", "penColor": "#00ff00", "backgroundColor": "#101010",
		"pixels": [{"position": "0,3", "color": "rgb(1, 2, 3)"}, {"position": "3,0", "color": "rgb(4, 5, 6)"}]}`
	if err := e.LoadJSON([]byte(doc)); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if e.Size() != 4 || e.GridLines() || e.PenColor() != (color.RGB{G: 255}) || e.BackgroundColor() != (color.RGB{R: 16, G: 16, B: 16}) {
		t.Errorf("meta not applied")
	}
	if !e.Modified() {
		t.Error("in-memory load is not on disk and should report modified")
	}
	if loaded != 1 {
		t.Errorf("loaded events = %d", loaded)
	}

	// Each replayed pixel undoes on its own.
	e.OnUndo()
	if _, filled, _ := e.CellView(3, 0); filled {
		t.Error("last pixel survived undo")
	}
	if _, filled, _ := e.CellView(0, 3); !filled {
		t.Error("first pixel undone too early")
	}
	if !e.Modified() {
		t.Error("undo after load should mark modified")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	e, mgr := newTestEditor(t, 5)
	saved := ""
	mgr.Subscribe(event.TypeSnapshotSaved, func(ev event.Event) bool {
		saved = ev.Data.(event.SnapshotData).Path
		return false
	})
	mustActivate(t, e, 4, 4)
	e.OnToolChange(tool.Lighten)
	mustActivate(t, e, 4, 4)
	if !e.Modified() {
		t.Fatal("edit not tracked")
	}

	path := filepath.Join(t.TempDir(), "art.json")
	if err := e.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if e.Modified() || saved != path {
		t.Errorf("after save: modified=%v event path=%q", e.Modified(), saved)
	}

	other, _ := newTestEditor(t, 1)
	if err := other.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if other.Modified() {
		t.Error("file load reported modified")
	}
	want, _, _ := e.CellView(4, 4)
	if got, filled, _ := other.CellView(4, 4); !filled || got != want {
		t.Errorf("loaded (4,4) = %v, want %v", got, want)
	}
	if err := other.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loading a missing file succeeded")
	}
}

func TestCursorScrollsViewport(t *testing.T) {
	e, _ := newTestEditor(t, 20)
	e.SetViewSize(5, 4)
	e.MoveCursor(10, 0)
	y, x := e.GetViewport()
	r, _ := e.Cursor()
	if r != 10 || y > r || r >= y+4 || x != 0 {
		t.Errorf("cursor %d viewport %d,%d", r, y, x)
	}
	e.MoveCursor(100, 100)
	if r, c := e.Cursor(); r != 19 || c != 19 {
		t.Errorf("cursor not clamped: %d,%d", r, c)
	}
	if y, x := e.GetViewport(); y != 16 || x != 15 {
		t.Errorf("viewport at end = %d,%d", y, x)
	}
	if err := e.ActivateCursor(); err != nil {
		t.Fatal(err)
	}
	if _, filled, _ := e.CellView(19, 19); !filled {
		t.Error("ActivateCursor did not paint")
	}
}

func TestShadedCellsSaveAndReload(t *testing.T) {
	e, _ := newTestEditor(t, 2)
	e.OnPenColorChange(color.Black)
	mustActivate(t, e, 0, 0)
	e.OnToolChange(tool.Shade)
	mustActivate(t, e, 0, 0)
	e.OnPenColorChange(color.White)
	e.OnToolChange(tool.Lighten)
	mustActivate(t, e, 1, 1)

	// The session keeps the unclamped channels.
	if got, _, _ := e.CellView(0, 0); got != (color.RGB{R: -25, G: -25, B: -25}) {
		t.Fatalf("shaded black = %v", got)
	}

	path := filepath.Join(t.TempDir(), "shaded.json")
	if err := e.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	other, _ := newTestEditor(t, 1)
	if err := other.LoadFile(path); err != nil {
		t.Fatalf("LoadFile of a shaded picture: %v", err)
	}
	if got, filled, _ := other.CellView(0, 0); !filled || got != color.Black {
		t.Errorf("reloaded (0,0) = %v filled=%v, want black", got, filled)
	}
	if got, filled, _ := other.CellView(1, 1); !filled || got != color.White {
		t.Errorf("reloaded (1,1) = %v filled=%v, want white", got, filled)
	}
}

type fakeClipboard struct{ text string }

func (f *fakeClipboard) ReadAll() (string, error) { return f.text, nil }
func (f *fakeClipboard) WriteAll(text string) error { f.text = text; return nil }

func TestCopyPasteSnapshot(t *testing.T) {
	src, mgr := newTestEditor(t, 3)
	var copied, saved int
	mgr.Subscribe(event.TypeSnapshotCopied, func(ev event.Event) bool { copied++; return false })
	mgr.Subscribe(event.TypeSnapshotSaved, func(ev event.Event) bool { saved++; return false })
	mustActivate(t, src, 2, 1)
	fake := &fakeClipboard{}
	cb := clipboard.NewManagerWithBackend(fake)
	if err := src.CopySnapshot(cb); err != nil {
		t.Fatal(err)
	}
	if copied != 1 || saved != 0 {
		t.Errorf("copy events: copied=%d saved=%d", copied, saved)
	}
	if !strings.Contains(fake.text, `"2,1"`) {
		t.Errorf("clipboard = %s", fake.text)
	}

	dst, _ := newTestEditor(t, 8)
	if err := dst.SaveFile(filepath.Join(t.TempDir(), "blank.json")); err != nil {
		t.Fatal(err)
	}
	if err := dst.PasteSnapshot(cb); err != nil {
		t.Fatalf("PasteSnapshot: %v", err)
	}
	if dst.Size() != 3 || filledCount(dst) != 1 {
		t.Errorf("size = %d filled = %d", dst.Size(), filledCount(dst))
	}
	if !dst.Modified() {
		t.Error("pasted picture differs from the saved file and should be modified")
	}

	fake.text = `{"gridSize": "big"}`
	if err := dst.PasteSnapshot(cb); !errors.Is(err, snapshot.ErrInvalidSnapshot) {
		t.Errorf("invalid paste = %v", err)
	}
	if dst.Size() != 3 {
		t.Error("invalid paste replaced the grid")
	}
}

func TestConcurrentEditsAndSnapshots(t *testing.T) {
	e, _ := newTestEditor(t, 16)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = e.OnCellActivate((w*4+i)%16, i%16)
				if i%10 == 0 {
					e.OnUndo()
				}
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			data, err := snapshot.Marshal(e.Snapshot())
			if err != nil {
				t.Error(err)
				return
			}
			if err := snapshot.Validate(data); err != nil {
				t.Errorf("snapshot taken mid-edit is invalid: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}

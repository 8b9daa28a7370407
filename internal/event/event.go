// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Grid state
	TypeCellsChanged     // One or more cells changed color or fill state
	TypeGridRebuilt      // The grid was destroyed and constructed again (resize, clear, load)
	TypeGridLinesChanged // Grid lines toggled

	// Tool and palette
	TypeToolChanged
	TypePenColorChanged
	TypeBackgroundChanged

	// Snapshots
	TypeSnapshotLoaded
	TypeSnapshotSaved
	TypeSnapshotCopied // Snapshot placed on the clipboard; nothing written to disk

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:           "unknown",
	TypeCellsChanged:      "cells-changed",
	TypeGridRebuilt:       "grid-rebuilt",
	TypeGridLinesChanged:  "grid-lines-changed",
	TypeToolChanged:       "tool-changed",
	TypePenColorChanged:   "pen-color-changed",
	TypeBackgroundChanged: "background-changed",
	TypeSnapshotLoaded:    "snapshot-loaded",
	TypeSnapshotSaved:     "snapshot-saved",
	TypeSnapshotCopied:    "snapshot-copied",
	TypeAppReady:          "app-ready",
	TypeAppQuit:           "app-quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// Coord addresses a cell in event payloads.
type Coord struct {
	Row, Col int
}

// CellsChangedData lists the cells a renderer should repaint.
type CellsChangedData struct {
	Cells []Coord
}

// GridRebuiltData carries the new dimensions.
type GridRebuiltData struct {
	Rows, Cols int
}

// GridLinesChangedData carries the new status, "ON" or "OFF".
type GridLinesChangedData struct {
	Status string
}

// ToolChangedData names the newly active tool.
type ToolChangedData struct {
	Tool string
}

// ColorChangedData is used for both pen and background changes.
type ColorChangedData struct {
	Color string // rgb(r, g, b)
}

// SnapshotData names the file involved, empty for clipboard transfers.
type SnapshotData struct {
	Path string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}

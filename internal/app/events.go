package app

import (
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/logger"
)

// subscribeEvents wires editor events to the UI.
func (a *App) subscribeEvents() {
	for _, t := range []event.Type{
		event.TypeCellsChanged,
		event.TypeGridRebuilt,
		event.TypeGridLinesChanged,
		event.TypeToolChanged,
		event.TypePenColorChanged,
		event.TypeBackgroundChanged,
		event.TypeSnapshotCopied,
	} {
		a.eventManager.Subscribe(t, a.handleStateChanged)
	}
	a.eventManager.Subscribe(event.TypeSnapshotSaved, a.handleSnapshotForStatus)
	a.eventManager.Subscribe(event.TypeSnapshotLoaded, a.handleSnapshotForStatus)
}

// handleStateChanged redraws after any change, including ones made by
// plugins outside the event loop.
func (a *App) handleStateChanged(e event.Event) bool {
	a.requestRedraw()
	return false // Not consumed
}

// handleSnapshotForStatus remembers the file behind the session.
// A paste loads with no path and leaves it alone.
func (a *App) handleSnapshotForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.SnapshotData); ok && data.Path != "" {
		a.setSnapshotPath(data.Path)
		logger.Debugf("App: %s '%s'", e.Type, data.Path)
	}
	a.requestRedraw()
	return false
}

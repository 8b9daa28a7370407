package core

import (
	"fmt"

	"github.com/bethropolis/pixie/internal/core/clipboard"
	"github.com/bethropolis/pixie/internal/event"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/snapshot"
)

// CopySnapshot puts the current snapshot JSON on the clipboard.
func (e *Editor) CopySnapshot(cb *clipboard.Manager) error {
	data, err := snapshot.Marshal(e.Snapshot())
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	cb.Write(data)
	e.dispatchNow(event.TypeSnapshotCopied, event.SnapshotData{})
	logger.Debugf("Editor: copied %d byte snapshot", len(data))
	return nil
}

// PasteSnapshot loads a snapshot from the clipboard. Invalid content is
// rejected before the grid is touched.
func (e *Editor) PasteSnapshot(cb *clipboard.Manager) error {
	data, err := cb.Read()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	if err := e.LoadJSON(data); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	return nil
}

// dispatchNow sends an event without going through the queue. The caller
// must not hold the lock.
func (e *Editor) dispatchNow(t event.Type, data interface{}) {
	if mgr := e.GetEventManager(); mgr != nil {
		mgr.Dispatch(t, data)
	}
}

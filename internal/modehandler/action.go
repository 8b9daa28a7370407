package modehandler

import (
	"github.com/bethropolis/pixie/internal/input"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/tool"
)

// keyCommands are normal-mode actions that run the command of the same
// meaning so the default save/export locations apply.
var keyCommands = map[input.Action]string{
	input.ActionSave:   "w",
	input.ActionLoad:   "load",
	input.ActionExport: "export",
	input.ActionCopy:   "copy",
	input.ActionPaste:  "paste",
}

// handleActionNormal handles actions when in ModeNormal.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	action := actionEvent.Action

	switch action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetTemporaryMessage(":")
		logger.Debugf("ModeHandler: Entering Command Mode")

	case input.ActionQuit:
		mh.RequestQuit(false)
	case input.ActionForceQuit:
		mh.RequestQuit(true)

	case input.ActionSave, input.ActionLoad, input.ActionExport, input.ActionCopy, input.ActionPaste:
		_ = mh.RunCommand(keyCommands[action])

	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	// Home and End stay on the current row.
	case input.ActionMoveHome:
		row, _ := mh.editor.Cursor()
		mh.editor.SetCursor(row, 0)
	case input.ActionMoveEnd:
		row, _ := mh.editor.Cursor()
		mh.editor.SetCursor(row, mh.editor.Size()-1)

	case input.ActionActivate:
		if err := mh.editor.ActivateCursor(); err != nil {
			mh.statusBar.SetTemporaryMessage("Paint failed: %v", err)
		}
	case input.ActionSelectTool:
		t := tool.Tool(actionEvent.Tool)
		mh.editor.OnToolChange(t)
		mh.statusBar.SetTemporaryMessage("Tool: %s", t)

	case input.ActionUndo:
		undone, err := mh.editor.OnUndo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
		} else if !undone {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		redone, err := mh.editor.OnRedo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
		} else if !redone {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionToggleGridLines:
		mh.editor.ToggleGridLines()
	case input.ActionGrow, input.ActionShrink:
		// The editor rejects sizes outside its bounds; the message says why.
		size := mh.editor.Size() + 1
		if action == input.ActionShrink {
			size -= 2
		}
		if err := mh.editor.OnResize(size); err != nil {
			mh.statusBar.SetTemporaryMessage("Resize failed: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Grid resized to %dx%d", size, size)
		}
	case input.ActionClear:
		if err := mh.editor.OnClear(); err != nil {
			mh.statusBar.SetTemporaryMessage("Clear failed: %v", err)
		}

	default:
		actionProcessed = false
	}

	// Any other processed action cancels a pending quit confirmation.
	if action != input.ActionQuit && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed || mh.forceQuitPending
}

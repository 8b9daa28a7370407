package modehandler

import (
	"strings"

	"github.com/bethropolis/pixie/internal/input"
	"github.com/bethropolis/pixie/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand. Every printable
// key is text here, whatever it is bound to in normal mode.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false

	switch actionEvent.Action {
	case input.ActionDeleteCommandChar:
		if len(mh.cmdBuffer) > 0 {
			mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]
			needsUpdate = true
		} else {
			// Backspace on an empty line leaves command mode, like vim.
			mh.currentMode = ModeNormal
			mh.statusBar.ResetTemporaryMessage()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
		}

	case input.ActionExecuteCommand:
		// Switch first so a command that fails still leaves command mode.
		mh.currentMode = ModeNormal
		mh.executeCommand()

	case input.ActionQuit: // Escape cancels; a typed 'q' carries a rune and is text
		if actionEvent.Rune != 0 {
			mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)
			needsUpdate = true
			break
		}
		mh.currentMode = ModeNormal
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.ResetTemporaryMessage()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")

	default:
		if actionEvent.Rune == 0 {
			actionProcessed = false
			break
		}
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)
		needsUpdate = true
	}

	if needsUpdate && mh.currentMode == ModeCommand {
		mh.statusBar.SetTemporaryMessage(":%s", string(mh.cmdBuffer))
	}
	return actionProcessed
}

// executeCommand parses and runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	cmdStr := string(mh.cmdBuffer)
	mh.cmdBuffer = mh.cmdBuffer[:0]

	// Clear the ":" prompt; RunCommand sets its own message on failure.
	mh.statusBar.ResetTemporaryMessage()
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return
	}
	_ = mh.RunCommand(parts[0], parts[1:]...)
}

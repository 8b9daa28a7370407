// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave
	ActionLoad
	ActionExport
	ActionCopy
	ActionPaste

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome // First column
	ActionMoveEnd  // Last column

	// --- Painting ---
	ActionActivate // Apply the active tool at the cursor
	ActionSelectTool
	ActionUndo
	ActionRedo
	ActionToggleGridLines
	ActionGrow
	ActionShrink
	ActionClear

	// --- Editor Mode ---
	ActionEnterCommandMode  // Special action for ':'
	ActionExecuteCommand    // Enter
	ActionCancelCommand     // Esc in Command Mode
	ActionInsertRune        // Any other rune; text in Command Mode
	ActionDeleteCommandChar // Backspace
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // The key pressed, for rune-triggered actions
	Tool   int  // tool.Tool for ActionSelectTool
}

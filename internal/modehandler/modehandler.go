// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/pixie/internal/core"
	"github.com/bethropolis/pixie/internal/input"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/plugin" // For CommandFunc type
	"github.com/bethropolis/pixie/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	quitOnce       sync.Once

	mu               sync.Mutex // guards commands; modes are only touched from the event loop
	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		logger.Debugf("Warning: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// RequestQuit closes the quit signal. Unless force is set, a modified
// session asks for confirmation first.
func (mh *ModeHandler) RequestQuit(force bool) {
	// The second request within the same confirmation window goes through.
	if !force && mh.editor.Modified() && !mh.forceQuitPending {
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Press q again or Ctrl+Q to force quit.")
		mh.forceQuitPending = true
		return
	}
	mh.quitOnce.Do(func() { close(mh.quitSignal) })
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	mh.mu.Lock()
	defer mh.mu.Unlock()
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands lists registered command names, sorted.
func (mh *ModeHandler) Commands() []string {
	mh.mu.Lock()
	defer mh.mu.Unlock()
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunCommand executes a registered command and reports failures on the
// status bar. It returns the command's error.
func (mh *ModeHandler) RunCommand(name string, args ...string) error {
	// Commands may register other commands, so don't hold the lock while running.
	mh.mu.Lock()
	cmdFunc, exists := mh.commands[name]
	mh.mu.Unlock()
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", name)
		return fmt.Errorf("unknown command: %s", name)
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", name, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, err)
		return err
	}
	return nil
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command line being typed, or "" outside command mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

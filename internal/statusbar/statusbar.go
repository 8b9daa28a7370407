// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg" // For proper Unicode width calculation
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleModified  tcell.Style // Style for the modified indicator
	StyleMessage   tcell.Style // Style for temporary messages
	StyleCommand   tcell.Style // Style for command mode input
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// CanvasInfo is the editing state shown on the right of the bar.
type CanvasInfo struct {
	Tool       string
	Pen        string
	Background string
	Size       int
	GridLines  string
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	snapshotPath string
	isModified   bool
	cursorRow    int
	cursorCol    int
	canvas       CanvasInfo
	editorMode   string

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetConfig swaps styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the snapshot path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.snapshotPath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor cell shown.
func (sb *StatusBar) SetCursorInfo(row, col int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorRow, sb.cursorCol = row, col
}

// SetCanvasInfo updates tool, colors, size and grid-line status.
func (sb *StatusBar) SetCanvasInfo(info CanvasInfo) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.canvas = info
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// getDefaultDisplayText builds the default status line text. Caller holds mu.
func (sb *StatusBar) getDefaultDisplayText() string {
	name := "[No File]"
	if sb.snapshotPath != "" {
		name = filepath.Base(sb.snapshotPath)
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}

	parts := []string{name + modifiedIndicator}
	c := sb.canvas
	if c.Tool != "" {
		parts = append(parts, "Tool: "+c.Tool)
	}
	if c.Pen != "" {
		parts = append(parts, "Pen: "+c.Pen)
	}
	if c.Background != "" {
		parts = append(parts, "Bg: "+c.Background)
	}
	if c.Size > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", c.Size, c.Size))
	}
	if c.GridLines != "" {
		parts = append(parts, "Grid: "+c.GridLines)
	}
	parts = append(parts, fmt.Sprintf("Cell: %d,%d", sb.cursorRow, sb.cursorCol))
	if sb.editorMode != "" {
		parts = append(parts, sb.editorMode)
	}
	return strings.Join(parts, " -- ")
}

// Text returns what Draw would show now and the style to show it in.
// Expired temporary messages are cleared.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	if isTempMsgActive {
		if strings.HasPrefix(sb.tempMessage, ":") {
			return sb.tempMessage, sb.config.StyleCommand
		}
		return sb.tempMessage, sb.config.StyleMessage
	}
	if sb.isModified {
		return sb.getDefaultDisplayText(), sb.config.StyleModified
	}
	return sb.getDefaultDisplayText(), sb.config.StyleDefault
}

// Draw renders the status bar onto the last screen line using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, style := sb.Text()

	// Fill the background first so stale text from a longer line is gone.
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break // A wide cluster that does not fit is dropped, not split
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}

// internal/input/keymap.go
package input

import (
	"github.com/bethropolis/pixie/internal/tool"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // For special keys (Enter, Arrows, etc.)
type RuneKeymap map[rune]Action         // For plain rune bindings
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers (Ctrl, Alt, Shift)

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
	toolKeys   map[rune]tool.Tool
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
		toolKeys:   make(map[rune]tool.Tool),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionExecuteCommand
	p.keymap[tcell.KeyBackspace] = ActionDeleteCommandChar
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCommandChar
	p.keymap[tcell.KeyEscape] = ActionQuit // Also cancels command mode

	// --- Ctrl bindings ---
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlO] = ActionLoad
	ctrlMap[tcell.KeyCtrlE] = ActionExport
	ctrlMap[tcell.KeyCtrlC] = ActionCopy
	ctrlMap[tcell.KeyCtrlV] = ActionPaste
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// --- Rune Mappings ---
	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap[' '] = ActionActivate
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['r'] = ActionRedo
	p.runeKeymap['g'] = ActionToggleGridLines
	p.runeKeymap['+'] = ActionGrow
	p.runeKeymap['='] = ActionGrow
	p.runeKeymap['-'] = ActionShrink
	p.runeKeymap['x'] = ActionClear
	p.runeKeymap['q'] = ActionQuit
	// Vim-style movement
	p.runeKeymap['h'] = ActionMoveLeft
	p.runeKeymap['j'] = ActionMoveDown
	p.runeKeymap['k'] = ActionMoveUp
	p.runeKeymap['l'] = ActionMoveRight

	// Tool keys win over runeKeymap; 'L' is capital because 'l' moves right.
	p.toolKeys['p'] = tool.Pen
	p.toolKeys['e'] = tool.Eraser
	p.toolKeys['f'] = tool.Fill
	p.toolKeys['s'] = tool.Shade
	p.toolKeys['L'] = tool.Lighten
	p.toolKeys['c'] = tool.Colorful
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// The mode handler decides how to interpret it; in command mode every rune
// is text regardless of its normal-mode binding.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// 1. Check Modifier + Key combinations
	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// Ctrl+letter keys already encode the modifier.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
		mod &^= tcell.ModCtrl
	}

	// 2. Check simple Key mappings
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Check Rune mappings
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if t, ok := p.toolKeys[runeVal]; ok {
			return ActionEvent{Action: ActionSelectTool, Rune: runeVal, Tool: int(t)}
		}
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		// Unbound runes are still text for command mode.
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}

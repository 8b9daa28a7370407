package input

import (
	"testing"

	"github.com/bethropolis/pixie/internal/tool"
	"github.com/gdamore/tcell/v2"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionEvent{Action: ActionMoveUp}},
		{"ctrl+s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionSave}},
		{"ctrl+z without mod flag", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModNone), ActionEvent{Action: ActionUndo}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionExecuteCommand}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCommandChar}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionQuit}},
		{"colon", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEvent{Action: ActionEnterCommandMode, Rune: ':'}},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionEvent{Action: ActionActivate, Rune: ' '}},
		{"fill tool", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone), ActionEvent{Action: ActionSelectTool, Rune: 'f', Tool: int(tool.Fill)}},
		{"lighten tool", tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModShift), ActionEvent{Action: ActionSelectTool, Rune: 'L', Tool: int(tool.Lighten)}},
		{"vim move", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), ActionEvent{Action: ActionMoveRight, Rune: 'l'}},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'z'}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ProcessEvent(tt.ev); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

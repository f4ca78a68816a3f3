package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cm/internal/keymap"
	"cm/internal/ui/input/types"
)

type DeleteMode struct {
	keys keymap.KeyMap
}

func NewDeleteMode(keys keymap.KeyMap) *DeleteMode {
	return &DeleteMode{keys: keys}
}

func (m *DeleteMode) Name() string {
	return "delete-confirm"
}

func (m *DeleteMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Cancel):
		// Cancel and return to normal mode
		return []types.Action{types.CancelAction{}}, true
	case key.Matches(msg, m.keys.Confirm, m.keys.Yes):
		// Confirm deletion
		return []types.Action{types.ConfirmAction{}}, true
	}

	switch msg.String() {
	case "n", "N":
		// Cancel deletion
		return []types.Action{types.CancelAction{}}, true
	}

	return nil, false
}

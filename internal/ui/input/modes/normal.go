package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cm/internal/keymap"
	"cm/internal/ui/input/types"
	"cm/internal/ui/state"
)

type NormalMode struct {
	keys keymap.KeyMap
}

func NewNormalMode(keys keymap.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	}

	// While the run gate is armed only confirm and cancel get through
	if ctx.Awaiting() {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return []types.Action{types.ConfirmAction{}}, true
		case key.Matches(msg, m.keys.Cancel):
			return []types.Action{types.CancelAction{}}, true
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, m.keys.NextTab):
		return []types.Action{types.SwitchTabAction{Delta: 1}}, true
	case key.Matches(msg, m.keys.PrevTab):
		return []types.Action{types.SwitchTabAction{Delta: -1}}, true
	case key.Matches(msg, m.keys.Left):
		return []types.Action{types.NavigateAction{Direction: types.Left}}, true
	case key.Matches(msg, m.keys.Right):
		return []types.Action{types.NavigateAction{Direction: types.Right}}, true
	}

	// The Keys and Store tabs are read-only
	if ctx.Tab() != state.TabPrimary {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: types.Up}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: types.Down}}, true
	case key.Matches(msg, m.keys.Confirm):
		return []types.Action{types.ConfirmAction{}}, true
	case key.Matches(msg, m.keys.Cancel):
		return []types.Action{types.CancelAction{}}, true
	case key.Matches(msg, m.keys.AddNS):
		return []types.Action{types.BeginAddAction{Field: state.AddNamespace}}, true
	case key.Matches(msg, m.keys.AddCmd):
		return []types.Action{types.BeginAddAction{Field: state.AddCommandValue}}, true
	case key.Matches(msg, m.keys.Delete):
		return []types.Action{types.BeginDeleteAction{}}, true
	case key.Matches(msg, m.keys.Copy):
		// Copy only makes sense on a command row
		if ctx.CommandFocused() {
			return []types.Action{types.CopyAction{}}, true
		}
		return nil, true
	}

	return nil, false
}

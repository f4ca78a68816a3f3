package modes

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cm/internal/keymap"
	"cm/internal/ui/input/types"
)

// AddMode captures free text for the add wizard. Quit is not accepted here so a
// stray 'q' is typed instead of discarding the input.
type AddMode struct {
	keys keymap.KeyMap
}

func NewAddMode(keys keymap.KeyMap) *AddMode {
	return &AddMode{keys: keys}
}

func (m *AddMode) Name() string {
	return "add"
}

func (m *AddMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Cancel):
		// Abandon the wizard
		return []types.Action{types.CancelAction{}}, true
	}

	// Final step: both values entered, waiting for the commit key
	if ctx.Awaiting() {
		if key.Matches(msg, m.keys.Confirm, m.keys.Yes) {
			return []types.Action{types.ConfirmAction{}}, true
		}
		return nil, true
	}

	if key.Matches(msg, m.keys.Backspace) {
		return []types.Action{types.BackspaceAction{}}, true
	}

	switch msg.Type {
	case tea.KeyEnter:
		return []types.Action{types.SubmitTextAction{}}, true
	case tea.KeySpace:
		return []types.Action{types.InsertTextAction{Text: " "}}, true
	case tea.KeyRunes:
		// Pasted text keeps its newlines and tabs; names stay on one line
		text := strings.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return -1
			}
			return r
		}, string(msg.Runes))
		if text == "" {
			return nil, true
		}
		return []types.Action{types.InsertTextAction{Text: text}}, true
	}

	// Swallow everything else so navigation keys don't leak out of the field
	return nil, true
}

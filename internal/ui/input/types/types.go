package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"cm/internal/ui/state"
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to session state needed for input handling
type Context interface {
	Mode() state.Mode
	Tab() state.Tab
	AddField() state.AddField
	Awaiting() bool
	Focus() state.Focus
	CommandFocused() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Name returns the mode name for display
	Name() string
}

package input

import "cm/internal/ui/state"

// SessionContext implements the Context interface for the input handler
type SessionContext struct {
	Session *state.Session
}

func (c SessionContext) Mode() state.Mode {
	return c.Session.State.Mode
}

func (c SessionContext) Tab() state.Tab {
	return c.Session.State.Tab
}

func (c SessionContext) AddField() state.AddField {
	return c.Session.State.AddField
}

func (c SessionContext) Awaiting() bool {
	return c.Session.State.Awaiting()
}

func (c SessionContext) Focus() state.Focus {
	return c.Session.Focus()
}

func (c SessionContext) CommandFocused() bool {
	return c.Session.CommandFocused()
}

package types

import "cm/internal/ui/state"

// Direction of a NavigateAction
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Navigation actions
type NavigateAction struct {
	Direction Direction
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchTabAction struct {
	Delta int // +1 next tab, -1 previous tab
}

func (a SwitchTabAction) Type() string { return "switch_tab" }

// Gate actions
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

type CancelAction struct{}

func (a CancelAction) Type() string { return "cancel" }

// Mode transition actions
type BeginAddAction struct {
	Field state.AddField
}

func (a BeginAddAction) Type() string { return "begin_add" }

type BeginDeleteAction struct{}

func (a BeginDeleteAction) Type() string { return "begin_delete" }

// Text input actions
type InsertTextAction struct {
	Text string
}

func (a InsertTextAction) Type() string { return "insert_text" }

type BackspaceAction struct{}

func (a BackspaceAction) Type() string { return "backspace" }

type SubmitTextAction struct{}

func (a SubmitTextAction) Type() string { return "submit_text" }

// UI actions handled by the model itself
type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

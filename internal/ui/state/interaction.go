package state

import "fmt"

// Tab identifies the active top-level tab
type Tab int

const (
	TabPrimary Tab = iota
	TabSecondary
	TabTertiary
)

// TabCount is the number of tabs
const TabCount = 3

// Next returns the following tab, wrapping around
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % TabCount)
}

// Previous returns the preceding tab, wrapping around
func (t Tab) Previous() Tab {
	return Tab((int(t) + TabCount - 1) % TabCount)
}

// Mode is the top-level interaction mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAdd:
		return "add"
	case ModeDelete:
		return "delete"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// AddField is the field being typed while in Add mode
type AddField int

const (
	AddNone AddField = iota
	AddNamespace
	AddCommandValue
	AddCommandTag
)

func (f AddField) String() string {
	switch f {
	case AddNone:
		return "none"
	case AddNamespace:
		return "namespace"
	case AddCommandValue:
		return "command"
	case AddCommandTag:
		return "tag"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Confirm is the three-valued confirmation gate
type Confirm int

const (
	ConfirmHidden Confirm = iota
	ConfirmAwaiting
	ConfirmConfirmed
)

func (c Confirm) String() string {
	switch c {
	case ConfirmHidden:
		return "hidden"
	case ConfirmAwaiting:
		return "awaiting"
	case ConfirmConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("confirm(%d)", int(c))
	}
}

// InteractionState is the finite-state record driven by the engine
type InteractionState struct {
	Tab      Tab
	Mode     Mode
	AddField AddField
	Confirm  Confirm
}

// NewInteractionState returns the initial state (Primary, Normal, None, Hidden)
func NewInteractionState() InteractionState {
	return InteractionState{}
}

// Reset returns to (Normal, None, Hidden) keeping the active tab
func (s *InteractionState) Reset() {
	s.Mode = ModeNormal
	s.AddField = AddNone
	s.Confirm = ConfirmHidden
}

// BeginAdd enters Add mode on the given field
func (s *InteractionState) BeginAdd(field AddField) {
	s.Mode = ModeAdd
	s.AddField = field
	s.Confirm = ConfirmHidden
}

// BeginDelete enters Delete mode with the gate armed
func (s *InteractionState) BeginDelete() {
	s.Mode = ModeDelete
	s.AddField = AddNone
	s.Confirm = ConfirmAwaiting
}

// Awaiting reports whether the confirmation gate is armed
func (s InteractionState) Awaiting() bool {
	return s.Confirm == ConfirmAwaiting
}

func (s InteractionState) String() string {
	return fmt.Sprintf("tab=%d mode=%s field=%s confirm=%s", int(s.Tab), s.Mode, s.AddField, s.Confirm)
}

// Validate checks the invariants that tie the fields together.
// commandSelected tells whether a command row is selected in the session.
func (s InteractionState) Validate(commandSelected bool) error {
	if s.AddField != AddNone && s.Mode != ModeAdd {
		return fmt.Errorf("add field %s outside add mode (%s)", s.AddField, s.Mode)
	}
	if s.Mode == ModeAdd && s.AddField == AddNone {
		return fmt.Errorf("add mode without a field")
	}
	if s.Confirm == ConfirmAwaiting {
		switch {
		case s.Mode == ModeDelete:
		case s.Mode == ModeNormal && commandSelected:
		case s.Mode == ModeAdd && s.AddField == AddCommandTag:
		default:
			return fmt.Errorf("confirmation armed in invalid state: %s", s)
		}
	}
	return nil
}

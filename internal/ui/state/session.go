package state

import (
	"fmt"
	"unicode"
)

// Focus is the level that currently owns the highlight
type Focus int

const (
	FocusTabs Focus = iota
	FocusNamespaces
	FocusCommands
)

func (f Focus) String() string {
	switch f {
	case FocusNamespaces:
		return "namespaces"
	case FocusCommands:
		return "commands"
	default:
		return "tabs"
	}
}

// NoticeKind classifies a Notice
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// Notice is a one-line message shown in the status bar until the next key
type Notice struct {
	Kind NoticeKind
	Text string
}

// Session owns everything the engine mutates while handling one key
type Session struct {
	Namespaces *List[string]
	Commands   *List[string]
	Tags       *List[string]

	State  InteractionState
	Cursor *TextCursor

	// Inputs holds one buffer per add field so partial input never leaks between fields
	Inputs map[AddField]string
	Notice *Notice

	inputX, inputY, inputWidth int
}

// NewSession creates a session with empty lists in the initial state
func NewSession(namespaces []string) *Session {
	return &Session{
		Namespaces: NewList(namespaces),
		Commands:   NewList[string](nil),
		Tags:       NewList[string](nil),
		State:      NewInteractionState(),
		Inputs:     make(map[AddField]string),
		inputWidth: 1,
	}
}

// Focus derives the focused level from the list flags
func (s *Session) Focus() Focus {
	switch {
	case s.Commands.Focused:
		return FocusCommands
	case s.Namespaces.Focused:
		return FocusNamespaces
	default:
		return FocusTabs
	}
}

// CommandFocused reports whether the commands list is focused and has a row to act on
func (s *Session) CommandFocused() bool {
	return s.Commands.Focused && s.Commands.HasSelection()
}

// NamespaceFocused reports whether the namespaces list is focused with a selection
func (s *Session) NamespaceFocused() bool {
	return s.Namespaces.Focused && s.Namespaces.HasSelection()
}

// CurrentNamespace returns the selected namespace name
func (s *Session) CurrentNamespace() (string, bool) {
	if !s.Namespaces.HasSelection() {
		return "", false
	}
	return s.Namespaces.CurrentItem(), true
}

// CurrentEntry returns the selected command and its tag
func (s *Session) CurrentEntry() (string, string, bool) {
	i, ok := s.Commands.Selected()
	if !ok || i >= s.Tags.Len() {
		return "", "", false
	}
	return s.Commands.Items[i], s.Tags.Items[i], true
}

// FocusNamespaces moves the highlight to the namespace column
func (s *Session) FocusNamespaces() {
	s.Namespaces.Focused = true
	s.Commands.Focused = false
	s.Tags.Focused = false
}

// FocusCommands moves the highlight to the command column and selects the first row
func (s *Session) FocusCommands() {
	s.Namespaces.Focused = false
	s.Commands.Focused = true
	s.Tags.Focused = true
	s.Commands.Select(0)
	s.Tags.Select(0)
}

// BlurCommands drops the command highlight but keeps its selection
func (s *Session) BlurCommands() {
	s.Commands.Focused = false
	s.Tags.Focused = false
}

// RefocusCommands restores the command highlight after BlurCommands
func (s *Session) RefocusCommands() {
	s.Commands.Focused = true
	s.Tags.Focused = true
}

// FocusTabs clears every selection and returns the highlight to the tab bar
func (s *Session) FocusTabs() {
	s.Namespaces.Focused = false
	s.Namespaces.ClearSelection()
	s.Commands = NewList[string](nil)
	s.Tags = NewList[string](nil)
}

// ReplaceNamespaces swaps in a freshly loaded namespace list, keeping focus and
// reselecting keep by name when it is still present
func (s *Session) ReplaceNamespaces(names []string, keep string) {
	next := NewList(names)
	next.Focused = s.Namespaces.Focused
	if keep != "" {
		next.Select(next.IndexOf(func(n string) bool { return n == keep }))
	}
	s.Namespaces = next
}

// ReplaceCommands swaps in freshly loaded commands and tags. The lists keep their
// focus flags and start unselected.
func (s *Session) ReplaceCommands(commands, tags []string) error {
	if len(commands) != len(tags) {
		return fmt.Errorf("commands and tags out of step: %d commands, %d tags", len(commands), len(tags))
	}
	cmds := NewList(commands)
	cmds.Focused = s.Commands.Focused
	tgs := NewList(tags)
	tgs.Focused = s.Tags.Focused
	s.Commands = cmds
	s.Tags = tgs
	return nil
}

// SelectCommand selects row i in both command and tag lists
func (s *Session) SelectCommand(i int) {
	s.Commands.Select(i)
	s.Tags.Select(i)
}

// SetInputGeometry records where the renderer draws the input field. A live cursor
// is rebuilt from the field buffer so it wraps at the new width.
func (s *Session) SetInputGeometry(x, y, width int) {
	if x == s.inputX && y == s.inputY && width == s.inputWidth {
		return
	}
	s.inputX, s.inputY, s.inputWidth = x, y, width
	if s.Cursor == nil {
		return
	}
	s.Cursor = NewTextCursor(x, y, width)
	for _, r := range s.Inputs[s.State.AddField] {
		s.Cursor.Push(r)
	}
}

// Input returns the buffer of the given field
func (s *Session) Input(field AddField) string {
	return s.Inputs[field]
}

// TypeRune appends r to the active field, creating the cursor on the first keystroke
func (s *Session) TypeRune(r rune) {
	field := s.State.AddField
	if field == AddNone || unicode.IsControl(r) {
		return
	}
	if s.Cursor == nil {
		s.Cursor = NewTextCursor(s.inputX, s.inputY, s.inputWidth)
		for _, prev := range s.Inputs[field] {
			s.Cursor.Push(prev)
		}
	}
	s.Cursor.Push(r)
	s.Inputs[field] = s.Cursor.Text()
}

// Backspace removes the last character of the active field
func (s *Session) Backspace() {
	field := s.State.AddField
	if field == AddNone || s.Inputs[field] == "" {
		return
	}
	if s.Cursor == nil {
		runes := []rune(s.Inputs[field])
		s.Inputs[field] = string(runes[:len(runes)-1])
		return
	}
	s.Cursor.Pop()
	s.Inputs[field] = s.Cursor.Text()
}

// EndEntry drops the cursor when a field is done; its buffer is kept
func (s *Session) EndEntry() {
	s.Cursor = nil
}

// ClearInputs drops every field buffer and the cursor
func (s *Session) ClearInputs() {
	s.Inputs = make(map[AddField]string)
	s.Cursor = nil
}

// SetError surfaces err in the status bar
func (s *Session) SetError(err error) {
	s.Notice = &Notice{Kind: NoticeError, Text: err.Error()}
}

// SetInfo surfaces an informational message
func (s *Session) SetInfo(format string, args ...any) {
	s.Notice = &Notice{Kind: NoticeInfo, Text: fmt.Sprintf(format, args...)}
}

// ClearNotice removes the current message
func (s *Session) ClearNotice() {
	s.Notice = nil
}

// Validate checks the cross-list invariants together with the interaction state
func (s *Session) Validate() error {
	if s.Commands.Len() != s.Tags.Len() {
		return fmt.Errorf("commands and tags out of step: %d vs %d", s.Commands.Len(), s.Tags.Len())
	}
	ci, cok := s.Commands.Selected()
	ti, tok := s.Tags.Selected()
	if cok != tok || ci != ti {
		return fmt.Errorf("command and tag selection diverged")
	}
	if s.State.AddField == AddNone && s.Cursor != nil {
		return fmt.Errorf("text cursor outside add mode")
	}
	return s.State.Validate(s.Commands.HasSelection())
}

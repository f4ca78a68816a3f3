package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"cm/internal/domain"
	"cm/internal/store"
	"cm/internal/ui/input/types"
	"cm/internal/ui/state"
)

// Execution is the command picked by the user, handed to the shell after the UI exits
type Execution struct {
	Command string
	Tag     string
}

// Outcome is what one step of the engine asks of the outer loop
type Outcome struct {
	Run  *Execution
	Quit bool
}

// Done reports whether the outer loop should stop
func (o Outcome) Done() bool {
	return o.Quit || o.Run != nil
}

// Engine applies actions to a session. Every store call is synchronous so the session
// never shows a namespace whose commands have not been loaded yet.
type Engine struct {
	store   store.DataStore
	timeout time.Duration
	log     zerolog.Logger
}

// NewEngine creates an engine backed by ds. Store calls are bounded by timeout.
func NewEngine(ds store.DataStore, timeout time.Duration, log zerolog.Logger) *Engine {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Engine{store: ds, timeout: timeout, log: log}
}

// Apply runs one action against s
func (e *Engine) Apply(ctx context.Context, s *state.Session, action types.Action) Outcome {
	s.ClearNotice()
	before := s.State

	out := e.apply(ctx, s, action)

	e.log.Debug().
		Str("action", action.Type()).
		Stringer("from", before).
		Stringer("to", s.State).
		Stringer("focus", s.Focus()).
		Msg("transition")
	return out
}

func (e *Engine) apply(ctx context.Context, s *state.Session, action types.Action) Outcome {
	switch a := action.(type) {
	case types.QuitAction:
		if a.Force || s.State.Mode != state.ModeAdd {
			return Outcome{Quit: true}
		}
	case types.SwitchTabAction:
		if s.State.Mode == state.ModeNormal && !s.State.Awaiting() {
			e.switchTab(s, a.Delta)
		}
	case types.NavigateAction:
		if s.State.Mode == state.ModeNormal && !s.State.Awaiting() {
			e.navigate(ctx, s, a.Direction)
		}
	case types.ConfirmAction:
		return e.confirm(ctx, s)
	case types.CancelAction:
		e.cancel(s)
	case types.BeginAddAction:
		e.beginAdd(s, a.Field)
	case types.BeginDeleteAction:
		e.beginDelete(s)
	case types.InsertTextAction:
		if s.State.Mode == state.ModeAdd && !s.State.Awaiting() {
			for _, r := range a.Text {
				s.TypeRune(r)
			}
		}
	case types.BackspaceAction:
		if s.State.Mode == state.ModeAdd && !s.State.Awaiting() {
			s.Backspace()
		}
	case types.SubmitTextAction:
		e.submit(ctx, s)
	}
	return Outcome{}
}

func (e *Engine) switchTab(s *state.Session, delta int) {
	if delta < 0 {
		s.State.Tab = s.State.Tab.Previous()
		return
	}
	s.State.Tab = s.State.Tab.Next()
}

func (e *Engine) navigate(ctx context.Context, s *state.Session, dir types.Direction) {
	if s.State.Tab != state.TabPrimary {
		switch dir {
		case types.Left:
			e.switchTab(s, -1)
		case types.Right:
			e.switchTab(s, 1)
		}
		return
	}

	switch dir {
	case types.Right:
		e.moveRight(s)
	case types.Left:
		e.moveLeft(s)
	case types.Down:
		e.moveVertical(ctx, s, true)
	case types.Up:
		e.moveVertical(ctx, s, false)
	}
}

func (e *Engine) moveRight(s *state.Session) {
	switch s.Focus() {
	case state.FocusCommands:
		// deepest level
	case state.FocusNamespaces:
		if s.Namespaces.HasSelection() {
			s.FocusCommands()
		}
	case state.FocusTabs:
		if s.Namespaces.IsEmpty() {
			return
		}
		e.switchTab(s, 1)
	}
}

func (e *Engine) moveLeft(s *state.Session) {
	switch s.Focus() {
	case state.FocusCommands:
		s.Commands.ClearSelection()
		s.Tags.ClearSelection()
		s.FocusNamespaces()
	case state.FocusNamespaces:
		s.FocusTabs()
	case state.FocusTabs:
		if s.Namespaces.IsEmpty() {
			return
		}
		e.switchTab(s, -1)
	}
}

func (e *Engine) moveVertical(ctx context.Context, s *state.Session, down bool) {
	switch s.Focus() {
	case state.FocusCommands:
		// commands and tags are index-aligned and always move together
		if down {
			s.Commands.Next()
			s.Tags.Next()
		} else {
			s.Commands.Previous()
			s.Tags.Previous()
		}
	case state.FocusNamespaces:
		var (
			idx int
			ok  bool
		)
		if down {
			idx, ok = s.Namespaces.NextIndex()
		} else {
			idx, ok = s.Namespaces.PreviousIndex()
		}
		if ok {
			e.selectNamespace(ctx, s, idx)
		}
	case state.FocusTabs:
		if s.Namespaces.IsEmpty() {
			return
		}
		if e.selectNamespace(ctx, s, 0) {
			s.FocusNamespaces()
		}
	}
}

// selectNamespace loads the commands of namespace i and only then moves the selection
func (e *Engine) selectNamespace(ctx context.Context, s *state.Session, i int) bool {
	name := s.Namespaces.Items[i]
	commands, tags, err := e.loadCommands(ctx, name)
	if err != nil {
		e.fail(s, err)
		return false
	}
	if err := s.ReplaceCommands(commands, tags); err != nil {
		e.fail(s, err)
		return false
	}
	s.Namespaces.Select(i)
	return true
}

func (e *Engine) confirm(ctx context.Context, s *state.Session) Outcome {
	switch s.State.Mode {
	case state.ModeNormal:
		return e.confirmNormal(s)
	case state.ModeAdd:
		if s.State.AddField == state.AddCommandTag && s.State.Awaiting() {
			e.commitCommand(ctx, s)
		}
	case state.ModeDelete:
		if s.State.Awaiting() {
			e.commitDelete(ctx, s)
		}
	}
	return Outcome{}
}

func (e *Engine) confirmNormal(s *state.Session) Outcome {
	if s.State.Tab != state.TabPrimary {
		return Outcome{}
	}
	if s.State.Awaiting() {
		command, tag, ok := s.CurrentEntry()
		if !ok {
			return Outcome{}
		}
		s.State.Confirm = state.ConfirmConfirmed
		e.log.Info().Str("command", command).Str("tag", tag).Msg("command selected")
		return Outcome{Run: &Execution{Command: command, Tag: tag}}
	}

	switch s.Focus() {
	case state.FocusCommands:
		if !s.CommandFocused() {
			return Outcome{}
		}
		// The prompt replaces the list highlight until the user commits or backs out
		s.BlurCommands()
		s.State.Confirm = state.ConfirmAwaiting
	case state.FocusNamespaces:
		if s.Namespaces.HasSelection() {
			s.FocusCommands()
		}
	}
	return Outcome{}
}

func (e *Engine) cancel(s *state.Session) {
	switch s.State.Mode {
	case state.ModeAdd:
		s.ClearInputs()
		s.State.Reset()
	case state.ModeDelete:
		s.State.Reset()
	case state.ModeNormal:
		if s.State.Tab != state.TabPrimary {
			return
		}
		if s.State.Awaiting() {
			s.RefocusCommands()
			s.State.Confirm = state.ConfirmHidden
			return
		}
		if s.Focus() != state.FocusTabs {
			s.FocusTabs()
		}
	}
}

func (e *Engine) beginAdd(s *state.Session, field state.AddField) {
	if s.State.Mode != state.ModeNormal || s.State.Awaiting() || s.State.Tab != state.TabPrimary {
		return
	}
	switch field {
	case state.AddNamespace:
	case state.AddCommandValue:
		if !s.Namespaces.HasSelection() {
			s.SetInfo("select a namespace first")
			return
		}
	default:
		return
	}
	s.ClearInputs()
	s.State.BeginAdd(field)
}

func (e *Engine) beginDelete(s *state.Session) {
	if s.State.Mode != state.ModeNormal || s.State.Awaiting() || s.State.Tab != state.TabPrimary {
		return
	}
	if s.CommandFocused() || s.NamespaceFocused() {
		s.State.BeginDelete()
	}
}

func (e *Engine) submit(ctx context.Context, s *state.Session) {
	if s.State.Mode != state.ModeAdd || s.State.Awaiting() {
		return
	}
	field := s.State.AddField
	text := s.Input(field)
	if text == "" {
		s.SetError(fmt.Errorf("%s: %w", field, domain.ErrEmptyInput))
		return
	}

	switch field {
	case state.AddNamespace:
		e.commitNamespace(ctx, s, text)
	case state.AddCommandValue:
		s.EndEntry()
		s.State.AddField = state.AddCommandTag
	case state.AddCommandTag:
		s.EndEntry()
		s.State.Confirm = state.ConfirmAwaiting
	}
}

func (e *Engine) commitNamespace(ctx context.Context, s *state.Session, name string) {
	_, exists, err := e.findNamespace(ctx, name)
	if err != nil {
		e.fail(s, err)
		return
	}
	if exists {
		s.SetError(fmt.Errorf("%q: %w", name, domain.ErrNamespaceExists))
		return
	}
	if err := e.call(ctx, func(ctx context.Context) error { return e.store.CreateNamespace(ctx, name) }); err != nil {
		e.fail(s, err)
		return
	}
	e.log.Info().Str("namespace", name).Msg("namespace created")

	// The row is committed; whatever happens next the wizard is over
	s.ClearInputs()
	s.State.Reset()

	names, err := e.listNamespaces(ctx)
	if err != nil {
		e.fail(s, err)
		return
	}
	keep, _ := s.CurrentNamespace()
	s.ReplaceNamespaces(names, keep)
	s.SetInfo("namespace %q created", name)
}

func (e *Engine) commitCommand(ctx context.Context, s *state.Session) {
	ns, ok := s.CurrentNamespace()
	if !ok {
		s.SetError(fmt.Errorf("no namespace selected: %w", domain.ErrNotFound))
		return
	}
	command := s.Input(state.AddCommandValue)
	tag := s.Input(state.AddCommandTag)
	err := e.call(ctx, func(ctx context.Context) error {
		return e.store.CreateCommandAndTag(ctx, command, tag, ns)
	})
	if err != nil {
		e.fail(s, err)
		return
	}
	e.log.Info().Str("namespace", ns).Str("command", command).Str("tag", tag).Msg("command created")

	s.ClearInputs()
	s.State.Reset()

	commands, tags, err := e.loadCommands(ctx, ns)
	if err != nil {
		e.fail(s, err)
		return
	}
	if err := s.ReplaceCommands(commands, tags); err != nil {
		e.fail(s, err)
		return
	}
	if s.Commands.Focused {
		s.SelectCommand(0)
	}
	s.SetInfo("added %q to %s", tag, ns)
}

func (e *Engine) commitDelete(ctx context.Context, s *state.Session) {
	ns, ok := s.CurrentNamespace()
	if !ok {
		s.State.Reset()
		return
	}

	if s.CommandFocused() {
		command, _, _ := s.CurrentEntry()
		err := e.call(ctx, func(ctx context.Context) error { return e.store.DeleteCommand(ctx, command, ns) })
		if err != nil {
			e.fail(s, err)
			return
		}
		e.log.Info().Str("namespace", ns).Str("command", command).Msg("command deleted")
		s.State.Reset()

		commands, tags, err := e.loadCommands(ctx, ns)
		if err != nil {
			e.fail(s, err)
			return
		}
		if err := s.ReplaceCommands(commands, tags); err != nil {
			e.fail(s, err)
			return
		}
		s.SelectCommand(0)
		s.SetInfo("deleted %q", command)
		return
	}

	if !s.NamespaceFocused() {
		s.State.Reset()
		return
	}
	err := e.call(ctx, func(ctx context.Context) error { return e.store.DeleteNamespace(ctx, ns) })
	if err != nil {
		e.fail(s, err)
		return
	}
	e.log.Info().Str("namespace", ns).Msg("namespace deleted")
	s.State.Reset()

	// Fetch everything first; on failure only the deleted row is dropped locally
	names, err := e.listNamespaces(ctx)
	if err != nil {
		e.forgetNamespace(s, ns)
		e.fail(s, err)
		return
	}
	var commands, tags []string
	if len(names) > 0 {
		commands, tags, err = e.loadCommands(ctx, names[0])
		if err != nil {
			e.forgetNamespace(s, ns)
			e.fail(s, err)
			return
		}
	}

	s.ReplaceNamespaces(names, "")
	if len(names) == 0 {
		s.FocusTabs()
	} else {
		s.Namespaces.Select(0)
		if err := s.ReplaceCommands(commands, tags); err != nil {
			e.fail(s, err)
			return
		}
	}
	s.SetInfo("deleted namespace %q", ns)
}

// forgetNamespace removes a namespace the store no longer has without asking the store again
func (e *Engine) forgetNamespace(s *state.Session, name string) {
	kept := make([]string, 0, s.Namespaces.Len())
	for _, n := range s.Namespaces.Items {
		if n != name {
			kept = append(kept, n)
		}
	}
	s.ReplaceNamespaces(kept, "")
	s.FocusTabs()
}

// Reload refreshes every list from the store, keeping the selected namespace when it still exists
func (e *Engine) Reload(ctx context.Context, s *state.Session) error {
	names, err := e.listNamespaces(ctx)
	if err != nil {
		return err
	}
	keep, _ := s.CurrentNamespace()
	var commands, tags []string
	if keep != "" {
		if commands, tags, err = e.loadCommands(ctx, keep); err != nil {
			return err
		}
	}
	s.ReplaceNamespaces(names, keep)
	if !s.Namespaces.HasSelection() {
		commands, tags = nil, nil
	}
	return s.ReplaceCommands(commands, tags)
}

// Stats returns the store summary shown on the Store tab
func (e *Engine) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	err := e.call(ctx, func(ctx context.Context) error {
		var err error
		st, err = e.store.Stats(ctx)
		return err
	})
	return st, err
}

func (e *Engine) listNamespaces(ctx context.Context) ([]string, error) {
	var names []string
	err := e.call(ctx, func(ctx context.Context) error {
		var err error
		names, err = e.store.ListNamespaces(ctx)
		return err
	})
	return names, err
}

func (e *Engine) findNamespace(ctx context.Context, name string) (string, bool, error) {
	var (
		found string
		ok    bool
	)
	err := e.call(ctx, func(ctx context.Context) error {
		var err error
		found, ok, err = e.store.FindNamespace(ctx, name)
		return err
	})
	return found, ok, err
}

func (e *Engine) loadCommands(ctx context.Context, namespace string) ([]string, []string, error) {
	var commands, tags []string
	err := e.call(ctx, func(ctx context.Context) error {
		var err error
		commands, tags, err = e.store.ListCommandsAndTags(ctx, namespace)
		return err
	})
	return commands, tags, err
}

// call runs fn under the store timeout
func (e *Engine) call(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return fn(ctx)
}

func (e *Engine) fail(s *state.Session, err error) {
	level := zerolog.ErrorLevel
	if errors.Is(err, domain.ErrTagExists) || errors.Is(err, domain.ErrEmptyInput) {
		level = zerolog.WarnLevel
	}
	e.log.WithLevel(level).Err(err).Stringer("state", s.State).Msg("store call failed")
	s.SetError(err)
}

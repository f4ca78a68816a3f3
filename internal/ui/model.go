package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"cm/internal/config"
	"cm/internal/domain"
	"cm/internal/keymap"
	"cm/internal/ui/input"
	inputtypes "cm/internal/ui/input/types"
	"cm/internal/ui/logic"
	"cm/internal/ui/state"
	"cm/internal/ui/views"
)

// Option customises a Model
type Option func(*Model)

// WithClipboard replaces the system clipboard used by the copy key
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copyText = write
	}
}

// WithKeyMap replaces the default key bindings
func WithKeyMap(keys keymap.KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// Model represents the UI state
type Model struct {
	ctx     context.Context
	config  *config.Config
	log     zerolog.Logger
	session *state.Session

	width  int
	height int
	help   help.Model
	keys   keymap.KeyMap

	engine       *logic.Engine
	inputHandler *input.Handler
	renderer     *views.Renderer
	copyText     func(string) error

	stats       *domain.Stats
	statsErr    error
	result      *logic.Execution
	inPagerMode bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the UI model and loads the namespace list
func NewModel(ctx context.Context, cfg *config.Config, engine *logic.Engine, log zerolog.Logger, opts ...Option) (*Model, error) {
	m := &Model{
		ctx:      ctx,
		config:   cfg,
		log:      log,
		session:  state.NewSession(nil),
		help:     help.New(),
		keys:     keymap.Default(),
		engine:   engine,
		renderer: views.NewRenderer(),
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.inputHandler = input.New(m.keys)

	if err := engine.Reload(ctx, m.session); err != nil {
		return nil, fmt.Errorf("load namespaces: %w", err)
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Result returns the command picked by the user, or nil when the user quit without one
func (m *Model) Result() *logic.Execution {
	return m.result
}

// Session exposes the interaction state for tests and logging
func (m *Model) Session() *state.Session {
	return m.session
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.config.UI.Title)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.session.SetInputGeometry(views.InputGeometry(msg.Width, msg.Height))

	case tea.KeyMsg:
		actions := m.inputHandler.HandleKey(msg, input.SessionContext{Session: m.session})
		return m, m.processActions(actions)

	case statsMsg:
		if msg.err != nil {
			m.stats, m.statsErr = nil, msg.err
			return m, nil
		}
		m.stats, m.statsErr = &msg.stats, nil

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("clipboard write failed")
			m.session.SetError(fmt.Errorf("copy: %w", msg.err))
			return m, nil
		}
		m.session.SetInfo("copied %q", msg.command)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to the Keys tab
			m.log.Warn().Err(msg.err).Msg("help pager failed")
			if m.session.State.Mode == state.ModeNormal && !m.session.State.Awaiting() {
				m.session.State.Tab = state.TabSecondary
			}
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
	}

	return m, nil
}

// processActions runs the actions produced by one key
func (m *Model) processActions(actions []inputtypes.Action) tea.Cmd {
	prevTab := m.session.State.Tab
	var cmds []tea.Cmd

	for _, action := range actions {
		switch action.(type) {
		case inputtypes.CopyAction:
			cmds = append(cmds, m.copyCommand())
			continue
		case inputtypes.ToggleHelpAction:
			cmds = append(cmds, m.fetchHelpPager(RenderHelpContent(m.config.UI.Title, m.keys)))
			continue
		}

		out := m.engine.Apply(m.ctx, m.session, action)
		if out.Run != nil {
			m.result = out.Run
			return tea.Quit
		}
		if out.Quit {
			return tea.Quit
		}
	}

	if m.session.State.Tab == state.TabTertiary && prevTab != state.TabTertiary {
		cmds = append(cmds, m.fetchStats())
	}
	return tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Title:          m.config.UI.Title,
		Tabs:           m.config.UI.Tabs,
		ConfirmMessage: m.config.UI.ConfirmMessage,
		ShowTags:       m.config.UI.ShowTags,
		ModeName:       m.inputHandler.ModeName(input.SessionContext{Session: m.session}),
		Session:        m.session,
		Stats:          m.stats,
		StatsErr:       m.statsErr,
		Keys:           m.keys,
		HelpModel:      m.help,
	})
}

func (m *Model) fetchStats() tea.Cmd {
	return func() tea.Msg {
		st, err := m.engine.Stats(m.ctx)
		return statsMsg{stats: st, err: err}
	}
}

func (m *Model) copyCommand() tea.Cmd {
	command, _, ok := m.session.CurrentEntry()
	if !ok {
		return nil
	}
	write := m.copyText
	return func() tea.Msg {
		return copiedMsg{command: command, err: write(command)}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		if m.program == nil {
			return helpPagerMsg{err: fmt.Errorf("program not set")}
		}
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := NewHelpOps(m.program).ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cm/internal/domain"
	"cm/internal/keymap"
	"cm/internal/ui/state"
)

func viewState(s *state.Session) ViewState {
	return ViewState{
		Width:          100,
		Height:         30,
		Title:          "Command Manager",
		Tabs:           []string{"Commands", "Keys", "Store"},
		ConfirmMessage: "Run this command?",
		ShowTags:       true,
		Session:        s,
		Keys:           keymap.Default(),
		HelpModel:      help.New(),
	}
}

func browsing(t *testing.T) *state.Session {
	t.Helper()
	s := state.NewSession([]string{"navigation", "docker"})
	s.FocusNamespaces()
	s.Namespaces.Select(0)
	require.NoError(t, s.ReplaceCommands([]string{"cd ~/ && $SHELL", "ls -la"}, []string{"nav:home", "nav:ls"}))
	return s
}

func plain(s string) string {
	return ansi.Strip(s)
}

func TestRenderPrimaryTab(t *testing.T) {
	t.Parallel()
	s := browsing(t)
	s.FocusCommands()
	out := plain(NewRenderer().Render(viewState(s)))

	for _, want := range []string{"Command Manager", "Commands", "Keys", "Store", "Namespaces", "navigation", "docker", "ls -la", "nav:ls", "Command details"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, highlightSymbol+"cd ~/")
	assert.Len(t, strings.Split(out, "\n"), 30)
}

func TestRenderHidesTags(t *testing.T) {
	t.Parallel()
	vs := viewState(browsing(t))
	vs.ShowTags = false
	out := plain(NewRenderer().Render(vs))
	assert.NotContains(t, out, "nav:ls")
	assert.Contains(t, out, "ls -la")
}

func TestRenderRunGate(t *testing.T) {
	t.Parallel()
	s := browsing(t)
	s.FocusCommands()
	s.SelectCommand(1)
	s.BlurCommands()
	s.State.Confirm = state.ConfirmAwaiting

	out := plain(NewRenderer().Render(viewState(s)))
	assert.Contains(t, out, "Run this command?")
	assert.Contains(t, out, "Enter to run")
}

func TestRenderDeletePrompt(t *testing.T) {
	t.Parallel()
	s := browsing(t)
	s.State.BeginDelete()
	out := plain(NewRenderer().Render(viewState(s)))
	assert.Contains(t, out, "Delete this namespace")

	s = browsing(t)
	s.FocusCommands()
	s.State.BeginDelete()
	out = plain(NewRenderer().Render(viewState(s)))
	assert.Contains(t, out, "Delete this command?")
	assert.Contains(t, out, "cd ~/ && $SHELL")
}

func TestRenderAddField(t *testing.T) {
	t.Parallel()
	s := browsing(t)
	x, y, w := InputGeometry(100, 30)
	s.SetInputGeometry(x, y, w)
	s.State.BeginAdd(state.AddNamespace)
	for _, r := range "infra" {
		s.TypeRune(r)
	}

	out := NewRenderer().Render(viewState(s))
	lines := strings.Split(plain(out), "\n")
	require.Greater(t, len(lines), y)
	assert.Contains(t, lines[y-1], "New namespace")
	assert.Equal(t, "infra", strings.TrimSpace(string([]rune(lines[y])[x:x+5])))
}

func TestRenderAddFinalGate(t *testing.T) {
	t.Parallel()
	s := browsing(t)
	s.State.BeginAdd(state.AddCommandTag)
	s.Inputs[state.AddCommandValue] = "htop"
	s.Inputs[state.AddCommandTag] = "sys:top"
	s.State.Confirm = state.ConfirmAwaiting

	out := plain(NewRenderer().Render(viewState(s)))
	assert.Contains(t, out, "Add this command?")
	assert.Contains(t, out, "htop  [sys:top] → navigation")
}

func TestRenderKeysTab(t *testing.T) {
	t.Parallel()
	s := browsing(t)
	s.State.Tab = state.TabSecondary
	out := plain(NewRenderer().Render(viewState(s)))
	assert.Contains(t, out, "Key bindings")
	assert.Contains(t, out, "next tab")
	assert.NotContains(t, out, "Namespaces")
}

func TestRenderStoreTab(t *testing.T) {
	t.Parallel()
	s := browsing(t)
	s.State.Tab = state.TabTertiary
	vs := viewState(s)

	out := plain(NewRenderer().Render(vs))
	assert.Contains(t, out, "Loading...")

	vs.Stats = &domain.Stats{Location: "/tmp/cm.db", Namespaces: 2, Commands: 5}
	out = plain(NewRenderer().Render(vs))
	assert.Contains(t, out, "/tmp/cm.db")
	assert.Contains(t, out, "Commands:   5")

	vs.StatsErr = errors.New("database is locked")
	out = plain(NewRenderer().Render(vs))
	assert.Contains(t, out, "database is locked")
}

func TestRenderNotice(t *testing.T) {
	t.Parallel()
	s := browsing(t)
	s.SetError(domain.ErrNamespaceExists)
	out := plain(NewRenderer().Render(viewState(s)))
	assert.Contains(t, out, "✗ "+domain.ErrNamespaceExists.Error())
}

func TestRenderBeforeFirstResize(t *testing.T) {
	t.Parallel()
	vs := viewState(state.NewSession(nil))
	vs.Width, vs.Height = 0, 0
	out := plain(NewRenderer().Render(vs))
	assert.Len(t, strings.Split(out, "\n"), defaultHeight)
	assert.Contains(t, out, "(empty)")
}

func TestInputGeometryNarrowTerminal(t *testing.T) {
	t.Parallel()
	x, y, w := InputGeometry(6, 10)
	assert.Equal(t, 1, w)
	assert.GreaterOrEqual(t, x, 0)
	assert.Equal(t, headerLines+4, y)
}

func TestRenderPopupAtSplicesByCell(t *testing.T) {
	t.Parallel()
	pr := NewPopupRenderer(NewStyles())

	out := strings.Split(plain(pr.RenderPopupAt("日本語abc\nxyz", "PQ", 2, 0)), "\n")
	assert.Equal(t, []string{"日PQ語abc", "xyz"}, out)

	out = strings.Split(plain(pr.RenderPopupAt("ab", "P", 5, 1)), "\n")
	assert.Equal(t, []string{"ab", "     P"}, out)
}

func TestColumnScrollIndicators(t *testing.T) {
	t.Parallel()
	items := make([]string, 20)
	for i := range items {
		items[i] = string(rune('a' + i))
	}
	list := state.NewList(items)
	list.Select(15)

	out := plain(NewColumnRenderer(NewStyles()).RenderColumn("Letters", list, 20, 8))
	assert.Contains(t, out, "more")
	assert.Contains(t, out, highlightSymbol+"p")
	assert.NotContains(t, out, "⟩ a")
}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cm/internal/domain"
	"cm/internal/keymap"
	"cm/internal/ui/state"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// headerLines is the title bar plus the blank line under it
	headerLines = 2
	// footerLines is the status line plus the short help line
	footerLines = 2
	detailLines = 4
	maxField    = 60
)

// ViewState contains all the data needed to render the view
type ViewState struct {
	Width          int
	Height         int
	Title          string
	Tabs           []string
	ConfirmMessage string
	ShowTags       bool
	ModeName       string
	Session        *state.Session
	Stats          *domain.Stats
	StatsErr       error
	Keys           keymap.KeyMap
	HelpModel      help.Model
}

// Renderer handles the main view rendering
type Renderer struct {
	styles       *Styles
	columnRender *ColumnRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		columnRender: NewColumnRenderer(styles),
		popupRender:  NewPopupRenderer(styles),
	}
}

// InputGeometry returns the position and width of the add wizard's text field for a
// terminal of the given size. The model hands it to the session so the text cursor and
// the rendered field agree.
func InputGeometry(width, height int) (x, y, fieldWidth int) {
	width, _ = dimensions(width, height)
	fieldWidth = width - 8
	if fieldWidth > maxField {
		fieldWidth = maxField
	}
	if fieldWidth < 1 {
		fieldWidth = 1
	}
	px, py := inputOrigin(width, fieldWidth)
	// border and padding on the left, border and label above
	return px + 2, py + 2, fieldWidth
}

func inputOrigin(width, fieldWidth int) (int, int) {
	return (width - (fieldWidth + 4)) / 2, headerLines + 2
}

func dimensions(width, height int) (int, int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// Render renders the complete view
func (r *Renderer) Render(vs ViewState) string {
	width, height := dimensions(vs.Width, vs.Height)
	vs.Width, vs.Height = width, height
	bodyHeight := height - headerLines - footerLines
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var content strings.Builder
	content.WriteString(r.renderTitleBar(vs))
	content.WriteString("\n\n")

	var body string
	switch vs.Session.State.Tab {
	case state.TabSecondary:
		body = r.renderKeys(vs)
	case state.TabTertiary:
		body = r.renderStore(vs)
	default:
		body = r.renderPrimary(vs, bodyHeight)
	}
	content.WriteString(padLines(body, bodyHeight))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(vs))
	content.WriteString("\n")
	vs.HelpModel.Width = width
	content.WriteString(vs.HelpModel.ShortHelpView(vs.Keys.ShortHelp()))

	screen := lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(content.String())

	if vs.Session.State.Tab != state.TabPrimary {
		return screen
	}
	return r.renderOverlay(vs, screen)
}

func (r *Renderer) renderTitleBar(vs ViewState) string {
	s := vs.Session
	tabs := make([]string, 0, len(vs.Tabs))
	for i, title := range vs.Tabs {
		switch {
		case state.Tab(i) == s.State.Tab && s.Focus() == state.FocusTabs:
			tabs = append(tabs, r.styles.TabFocused.Render(title))
		case state.Tab(i) == s.State.Tab:
			tabs = append(tabs, r.styles.TabActive.Render(title))
		default:
			tabs = append(tabs, r.styles.TabInactive.Render(title))
		}
	}
	left := r.styles.Title.Render(vs.Title) + "  " + strings.Join(tabs, r.styles.Dim.Render("│"))

	var indicators []string
	if vs.ModeName != "" && s.State.Mode != state.ModeNormal {
		indicators = append(indicators, r.styles.Highlight.Render("["+vs.ModeName+"]"))
	}
	if ns, ok := s.CurrentNamespace(); ok {
		indicators = append(indicators, r.styles.Status.Render(ns))
	}
	right := strings.Join(indicators, " ")

	gap := vs.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if right == "" || gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderPrimary(vs ViewState, height int) string {
	s := vs.Session
	columnsHeight := height
	showDetail := height >= 2*detailLines
	if showDetail {
		columnsHeight = height - detailLines
	}

	nsW, cmdW, tagW := columnWidths(vs.Width, vs.ShowTags)
	columns := []string{
		r.columnRender.RenderColumn("Namespaces", s.Namespaces, nsW, columnsHeight),
		r.columnRender.RenderColumn("Commands", s.Commands, cmdW, columnsHeight),
	}
	if vs.ShowTags {
		columns = append(columns, r.columnRender.RenderColumn("Tags", s.Tags, tagW, columnsHeight))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	if showDetail {
		out += "\n" + r.renderDetail(vs)
	}
	return out
}

// columnWidths splits the screen between the namespace, command and tag columns
func columnWidths(width int, showTags bool) (int, int, int) {
	if !showTags {
		ns := max(width*20/100, 12)
		return ns, max(width-ns, 6), 0
	}
	ns := max(width*15/100, 12)
	tag := max(width*10/100, 10)
	return ns, max(width-ns-tag, 6), tag
}

func (r *Renderer) renderDetail(vs ViewState) string {
	inner := vs.Width - 2
	if inner < 1 {
		inner = 1
	}
	line := r.styles.Dim.Render("no command selected")
	if command, tag, ok := vs.Session.CurrentEntry(); ok {
		line = r.styles.Detail.Render(truncate(command, inner-runewidth.StringWidth(tag)-3))
		if tag != "" {
			line += "  " + r.styles.Status.Render(tag)
		}
	}
	body := r.styles.ColumnTitle.Render("Command details") + "\n" + line
	return r.styles.Column.Width(inner).Render(body)
}

func (r *Renderer) renderKeys(vs ViewState) string {
	h := vs.HelpModel
	h.ShowAll = true
	h.Width = vs.Width
	return r.styles.ColumnTitle.Render("Key bindings") + "\n\n" + h.FullHelpView(vs.Keys.FullHelp())
}

func (r *Renderer) renderStore(vs ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.ColumnTitle.Render("Store"))
	b.WriteString("\n\n")
	switch {
	case vs.StatsErr != nil:
		b.WriteString(r.styles.StatusError.Render("✗ " + vs.StatsErr.Error()))
	case vs.Stats == nil:
		b.WriteString(r.styles.Dim.Render("Loading..."))
	default:
		fmt.Fprintf(&b, "%s %s\n", r.styles.Label.Render("Location:  "), vs.Stats.Location)
		fmt.Fprintf(&b, "%s %d\n", r.styles.Label.Render("Namespaces:"), vs.Stats.Namespaces)
		fmt.Fprintf(&b, "%s %d", r.styles.Label.Render("Commands:  "), vs.Stats.Commands)
	}
	return b.String()
}

func (r *Renderer) renderStatus(vs ViewState) string {
	s := vs.Session
	if n := s.Notice; n != nil {
		if n.Kind == state.NoticeError {
			return r.styles.StatusError.Render(truncate("✗ "+n.Text, vs.Width))
		}
		return r.styles.StatusInfo.Render(truncate(n.Text, vs.Width))
	}
	status := fmt.Sprintf("%s · focus: %s · %d namespaces · %d commands",
		s.State.Mode, s.Focus(), s.Namespaces.Len(), s.Commands.Len())
	return r.styles.Status.Render(truncate(status, vs.Width))
}

// renderOverlay draws the confirmation prompts and the add wizard's text field
func (r *Renderer) renderOverlay(vs ViewState, screen string) string {
	s := vs.Session
	switch s.State.Mode {
	case state.ModeNormal:
		if !s.State.Awaiting() {
			return screen
		}
		command, _, _ := s.CurrentEntry()
		popup := r.popupRender.RenderConfirm(vs.ConfirmMessage, command, "Enter to run · Esc to cancel", vs.Width)
		return r.popupRender.RenderPopupOverlay(screen, popup, vs.Width, vs.Height)

	case state.ModeDelete:
		message, subject := "Delete this namespace and all its commands?", ""
		if s.CommandFocused() {
			command, _, _ := s.CurrentEntry()
			message, subject = "Delete this command?", command
		} else if ns, ok := s.CurrentNamespace(); ok {
			subject = ns
		}
		popup := r.popupRender.RenderConfirm(message, subject, "y/Enter to delete · n/Esc to cancel", vs.Width)
		return r.popupRender.RenderPopupOverlay(screen, popup, vs.Width, vs.Height)

	case state.ModeAdd:
		if s.State.Awaiting() {
			ns, _ := s.CurrentNamespace()
			subject := fmt.Sprintf("%s  [%s] → %s", s.Input(state.AddCommandValue), s.Input(state.AddCommandTag), ns)
			popup := r.popupRender.RenderConfirm("Add this command?", subject, "Enter/y to add · Esc to cancel", vs.Width)
			return r.popupRender.RenderPopupOverlay(screen, popup, vs.Width, vs.Height)
		}
		_, _, fieldWidth := InputGeometry(vs.Width, vs.Height)
		field := s.State.AddField
		popup := r.popupRender.RenderInput(r.inputLabel(s, field), s.Input(field), s.Cursor, fieldWidth)
		x, y := inputOrigin(vs.Width, fieldWidth)
		return r.popupRender.RenderPopupAt(screen, popup, x, y)
	}
	return screen
}

func (r *Renderer) inputLabel(s *state.Session, field state.AddField) string {
	switch field {
	case state.AddNamespace:
		return "New namespace"
	case state.AddCommandValue:
		ns, _ := s.CurrentNamespace()
		return "New command in " + ns
	case state.AddCommandTag:
		return "Tag for " + s.Input(state.AddCommandValue)
	default:
		return ""
	}
}

// padLines pads or cuts s to exactly n lines
func padLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"cm/internal/ui/state"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers popup over the main content, which is greyed out
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popup string, width, height int) string {
	x := (width - lipgloss.Width(popup)) / 2
	y := (height - lipgloss.Height(popup)) / 2
	return pr.RenderPopupAt(mainContent, popup, x, y)
}

// RenderPopupAt draws popup with its top-left corner at cell (x, y) of the main content.
// Main content lines left and right of the popup stay visible, desaturated.
func (pr *PopupRenderer) RenderPopupAt(mainContent, popup string, x, y int) string {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	base := strings.Split(mainContent, "\n")
	modal := strings.Split(popup, "\n")
	modalW := lipgloss.Width(popup)

	for len(base) < y+len(modal) {
		base = append(base, "")
	}

	out := make([]string, len(base))
	for i, line := range base {
		plain := ansi.Strip(line)
		row := i - y
		if row < 0 || row >= len(modal) {
			out[i] = pr.fade(plain)
			continue
		}
		left := ansi.Truncate(plain, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		var right string
		if end := ansi.StringWidth(plain); end > x+modalW {
			right = ansi.Cut(plain, x+modalW, end)
		}
		out[i] = pr.fade(left) + modal[row] + pr.fade(right)
	}
	return strings.Join(out, "\n")
}

// RenderConfirm renders a yes/no prompt box
func (pr *PopupRenderer) RenderConfirm(message, subject, hint string, maxWidth int) string {
	inner := maxWidth - 4
	if inner < 10 {
		inner = 10
	}
	lines := []string{pr.styles.Label.Render(truncate(message, inner))}
	if subject != "" {
		lines = append(lines, "", pr.styles.Detail.Render(truncate(subject, inner)))
	}
	lines = append(lines, "", pr.styles.Confirm.Render(truncate(hint, inner)))
	return pr.styles.PopupBox.Render(strings.Join(lines, "\n"))
}

// RenderInput renders the labelled text field of the add wizard. The field wraps the
// same way the text cursor does, and the cursor cell is drawn in reverse video.
func (pr *PopupRenderer) RenderInput(label, text string, cursor *state.TextCursor, fieldWidth int) string {
	if cursor == nil {
		// No keystroke yet in this field: lay the stored text out the same way
		cursor = state.NewTextCursor(0, 0, fieldWidth)
		for _, r := range text {
			cursor.Push(r)
		}
	}
	cx, cy := cursor.Offset()

	lines := []string{pr.styles.Label.Render(label)}
	for i, line := range cursor.Lines() {
		runes := []rune(line)
		var b strings.Builder
		for j, r := range runes {
			if i == cy && j == cx {
				b.WriteString(pr.styles.Cursor.Render(string(r)))
				continue
			}
			b.WriteString(pr.styles.InputText.Render(string(r)))
		}
		if i == cy && cx >= len(runes) {
			b.WriteString(pr.styles.Cursor.Render(" "))
		}
		lines = append(lines, b.String())
	}
	return pr.styles.InputBox.Width(fieldWidth + 2).Render(strings.Join(lines, "\n"))
}

func (pr *PopupRenderer) fade(s string) string {
	if s == "" {
		return ""
	}
	return pr.styles.Faded.Render(s)
}

package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"cm/internal/ui/logic"
	"cm/internal/ui/state"
)

const highlightSymbol = "⟩ "

// ColumnRenderer draws one bordered list column
type ColumnRenderer struct {
	styles *Styles
}

// NewColumnRenderer creates a new column renderer
func NewColumnRenderer(styles *Styles) *ColumnRenderer {
	return &ColumnRenderer{
		styles: styles,
	}
}

// RenderColumn renders list inside a box of width x height cells, borders included.
// The selected row is highlighted; it gets a background only while the column is focused.
func (c *ColumnRenderer) RenderColumn(title string, list *state.List[string], width, height int) string {
	innerW := width - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 2 {
		innerH = 2
	}

	lines := []string{c.styles.ColumnTitle.Render(truncate(title, innerW))}
	rows := innerH - 1

	selected, hasSelection := list.Selected()
	win := logic.VisibleWindow(selected, list.Len(), rows)

	if win.MoreAbove {
		lines = append(lines, c.styles.Scroll.Render(truncate(fmt.Sprintf("↑ %d more", win.Start), innerW)))
	}
	for i := win.Start; i < win.End; i++ {
		lines = append(lines, c.renderRow(list.Items[i], hasSelection && i == selected, list.Focused, innerW))
	}
	if win.MoreBelow {
		lines = append(lines, c.styles.Scroll.Render(truncate(fmt.Sprintf("↓ %d more", list.Len()-win.End), innerW)))
	}
	if list.IsEmpty() {
		lines = append(lines, c.styles.Dim.Render(truncate("(empty)", innerW)))
	}

	box := c.styles.Column
	if list.Focused {
		box = c.styles.ColumnActive
	}
	return box.Width(innerW).Height(innerH).MaxHeight(height).Render(strings.Join(lines, "\n"))
}

func (c *ColumnRenderer) renderRow(item string, isSelected, focused bool, width int) string {
	prefix := strings.Repeat(" ", runewidth.StringWidth(highlightSymbol))
	if isSelected {
		prefix = highlightSymbol
	}
	line := runewidth.FillRight(prefix+truncate(item, width-runewidth.StringWidth(prefix)), width)

	switch {
	case isSelected && focused:
		return c.styles.SelectionBg.Inherit(c.styles.Highlight).Render(line)
	case isSelected:
		return c.styles.Confirm.Render(line)
	default:
		return line
	}
}

// truncate cuts s to at most width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

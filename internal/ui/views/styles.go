package views

import "github.com/charmbracelet/lipgloss"

// Styles contains all the lipgloss styles used in the UI
type Styles struct {
	Title        lipgloss.Style
	Confirm      lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Scroll       lipgloss.Style
	Highlight    lipgloss.Style
	SelectionBg  lipgloss.Style
	StatusError  lipgloss.Style
	StatusInfo   lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	TabFocused   lipgloss.Style
	Column       lipgloss.Style
	ColumnActive lipgloss.Style
	ColumnTitle  lipgloss.Style
	Detail       lipgloss.Style
	PopupBox     lipgloss.Style
	InputBox     lipgloss.Style
	InputText    lipgloss.Style
	Cursor       lipgloss.Style
	Label        lipgloss.Style
	Faded        lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().
			Bold(true),
		Dim: lipgloss.NewStyle().
			Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Scroll: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),
		Highlight: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true),
		SelectionBg: lipgloss.NewStyle().
			Background(lipgloss.Color("238")),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		TabFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("226")).
			Padding(0, 1),
		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		ColumnActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")),
		ColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")),
		PopupBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		InputText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")),
		Cursor: lipgloss.NewStyle().
			Reverse(true),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		Faded: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#101F38")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#6b7280")
	colorWarning = lipgloss.Color("#FFC107")
	colorBorder  = lipgloss.Color("#d6dae0")
)

// Styles holds the lipgloss styles of the explorer screen.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
	Pane     lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the explorer's styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1),
		Header:   lipgloss.NewStyle().Bold(true).Underline(true),
		Item:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Cursor:   lipgloss.NewStyle().Foreground(colorAccent),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Warning:  lipgloss.NewStyle().Foreground(colorWarning),
		Pane:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		Help:     lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

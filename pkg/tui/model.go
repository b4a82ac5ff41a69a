// Package tui is the interactive terminal explorer. It forwards key events to
// a view.Session and renders the derived view.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coolbeans/keiho/pkg/render"
	"github.com/coolbeans/keiho/pkg/statute"
	"github.com/coolbeans/keiho/pkg/view"
)

// Pane is the content of the right-hand side of the screen.
type Pane int

const (
	// PaneDetails shows the selected statute.
	PaneDetails Pane = iota
	// PaneSimilar shows statutes with similar severity.
	PaneSimilar
)

// Model is the bubbletea model of the explorer.
type Model struct {
	session *view.Session
	labels  render.Labels
	styles  Styles
	search  textinput.Model

	pane          Pane
	listCursor    int
	similarCursor int
	width         int
	height        int
	quitting      bool
}

// New returns a model browsing catalog from the initial state.
func New(catalog *statute.Catalog, initial view.State, labels render.Labels) Model {
	search := textinput.New()
	search.Placeholder = labels.SearchPlaceholder
	search.Prompt = "> "
	search.SetValue(initial.SearchTerm)
	search.Focus()

	return Model{
		session: view.NewSessionWithState(catalog, initial),
		labels:  labels,
		styles:  DefaultStyles(),
		search:  search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Derived returns the derived view currently shown.
func (m Model) Derived() view.Derived {
	return m.session.View()
}

// Pane returns the active right-hand pane.
func (m Model) Pane() Pane {
	return m.pane
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.pane == PaneDetails {
				m.pane = PaneSimilar
			} else {
				m.pane = PaneDetails
			}
			m.similarCursor = 0
			return m, nil
		case "up":
			m.moveCursor(-1)
			return m, nil
		case "down":
			m.moveCursor(1)
			return m, nil
		case "enter":
			m.selectUnderCursor()
			return m, nil
		case "ctrl+s":
			m.session.Dispatch(view.ToggleSort{})
			m.clampCursors()
			return m, nil
		case "ctrl+a":
			m.session.Dispatch(view.ToggleAttemptMode{})
			m.clampCursors()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.session.Dispatch(view.SearchInput{Term: m.search.Value()})
		m.listCursor = 0
		m.clampCursors()
	}
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	derived := m.session.View()
	if m.pane == PaneSimilar {
		m.similarCursor = clamp(m.similarCursor+delta, len(derived.Similar))
		return
	}
	m.listCursor = clamp(m.listCursor+delta, len(derived.Visible))
}

func (m *Model) selectUnderCursor() {
	derived := m.session.View()
	if m.pane == PaneSimilar {
		if m.similarCursor < len(derived.Similar) {
			m.session.Dispatch(view.SelectStatute{ID: derived.Similar[m.similarCursor].Statute.ID})
			m.similarCursor = 0
		}
		return
	}
	if m.listCursor < len(derived.Visible) {
		m.session.Dispatch(view.SelectStatute{ID: derived.Visible[m.listCursor].Statute.ID})
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	derived := m.session.View()
	m.listCursor = clamp(m.listCursor, len(derived.Visible))
	m.similarCursor = clamp(m.similarCursor, len(derived.Similar))
}

func clamp(value, length int) int {
	if length == 0 || value < 0 {
		return 0
	}
	if value >= length {
		return length - 1
	}
	return value
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	derived := m.session.View()

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.labels.Title))
	sb.WriteString("\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n")
	attempt := "[ ]"
	if derived.State.AttemptMode {
		attempt = "[x]"
	}
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s  %s %s", m.labels.SortLabel(derived.State.Direction), attempt, m.labels.AttemptToggle)))
	sb.WriteString("\n")

	left := m.styles.Pane.Render(m.renderList(derived))
	var right string
	if m.pane == PaneSimilar {
		right = m.styles.Pane.Render(m.renderSimilar(derived))
	} else {
		right = m.styles.Pane.Render(m.renderDetail(derived))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("↑/↓ move · enter select · tab details/similar · ctrl+s sort · ctrl+a attempt · esc quit"))
	return sb.String()
}

func (m Model) renderList(derived view.Derived) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(m.labels.StatuteList))
	sb.WriteString("\n")
	if derived.Empty() {
		sb.WriteString(m.styles.Muted.Render(m.labels.NoResults))
		return sb.String()
	}
	for i, entry := range derived.Visible {
		cursor := "  "
		if m.pane == PaneDetails && i == m.listCursor {
			cursor = m.styles.Cursor.Render("> ")
		}
		line := fmt.Sprintf("%s (%d)", entry.Statute.Name, entry.Severity)
		if entry.Selected {
			line = m.styles.Selected.Render(line)
		} else {
			line = m.styles.Item.Render(line)
		}
		sb.WriteString(cursor + line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderDetail(derived view.Derived) string {
	detail := derived.Detail
	if detail == nil {
		return m.styles.Muted.Render(m.labels.SelectPrompt)
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(m.labels.Details))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Selected.Render(m.labels.DetailHeading(detail)))
	sb.WriteString("\n")
	if detail.Hidden {
		sb.WriteString(m.styles.Muted.Render(m.labels.HiddenNotice))
		sb.WriteString("\n")
	}
	sb.WriteString(detail.Statute.Description)
	sb.WriteString("\n\n")
	sb.WriteString(m.labels.Penalties)
	sb.WriteString("\n")
	for _, penalty := range detail.Penalties {
		sb.WriteString("• " + penalty.Description + "\n")
	}
	if detail.MissingAttempt {
		sb.WriteString(m.styles.Warning.Render(m.labels.MissingAttempt))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderSimilar(derived view.Derived) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(m.labels.Similar))
	sb.WriteString("\n")
	if derived.Detail == nil {
		sb.WriteString(m.styles.Muted.Render(m.labels.SelectPrompt))
		return sb.String()
	}
	if len(derived.Similar) == 0 {
		sb.WriteString(m.styles.Muted.Render(m.labels.NoSimilar))
		return sb.String()
	}
	for i, entry := range derived.Similar {
		cursor := "  "
		if i == m.similarCursor {
			cursor = m.styles.Cursor.Render("> ")
		}
		sb.WriteString(cursor + entry.Statute.Name + "\n")
		sb.WriteString("  " + m.styles.Muted.Render(m.labels.HarshestLine(entry.Harshest)) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Run starts the terminal program and blocks until the user quits.
func Run(catalog *statute.Catalog, initial view.State, labels render.Labels) error {
	program := tea.NewProgram(New(catalog, initial, labels), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run terminal explorer: %w", err)
	}
	return nil
}

package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmKeyMap binds the keys the dialog understands.
type confirmKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Accept key.Binding
	Reject key.Binding
	Cancel key.Binding
}

func defaultConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Select: key.NewBinding(key.WithKeys("enter")),
		Accept: key.NewBinding(key.WithKeys("y", "Y")),
		Reject: key.NewBinding(key.WithKeys("n", "N")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c", "q")),
	}
}

type confirmStyles struct {
	Message      lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

func defaultConfirmStyles() confirmStyles {
	return confirmStyles{
		Message: lipgloss.NewStyle().Bold(true),
		Button: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245")),
		ButtonActive: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")),
	}
}

// confirmModel is a yes/no dialog. No is focused initially: removal
// prompts default to declining.
type confirmModel struct {
	message   string
	focusYes  bool
	done      bool
	confirmed bool
	width     int
	keys      confirmKeyMap
	styles    confirmStyles
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{
		message: message,
		width:   60,
		keys:    defaultConfirmKeyMap(),
		styles:  defaultConfirmStyles(),
	}
}

// Init implements tea.Model.
func (m confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.focusYes = true
	case key.Matches(keyMsg, m.keys.Right):
		m.focusYes = false
	case key.Matches(keyMsg, m.keys.Select):
		return m.decide(m.focusYes)
	case key.Matches(keyMsg, m.keys.Accept):
		return m.decide(true)
	case key.Matches(keyMsg, m.keys.Reject):
		return m.decide(false)
	case key.Matches(keyMsg, m.keys.Cancel):
		return m.decide(false)
	}
	return m, nil
}

func (m confirmModel) decide(confirmed bool) (tea.Model, tea.Cmd) {
	m.done = true
	m.confirmed = confirmed
	return m, tea.Quit
}

// View renders the dialog.
func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	yesStyle := m.styles.Button
	noStyle := m.styles.Button
	if m.focusYes {
		yesStyle = m.styles.ButtonActive
	} else {
		noStyle = m.styles.ButtonActive
	}

	message := m.styles.Message.Width(m.width).Render(m.message)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yesStyle.Render("Yes"), "  ", noStyle.Render("No"))
	buttonRow := lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(buttons)

	return lipgloss.JoinVertical(lipgloss.Left, message, "", buttonRow) + "\n"
}

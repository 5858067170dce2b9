package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var tabContainer = lipgloss.NewStyle().Padding(1, 1)

type Tabs struct {
	tabs []string
	i    int

	Width int
	Info  string
	Theme Theme
}

// NewTabs creates a new tabs ui bubbletea model
func NewTabs(tabs []string) Tabs {
	return Tabs{tabs: tabs, Theme: Light}
}

func (m Tabs) Init() tea.Cmd {
	return nil
}

// Update cycles with tab and shift+tab.
func (m Tabs) Update(msg tea.Msg) (Tabs, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			m.Set((m.i + 1) % len(m.tabs))
		case "shift+tab":
			m.Set((m.i + len(m.tabs) - 1) % len(m.tabs))
		}
	}
	return m, nil
}

func (m Tabs) View() string {
	active := lipgloss.NewStyle().Foreground(m.Theme.Primary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(m.Theme.Secondary)
	divider := lipgloss.NewStyle().Foreground(m.Theme.Faded)

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		r := inactive
		if i == m.i {
			r = active
		}
		tabs[i] = r.Render(t)
	}
	w := lipgloss.Width
	left := strings.Join(tabs, divider.Render(" | "))
	right := m.Info
	space := lipgloss.NewStyle().Width(max(m.Width-2-w(left)-w(right), 0)).Render("")
	return tabContainer.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

func (m Tabs) Value() int {
	return m.i
}

// Name is the label of the active tab.
func (m Tabs) Name() string {
	return m.tabs[m.i]
}

func (m *Tabs) Set(i int) {
	m.i = min(max(i, 0), len(m.tabs)-1)
}

// SetName activates the tab labelled name, if there is one.
func (m *Tabs) SetName(name string) {
	for i, t := range m.tabs {
		if strings.EqualFold(t, name) {
			m.i = i
			return
		}
	}
}

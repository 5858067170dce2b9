package dateinput

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/studyman/pkg/study/date"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.Copy().
		Foreground(lipgloss.AdaptiveColor{Light: "#c42912", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

// Model is a one line deadline input. It parses as the user types and shows
// whether the text is understood.
type Model struct {
	i     textinput.Model
	value date.Day
	valid bool
	now   func() time.Time

	Prompt string
}

func NewModel() Model {
	i := textinput.New()
	i.Focus()
	i.CharLimit = 20
	i.Prompt = ""
	i.Placeholder = "tomorrow, fri, in 3 days, 2025-04-21"
	return Model{
		i:      i,
		valid:  true,
		now:    time.Now,
		Prompt: "deadline",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		m.parse()
		return m, cmd
	}
	return m, nil
}

func (m *Model) parse() {
	d, err := date.Parse(m.i.Value(), m.now())
	m.valid = err == nil
	if m.valid {
		m.value = d
	} else {
		m.value = date.Day{}
	}
}

func (m Model) View() string {
	indicator := cross
	if m.i.Value() == "" {
		indicator = ""
	} else if m.valid {
		indicator = checkmark + " " + m.value.String() + " (" + describe(m.value, m.now()) + ")"
	}
	return lipgloss.NewStyle().Foreground(faded).Render(m.Prompt+": ") + m.i.View() + indicator
}

// Value is the parsed day; the zero Day when the input is empty or invalid.
func (m Model) Value() date.Day {
	return m.value
}

// Valid is false while the text cannot be parsed. Empty text is valid.
func (m Model) Valid() bool {
	return m.valid
}

func (m *Model) SetValue(d date.Day) {
	m.value = d
	m.valid = true
	m.i.SetValue(d.String())
}

func (m *Model) Reset() {
	m.SetValue(date.Day{})
}

// describe says how far away d is in words.
func describe(d date.Day, now time.Time) string {
	days := int(d.Time().Sub(date.StartOfDay(now)).Hours()+12) / 24
	if d.Time().Before(date.StartOfDay(now)) {
		days = -int(date.StartOfDay(now).Sub(d.Time()).Hours()+12) / 24
	}
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return strconv.Itoa(-days) + " days ago"
	case days < 14:
		return "in " + strconv.Itoa(days) + " days"
	// max 1 month
	case days <= 31:
		return "in " + strconv.Itoa(days/7) + " weeks"
	default:
		postfix := ""
		months := days / 31
		if months > 1 {
			postfix = "s"
		}
		return "in " + strconv.Itoa(months) + " month" + postfix
	}
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/studyman/pkg/study"
)

var (
	SubjectTitle = lipgloss.NewStyle().Bold(true)
	TopicDone    = lipgloss.NewStyle().Strikethrough(true)
	Overdue      = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Timer        = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	Card         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	Selected     = lipgloss.NewStyle().Reverse(true)
)

// Divider is a faint dot between inline fields.
func Divider(t Theme) string {
	return lipgloss.NewStyle().Foreground(t.Faded).Padding(0, 1).Render("∙")
}

func Muted(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Secondary)
}

// Dot is the subject's colour marker.
func Dot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func PriorityColor(p study.Priority) lipgloss.Color {
	switch p {
	case study.High:
		return Red
	case study.Low:
		return Green
	}
	return Orange
}

func Priority(p study.Priority) string {
	return lipgloss.NewStyle().Foreground(PriorityColor(p)).Render(string(p))
}

// Checkbox renders a topic's completion state.
func Checkbox(done bool) string {
	if done {
		return lipgloss.NewStyle().Foreground(Green).Render("[x]")
	}
	return "[ ]"
}

// ProgressBar draws percent (0-100) over width cells.
func ProgressBar(percent, width int, t Theme) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	return lipgloss.NewStyle().Foreground(Green).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.Faded).Render(strings.Repeat("░", width-filled))
}

// Bar is a horizontal chart bar scaled against max.
func Bar(value, maxValue, width int, color lipgloss.Color) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := max(value*width/maxValue, 1)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▇", n))
}

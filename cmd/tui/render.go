package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/studyman/internal/ui"
	"github.com/td0m/studyman/pkg/persist"
	"github.com/td0m/studyman/pkg/pomodoro"
	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/view"
)

const (
	cardWidth = 34
	barWidth  = 30
)

var help = map[string]string{
	tabMain:      "a subject · t topic · space done · n notes · r rename · d delete · / search · p s filter · v layout · S stats · h l page",
	tabGraphs:    "j k scroll",
	tabHistory:   "j k scroll · E csv",
	tabTimer:     "space start/pause · r reset · 1 2 3 mode",
	tabReminders: "a add · d delete · j k move",
}

func (m *app) render() {
	m.updateRows()
	m.rowLines = nil
	var content string
	switch m.tabs.Name() {
	case tabMain:
		content = m.viewMain()
	case tabGraphs:
		content = m.viewGraphs()
	case tabHistory:
		content = m.viewHistory()
	case tabTimer:
		content = m.viewTimer()
	case tabReminders:
		content = m.viewReminders()
	}
	m.viewport.SetContent(content)
	m.scrollToCursor()

	m.tabs.Info = ""
	if m.timer.Running() {
		m.tabs.Info = ui.Timer.Render(m.timer.Format())
	}
}

func (m *app) View() string {
	return m.tabs.View() + m.viewport.View() + "\n" + m.statusline()
}

func (m *app) statusline() string {
	muted := ui.Muted(m.theme)
	prompt := func(label string) string {
		return muted.Render(label+": ") + m.input.View()
	}
	switch m.mode {
	case modeNewSubject:
		return prompt("new subject")
	case modeRename:
		return muted.Render("rename · enter save · esc cancel")
	case modeTopicName:
		return prompt("topic")
	case modeTopicHours:
		return prompt("hours")
	case modeTopicPriority:
		return muted.Render("priority: ") + "‹ " + ui.Priority(m.draft.Priority) + " ›" + muted.Render("  ←/→ enter")
	case modeTopicDeadline:
		return m.deadline.View()
	case modeNotes:
		return prompt("notes")
	case modeSearch:
		return prompt("search")
	case modeReminderText:
		return prompt("remind me to")
	case modeReminderTime:
		return prompt("at")
	}
	if m.status != "" {
		return m.status
	}
	return muted.Render(help[m.tabs.Name()] + " · T theme · e pdf · q quit")
}

func (m *app) viewMain() string {
	now := m.now()
	lines := []string{}
	if m.showStats {
		lines = append(lines, m.viewStats(view.Summarize(m.store.Subjects(), now)), "")
	}
	lines = append(lines, m.viewFilter(), "")

	page := m.visible()
	if len(page.Subjects) == 0 {
		if len(m.store.Subjects()) == 0 {
			lines = append(lines, ui.Muted(m.theme).Render("no subjects yet, press a to add one"))
		} else {
			lines = append(lines, ui.Muted(m.theme).Render("nothing matches the filter"))
		}
		return strings.Join(lines, "\n")
	}

	i := 0
	if m.layout == persist.LayoutGrid {
		cards := make([]string, len(page.Subjects))
		for j, s := range page.Subjects {
			cards[j] = m.viewCard(s, &i)
		}
		cols := max(m.width/(cardWidth+2), 1)
		for start := 0; start < len(cards); start += cols {
			end := min(start+cols, len(cards))
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
		}
	} else {
		for _, s := range page.Subjects {
			for _, l := range m.subjectLines(s, &i) {
				if l.row {
					m.rowLines = append(m.rowLines, len(lines))
				}
				lines = append(lines, l.text)
			}
			lines = append(lines, "")
		}
	}

	if page.Total > 1 {
		nav := fmt.Sprintf("page %d/%d", page.Number, page.Total)
		if page.HasPrev() {
			nav = "‹ " + nav
		}
		if page.HasNext() {
			nav += " ›"
		}
		lines = append(lines, ui.Muted(m.theme).Render(nav))
	}
	return strings.Join(lines, "\n")
}

func (m *app) viewStats(st view.Stats) string {
	d := ui.Divider(m.theme)
	overdue := strconv.Itoa(st.Overdue) + " overdue"
	if st.Overdue > 0 {
		overdue = ui.Overdue.Render(overdue)
	}
	return strconv.Itoa(st.Total) + " topics" + d +
		fmt.Sprintf("%d done (%d%%)", st.Completed, st.CompletionRate) + d +
		strconv.Itoa(st.Hours) + "h planned" + d + overdue
}

func (m *app) viewFilter() string {
	muted := ui.Muted(m.theme)
	search := m.filter.Search
	if search == "" {
		search = "-"
	}
	priority := m.filter.Priority
	if priority == "" {
		priority = view.All
	}
	status := string(m.filter.Status)
	if status == "" {
		status = view.All
	}
	return muted.Render("search ") + search + ui.Divider(m.theme) +
		muted.Render("priority ") + priority + ui.Divider(m.theme) +
		muted.Render("status ") + status
}

type line struct {
	text string
	row  bool
}

// subjectLines renders a subject and, unless collapsed, its topics.
// i is the index of the subject's row and is advanced past its topics.
func (m *app) subjectLines(s study.Subject, i *int) []line {
	title := ui.SubjectTitle.Copy().Foreground(m.theme.Primary)
	if *i == m.cursor {
		title = title.Copy().Inherit(ui.Selected)
	}
	arrow := "▾"
	if m.collapsed[s.ID] {
		arrow = "▸"
	}
	name := title.Render(s.Name)
	if m.mode == modeRename && *i == m.cursor {
		name = m.input.View()
	}
	progress := view.Progress(s)
	header := arrow + " " + ui.Dot(s.Color) + " " + name + "  " +
		ui.ProgressBar(progress, 10, m.theme) +
		ui.Muted(m.theme).Render(fmt.Sprintf(" %d%% (%d/%d)", progress, s.Completed(), len(s.Topics)))
	out := []line{{text: header, row: true}}
	*i++

	if m.collapsed[s.ID] {
		return out
	}
	for _, t := range s.Topics {
		out = append(out, line{text: "   " + m.topicLine(t, *i == m.cursor), row: true})
		*i++
	}
	return out
}

func (m *app) topicLine(t study.Topic, selected bool) string {
	now := m.now()
	name := lipgloss.NewStyle().Foreground(m.theme.Primary)
	if t.Completed {
		name = name.Copy().Inherit(ui.TopicDone)
	}
	if selected {
		name = name.Copy().Inherit(ui.Selected)
	}
	d := ui.Divider(m.theme)
	s := ui.Checkbox(t.Completed) + " " + name.Render(t.Name) + d + ui.Priority(t.Priority) + d + strconv.Itoa(t.Hours()) + "h"
	if !t.Deadline.IsZero() {
		due := "due " + t.Deadline.String()
		if t.Overdue(now) {
			due = ui.Overdue.Render(due + " overdue")
		}
		s += d + due
	}
	if t.Notes != "" {
		notes := strings.ReplaceAll(t.Notes, "\n", " ")
		if len([]rune(notes)) > 30 {
			notes = string([]rune(notes)[:29]) + "…"
		}
		s += d + ui.Muted(m.theme).Render(notes)
	}
	return s
}

func (m *app) viewCard(s study.Subject, i *int) string {
	first := *i
	lines := []string{}
	for _, l := range m.subjectLines(s, i) {
		lines = append(lines, l.text)
	}
	border := m.theme.Faded
	if m.cursor >= first && m.cursor < *i {
		border = m.theme.Primary
	}
	return ui.Card.Copy().Width(cardWidth).BorderForeground(border).Render(strings.Join(lines, "\n"))
}

func (m *app) viewGraphs() string {
	subjects := m.store.Subjects()
	title := ui.SubjectTitle.Copy().Foreground(m.theme.Primary)
	muted := ui.Muted(m.theme)
	lines := []string{title.Render("Progress by subject")}

	bars := view.BySubject(subjects)
	for _, b := range bars {
		lines = append(lines, fmt.Sprintf("%-16s", truncate(b.Name, 16))+
			ui.Bar(b.Completed, max(b.Topics, 1), barWidth, ui.Green)+
			muted.Render(fmt.Sprintf(" %d/%d", b.Completed, b.Topics)))
	}
	if len(bars) == 0 {
		lines = append(lines, muted.Render("no subjects"))
	}

	lines = append(lines, "", title.Render("Topics by priority"))
	slices := view.ByPriority(subjects)
	most := 0
	for _, p := range slices {
		most = max(most, p.Count)
	}
	for _, p := range slices {
		lines = append(lines, fmt.Sprintf("%-16s", p.Priority)+ui.Bar(p.Count, most, barWidth, ui.PriorityColor(p.Priority))+
			muted.Render(" "+strconv.Itoa(p.Count)))
	}

	lines = append(lines, "", title.Render("Completed over time"))
	days := view.CompletedOverTime(subjects)
	most = 0
	for _, d := range days {
		most = max(most, d.Count)
	}
	for _, d := range days {
		lines = append(lines, fmt.Sprintf("%-16s", d.Day.String())+ui.Bar(d.Count, most, barWidth, ui.Blue)+
			muted.Render(" "+strconv.Itoa(d.Count)))
	}
	if len(days) == 0 {
		lines = append(lines, muted.Render("nothing completed yet"))
	}
	return strings.Join(lines, "\n")
}

func (m *app) viewHistory() string {
	rows := view.History(m.store.Subjects())
	view.SortHistory(rows)
	muted := ui.Muted(m.theme)
	lines := []string{
		ui.SubjectTitle.Copy().Foreground(m.theme.Primary).Render("Study history") +
			muted.Render(fmt.Sprintf("  %.1f hours across %d topics", view.HistoryHours(rows), len(rows))),
		"",
	}
	if len(rows) == 0 {
		lines = append(lines, muted.Render("complete a topic to see it here"))
	}
	for _, r := range rows {
		l := fmt.Sprintf("%-10s  %-16s  %-24s  %5sh", r.Day.String(), truncate(r.Subject, 16), truncate(r.Topic, 24), r.Hours)
		if r.Notes != "" {
			l += "  " + muted.Render(truncate(strings.ReplaceAll(r.Notes, "\n", " "), 40))
		}
		lines = append(lines, l)
	}
	return strings.Join(lines, "\n")
}

var modeLabels = map[pomodoro.Mode]string{
	pomodoro.Focus:      "pomodoro",
	pomodoro.ShortBreak: "short break",
	pomodoro.LongBreak:  "long break",
}

func (m *app) viewTimer() string {
	muted := ui.Muted(m.theme)
	modes := make([]string, len(pomodoro.Modes))
	for i, md := range pomodoro.Modes {
		label := fmt.Sprintf("%d %s", i+1, modeLabels[md])
		if md == m.timer.Mode() {
			modes[i] = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(label)
		} else {
			modes[i] = muted.Render(label)
		}
	}
	state := "paused"
	if m.timer.Running() {
		state = "running"
	}
	clock := ui.Timer.Copy().Padding(1, 4).Border(lipgloss.RoundedBorder()).Render(m.timer.Format())
	return strings.Join([]string{
		strings.Join(modes, ui.Divider(m.theme)),
		"",
		clock,
		muted.Render(state),
	}, "\n")
}

func (m *app) viewReminders() string {
	muted := ui.Muted(m.theme)
	lines := []string{ui.SubjectTitle.Copy().Foreground(m.theme.Primary).Render("Reminders"), ""}
	all := m.book.All()
	if len(all) == 0 {
		lines = append(lines, muted.Render("no reminders, press a to add one"))
	}
	now := m.now()
	for i, r := range all {
		text := r.Text
		if i == m.reminderCursor {
			text = ui.Selected.Render(text)
		}
		when := r.Time.Format("Mon 2 Jan 15:04")
		if r.Time.Before(now) {
			when = muted.Render(when)
		}
		lines = append(lines, when+ui.Divider(m.theme)+text)
	}
	if len(m.fired) > 0 {
		lines = append(lines, "", ui.SubjectTitle.Copy().Foreground(m.theme.Primary).Render("Fired"))
		for i := len(m.fired) - 1; i >= 0; i-- {
			r := m.fired[i]
			lines = append(lines, muted.Render(r.Time.Format("15:04"))+ui.Divider(m.theme)+r.Text)
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}

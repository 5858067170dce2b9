package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/td0m/studyman/internal/export"
	"github.com/td0m/studyman/internal/ui"
	"github.com/td0m/studyman/pkg/dateinput"
	"github.com/td0m/studyman/pkg/persist"
	"github.com/td0m/studyman/pkg/pomodoro"
	"github.com/td0m/studyman/pkg/reminder"
	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/view"
)

const (
	headerHeight = 3
	footerHeight = 2
)

const (
	tabMain      = "Main"
	tabGraphs    = "Graphs"
	tabHistory   = "History"
	tabTimer     = "Timer"
	tabReminders = "Reminders"
)

var tabNames = []string{tabMain, tabGraphs, tabHistory, tabTimer, tabReminders}

type mode int

const (
	modeNormal mode = iota
	modeNewSubject
	modeRename
	modeTopicName
	modeTopicHours
	modeTopicPriority
	modeTopicDeadline
	modeNotes
	modeSearch
	modeConfirmDelete
	modeReminderText
	modeReminderTime
)

type (
	tickMsg     time.Time
	bellMsg     struct{}
	reminderMsg reminder.Reminder
	exportedMsg struct {
		path string
		err  error
	}
)

// row is one selectable line of the main tab: a subject header when topic
// is empty, otherwise one of its topics.
type row struct {
	subject study.ID
	topic   study.ID
}

type app struct {
	mode mode

	viewport viewport.Model
	input    textinput.Model
	deadline dateinput.Model
	tabs     ui.Tabs
	theme    ui.Theme
	width    int

	store    study.Manager
	session  *persist.Session
	book     *reminder.Book
	timer    *pomodoro.Timer
	exporter *export.Exporter
	logger   *zap.Logger
	now      func() time.Time
	bellOut  io.Writer

	filter    view.Filter
	layout    string
	showStats bool
	collapsed map[study.ID]bool
	page      int
	pageSize  int

	cursor int
	rows   []row
	// line of each row in the rendered main tab, for scrolling
	rowLines []int

	draft          study.TopicInput
	draftSubject   study.ID
	reminderCursor int
	reminderText   string

	status string
	fired  []reminder.Reminder
}

func newApp(st persist.State, session *persist.Session, exporter *export.Exporter, logger *zap.Logger) *app {
	if logger == nil {
		logger = zap.NewNop()
	}
	i := textinput.New()
	i.Focus()
	i.Prompt = ""
	i.Width = 40

	a := &app{
		input:    i,
		deadline: dateinput.NewModel(),
		viewport: viewport.New(0, 0),
		tabs:     ui.NewTabs(tabNames),
		theme:    ui.ThemeNamed(st.Theme),

		store:    study.FromSubjects(st.Subjects),
		session:  session,
		book:     reminder.NewBook(st.Reminders),
		timer:    pomodoro.New(),
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
		bellOut:  os.Stdout,

		filter:    view.Filter{Priority: st.FilterPriority, Status: st.FilterStatus},
		layout:    st.Layout,
		showStats: st.ShowStats,
		collapsed: map[study.ID]bool{},
		page:      1,
		pageSize:  6,
	}
	for _, id := range st.Collapsed {
		a.collapsed[id] = true
	}
	a.tabs.SetName(st.CurrentView)
	a.tabs.Theme = a.theme
	a.updateRows()
	return a
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// bell rings the terminal and hands the tick loop back to Update.
func bell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		_, _ = io.WriteString(w, "\a")
		return bellMsg{}
	}
}

func (m *app) Init() tea.Cmd {
	return tick()
}

func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.tabs.Width = msg.Width
	case tickMsg:
		if m.timer.Tick() {
			m.status = string(m.timer.Mode()) + " starts now"
			cmd = bell(m.bellOut)
		} else {
			cmd = tick()
		}
	case bellMsg:
		cmd = tick()
	case reminderMsg:
		m.fired = append(m.fired, reminder.Reminder(msg))
		m.status = "⏰ " + msg.Text
	case exportedMsg:
		if msg.err != nil {
			m.logger.Error("export failed", zap.Error(msg.err))
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "exported to " + msg.path
		}
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.mode = modeNormal
			m.status = ""
		default:
			cmd = m.keyUpdate(msg)
		}
	}
	m.render()
	return m, cmd
}

// keyUpdate handles keys differently based on the current mode
func (m *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeNormal:
		return m.normalKey(msg)
	case modeConfirmDelete:
		switch msg.String() {
		case "y", "Y":
			if id := m.atCursor().subject; id != "" {
				m.logErr(m.store.DeleteSubject(id))
				delete(m.collapsed, id)
				m.saveSubjects()
				m.saveCollapsed()
			}
			fallthrough
		case "n", "N":
			m.mode = modeNormal
			m.status = ""
		}
		return nil
	case modeTopicPriority:
		switch msg.String() {
		case "left", "h":
			m.draft.Priority = cycle(study.Priorities, m.draft.Priority, -1)
		case "right", "l", " ":
			m.draft.Priority = cycle(study.Priorities, m.draft.Priority, 1)
		case "enter":
			m.mode = modeTopicDeadline
			m.deadline.Reset()
		}
		return nil
	case modeTopicDeadline:
		if msg.Type == tea.KeyEnter {
			if m.deadline.Valid() {
				m.draft.Deadline = m.deadline.Value()
				m.createTopic()
			}
			return nil
		}
		var cmd tea.Cmd
		m.deadline, cmd = m.deadline.Update(msg)
		return cmd
	}

	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.mode == modeSearch {
			m.filter.Search = m.input.Value()
			m.page = 1
			m.updateRows()
		}
		return cmd
	}

	value := m.input.Value()
	switch m.mode {
	case modeNewSubject:
		if _, err := m.store.AddSubject(value, m.now()); err == nil {
			m.saveSubjects()
			m.goToLastPage()
		}
		m.mode = modeNormal
	case modeRename:
		m.logErr(m.store.RenameSubject(m.atCursor().subject, value))
		m.saveSubjects()
		m.mode = modeNormal
	case modeTopicName:
		if strings.TrimSpace(value) == "" {
			m.mode = modeNormal
			return nil
		}
		m.draft.Name = value
		m.editInput(modeTopicHours, "")
	case modeTopicHours:
		m.draft.Hours = strings.TrimSpace(value)
		m.mode = modeTopicPriority
	case modeNotes:
		r := m.atCursor()
		m.logErr(m.store.UpdateNotes(r.subject, r.topic, value))
		m.saveSubjects()
		m.mode = modeNormal
	case modeSearch:
		m.mode = modeNormal
	case modeReminderText:
		if strings.TrimSpace(value) == "" {
			m.mode = modeNormal
			return nil
		}
		m.reminderText = value
		m.editInput(modeReminderTime, m.now().Add(time.Hour).Format(reminder.Layout))
	case modeReminderTime:
		at, err := reminder.ParseTime(value, m.now())
		if err != nil {
			m.status = err.Error()
			return nil
		}
		if _, err := m.book.Add(m.reminderText, at); err != nil {
			m.status = "reminder needs text and a time"
			return nil
		}
		m.session.SaveReminders(m.book.All())
		m.reminderCursor = len(m.book.All()) - 1
		m.mode = modeNormal
		m.status = ""
	}
	m.updateRows()
	return nil
}

func (m *app) normalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab", "shift+tab":
		m.tabs, _ = m.tabs.Update(msg)
		m.session.SaveCurrentView(strings.ToLower(m.tabs.Name()))
		m.viewport.GotoTop()
		return nil
	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5":
		m.tabs.Set(int(msg.String()[4] - '1'))
		m.session.SaveCurrentView(strings.ToLower(m.tabs.Name()))
		m.viewport.GotoTop()
		return nil
	case "T":
		m.theme = m.theme.Toggle()
		m.tabs.Theme = m.theme
		m.session.SaveTheme(m.theme.Name)
		return nil
	case "e":
		return m.export(m.exporter.PDF)
	case "E":
		return m.export(m.exporter.CSV)
	case "ctrl+d":
		m.viewport.HalfViewDown()
		return nil
	case "ctrl+u":
		m.viewport.HalfViewUp()
		return nil
	}

	switch m.tabs.Name() {
	case tabMain:
		m.mainKey(msg)
	case tabTimer:
		m.timerKey(msg)
	case tabReminders:
		m.remindersKey(msg)
	case tabGraphs, tabHistory:
		switch msg.String() {
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		}
	}
	return nil
}

func (m *app) mainKey(msg tea.KeyMsg) {
	r := m.atCursor()
	switch msg.String() {
	case "j", "down":
		m.setCursor(m.cursor + 1)
	case "k", "up":
		m.setCursor(m.cursor - 1)
	case "g":
		m.setCursor(0)
	case "G":
		m.setCursor(len(m.rows) - 1)
	case "a":
		m.editInput(modeNewSubject, "")
	case "r":
		if s, ok := m.store.Get(r.subject); ok {
			m.editInput(modeRename, s.Name)
		}
	case "t", "o":
		if r.subject != "" {
			m.draftSubject = r.subject
			m.draft = study.TopicInput{Priority: study.Medium}
			m.editInput(modeTopicName, "")
		}
	case "n":
		if t, ok := m.topicAt(r); ok {
			m.editInput(modeNotes, t.Notes)
		}
	case " ", "x":
		if r.topic != "" {
			m.logErr(m.store.ToggleTopic(r.subject, r.topic, m.now()))
			m.saveSubjects()
		}
	case "d", "delete":
		switch {
		case r.topic != "":
			m.logErr(m.store.DeleteTopic(r.subject, r.topic))
			m.saveSubjects()
		case r.subject != "":
			s, _ := m.store.Get(r.subject)
			m.mode = modeConfirmDelete
			m.status = `delete "` + s.Name + `" and all its topics? (y/n)`
			return
		}
	case "enter", "c":
		if r.subject != "" && r.topic == "" {
			m.collapsed[r.subject] = !m.collapsed[r.subject]
			if !m.collapsed[r.subject] {
				delete(m.collapsed, r.subject)
			}
			m.saveCollapsed()
		}
	case "/":
		m.editInput(modeSearch, m.filter.Search)
	case "p":
		m.filter.Priority = cycle(view.Priorities, m.filter.Priority, 1)
		m.session.SaveFilterPriority(m.filter.Priority)
		m.page = 1
	case "s":
		m.filter.Status = cycle(view.Statuses, m.filter.Status, 1)
		m.session.SaveFilterStatus(m.filter.Status)
		m.page = 1
	case "v":
		if m.layout == persist.LayoutGrid {
			m.layout = persist.LayoutList
		} else {
			m.layout = persist.LayoutGrid
		}
		m.session.SaveLayout(m.layout)
	case "S":
		m.showStats = !m.showStats
		m.session.SaveShowStats(m.showStats)
	case "l", "right", "]":
		m.page++
		m.cursor = 0
	case "h", "left", "[":
		m.page = max(m.page-1, 1)
		m.cursor = 0
	}
	m.updateRows()
}

func (m *app) timerKey(msg tea.KeyMsg) {
	switch msg.String() {
	case " ", "enter":
		m.timer.Toggle()
	case "r":
		m.timer.Reset()
	case "1", "2", "3":
		m.timer.Switch(pomodoro.Modes[msg.String()[0]-'1'])
	}
}

func (m *app) remindersKey(msg tea.KeyMsg) {
	all := m.book.All()
	switch msg.String() {
	case "j", "down":
		m.reminderCursor = clamp(m.reminderCursor+1, 0, len(all)-1)
	case "k", "up":
		m.reminderCursor = clamp(m.reminderCursor-1, 0, len(all)-1)
	case "a":
		m.editInput(modeReminderText, "")
	case "d", "delete":
		if m.reminderCursor < len(all) {
			m.logErr(m.book.Delete(all[m.reminderCursor].ID))
			m.session.SaveReminders(m.book.All())
			m.reminderCursor = clamp(m.reminderCursor, 0, len(all)-2)
		}
	}
}

func (m *app) export(f func([]study.Subject, time.Time) (string, error)) tea.Cmd {
	now := m.now()
	// copies, since the export runs off the update loop
	subjects := view.Apply(m.store.Subjects(), view.DefaultFilter(), now)
	m.status = "exporting..."
	return func() tea.Msg {
		path, err := f(subjects, now)
		return exportedMsg{path: path, err: err}
	}
}

func (m *app) editInput(md mode, value string) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
}

func (m *app) createTopic() {
	_, err := m.store.AddTopic(m.draftSubject, m.draft, m.now())
	if err == nil {
		delete(m.collapsed, m.draftSubject)
		m.saveSubjects()
	}
	m.logErr(err)
	m.mode = modeNormal
	m.updateRows()
}

// visible applies the filter and pagination, clamping the page.
func (m *app) visible() view.Page {
	filtered := view.Apply(m.store.Subjects(), m.filter, m.now())
	p := view.Paginate(filtered, m.page, m.pageSize)
	m.page = p.Number
	return p
}

func (m *app) goToLastPage() {
	m.page = view.Paginate(view.Apply(m.store.Subjects(), m.filter, m.now()), 1<<30, m.pageSize).Number
}

// updateRows recomputes the selectable rows of the current page
func (m *app) updateRows() {
	rows := []row{}
	for _, s := range m.visible().Subjects {
		rows = append(rows, row{subject: s.ID})
		if m.collapsed[s.ID] {
			continue
		}
		for _, t := range s.Topics {
			rows = append(rows, row{subject: s.ID, topic: t.ID})
		}
	}
	m.rows = rows
	m.cursor = clamp(m.cursor, 0, len(m.rows)-1)
}

func (m *app) atCursor() row {
	// if no items visible
	if m.cursor >= len(m.rows) {
		return row{}
	}
	return m.rows[m.cursor]
}

func (m *app) topicAt(r row) (study.Topic, bool) {
	s, ok := m.store.Get(r.subject)
	if !ok || r.topic == "" {
		return study.Topic{}, false
	}
	for _, t := range s.Topics {
		if t.ID == r.topic {
			return t, true
		}
	}
	return study.Topic{}, false
}

func (m *app) setCursor(value int) {
	m.cursor = clamp(value, 0, len(m.rows)-1)
}

// scrollToCursor keeps the selected row inside the viewport.
func (m *app) scrollToCursor() {
	if m.cursor >= len(m.rowLines) || m.viewport.Height <= 0 {
		return
	}
	line := m.rowLines[m.cursor]
	if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	}
}

func (m *app) saveSubjects() {
	m.session.SaveSubjects(m.store.Subjects())
}

func (m *app) saveCollapsed() {
	ids := []study.ID{}
	for _, s := range m.store.Subjects() {
		if m.collapsed[s.ID] {
			ids = append(ids, s.ID)
		}
	}
	m.session.SaveCollapsed(ids)
}

// logErr records errors the user cannot act on. A blank name is expected
// and ignored silently.
func (m *app) logErr(err error) {
	if err == nil || errors.Is(err, study.ErrEmptyName) {
		return
	}
	m.logger.Warn("operation failed", zap.Error(err))
}

func cycle[T comparable](values []T, current T, step int) T {
	for i, v := range values {
		if v == current {
			return values[(i+step+len(values))%len(values)]
		}
	}
	return values[0]
}

func clamp(v, low, high int) int {
	return min(max(high, low), max(low, v))
}

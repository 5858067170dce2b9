package persist

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/td0m/studyman/pkg/reminder"
	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/view"
)

const (
	KeySubjects       = "studySubjects"
	KeyFilterPriority = "filterPriority"
	KeyFilterStatus   = "filterStatus"
	KeyLayout         = "view"
	KeyTheme          = "theme"
	KeyShowStats      = "showStats"
	KeyCurrentView    = "currentView"
	KeyCollapsed      = "collapsed"
	KeyReminders      = "reminders"
)

const (
	LayoutList = "list"
	LayoutGrid = "grid"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// State is everything the client restores on start.
type State struct {
	Subjects       []study.Subject
	FilterPriority string
	FilterStatus   view.Status
	Layout         string
	Theme          string
	ShowStats      bool
	CurrentView    string
	Collapsed      []study.ID
	Reminders      []reminder.Reminder
}

func DefaultState() State {
	return State{
		Subjects:       []study.Subject{},
		FilterPriority: view.All,
		FilterStatus:   view.StatusAll,
		Layout:         LayoutList,
		Theme:          ThemeLight,
		ShowStats:      true,
		CurrentView:    "main",
		Collapsed:      []study.ID{},
		Reminders:      []reminder.Reminder{},
	}
}

// Session reads and writes State one key at a time.
// Write failures are logged and swallowed; the in-memory state stays
// authoritative for the rest of the run.
type Session struct {
	kv      KV
	logger  *zap.Logger
	timeout time.Duration
}

func NewSession(kv KV, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{kv: kv, logger: logger, timeout: 5 * time.Second}
}

func (s *Session) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Load reads every key independently. A missing or malformed key keeps its
// default without affecting the others.
func (s *Session) Load() State {
	ctx, cancel := s.ctx()
	defer cancel()

	st := DefaultState()
	LoadJSON(ctx, s.kv, KeySubjects, &st.Subjects, s.logger)
	LoadJSON(ctx, s.kv, KeyFilterPriority, &st.FilterPriority, s.logger)
	LoadJSON(ctx, s.kv, KeyFilterStatus, &st.FilterStatus, s.logger)
	LoadJSON(ctx, s.kv, KeyLayout, &st.Layout, s.logger)
	LoadJSON(ctx, s.kv, KeyTheme, &st.Theme, s.logger)
	LoadJSON(ctx, s.kv, KeyShowStats, &st.ShowStats, s.logger)
	LoadJSON(ctx, s.kv, KeyCurrentView, &st.CurrentView, s.logger)
	LoadJSON(ctx, s.kv, KeyCollapsed, &st.Collapsed, s.logger)
	LoadJSON(ctx, s.kv, KeyReminders, &st.Reminders, s.logger)

	if st.Subjects == nil {
		st.Subjects = []study.Subject{}
	}
	if st.Collapsed == nil {
		st.Collapsed = []study.ID{}
	}
	if st.Reminders == nil {
		st.Reminders = []reminder.Reminder{}
	}
	return st
}

func (s *Session) save(key string, v any) {
	ctx, cancel := s.ctx()
	defer cancel()
	if err := SaveJSON(ctx, s.kv, key, v); err != nil {
		s.logger.Error("could not save", zap.String("key", key), zap.Error(err))
	}
}

func (s *Session) SaveSubjects(subjects []study.Subject) { s.save(KeySubjects, subjects) }

func (s *Session) SaveFilterPriority(p string) { s.save(KeyFilterPriority, p) }

func (s *Session) SaveFilterStatus(st view.Status) { s.save(KeyFilterStatus, st) }

func (s *Session) SaveLayout(layout string) { s.save(KeyLayout, layout) }

func (s *Session) SaveTheme(theme string) { s.save(KeyTheme, theme) }

func (s *Session) SaveShowStats(show bool) { s.save(KeyShowStats, show) }

func (s *Session) SaveCurrentView(v string) { s.save(KeyCurrentView, v) }

func (s *Session) SaveCollapsed(ids []study.ID) { s.save(KeyCollapsed, ids) }

func (s *Session) SaveReminders(rs []reminder.Reminder) { s.save(KeyReminders, rs) }

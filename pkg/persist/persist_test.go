package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/matryer/is"

	"github.com/td0m/studyman/pkg/reminder"
	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/view"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := OpenSQLite(filepath.Join(dir, "study.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]KV{
		"file":   InJSON(filepath.Join(dir, "study.json")),
		"sqlite": sqlite,
	}
}

func TestKV_GetSet(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, err := kv.Get(ctx, KeyTheme)
			is.True(errors.Is(err, ErrNotFound))

			is.NoErr(kv.Set(ctx, KeyTheme, []byte(`"dark"`)))
			is.NoErr(kv.Set(ctx, KeyShowStats, []byte(`false`)))
			is.NoErr(kv.Set(ctx, KeyTheme, []byte(`"light"`)))

			bs, err := kv.Get(ctx, KeyTheme)
			is.NoErr(err)
			is.Equal(string(bs), `"light"`)
			bs, err = kv.Get(ctx, KeyShowStats)
			is.NoErr(err)
			is.Equal(string(bs), `false`)
		})
	}
}

func TestJSON_SurvivesReopen(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "nested", "study.json")

	is.NoErr(InJSON(file).Set(ctx, KeyLayout, []byte(`"grid"`)))
	bs, err := InJSON(file).Get(ctx, KeyLayout)
	is.NoErr(err)
	is.Equal(string(bs), `"grid"`)

	is.True(InJSON(file).Set(ctx, KeyLayout, []byte(`{`)) != nil) // not json
}

func TestSQLite_SetError(t *testing.T) {
	is := is.New(t)
	db, mock, err := sqlmock.New()
	is.NoErr(err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO kv").
		WithArgs(KeyTheme, `"dark"`).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs(KeyTheme).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	kv, err := NewSQLite(db)
	is.NoErr(err)

	err = kv.Set(context.Background(), KeyTheme, []byte(`"dark"`))
	is.True(err != nil)

	_, err = kv.Get(context.Background(), KeyTheme)
	is.True(errors.Is(err, ErrNotFound))

	is.NoErr(mock.ExpectationsWereMet())
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()
	kv := InJSON(filepath.Join(t.TempDir(), "study.json"))

	t.Run("missing key keeps default", func(t *testing.T) {
		is := is.New(t)
		theme := ThemeLight
		LoadJSON(ctx, kv, KeyTheme, &theme, nil)
		is.Equal(theme, ThemeLight)
	})

	t.Run("malformed key keeps default", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(kv.Set(ctx, KeyCollapsed, []byte(`{"not":"a list"}`)))
		collapsed := []study.ID{"a"}
		LoadJSON(ctx, kv, KeyCollapsed, &collapsed, nil)
		is.Equal(collapsed, []study.ID{"a"})
	})
}

func TestSession(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "study.json")
	session := NewSession(InJSON(file), nil)

	st := session.Load()
	is.Equal(st, DefaultState())

	now := time.Date(2025, time.April, 16, 9, 30, 0, 0, time.Local)
	store := study.NewStore()
	id, err := store.AddSubject("Math", now)
	is.NoErr(err)
	_, err = store.AddTopic(id, study.TopicInput{Name: "Algebra", Hours: "2"}, now)
	is.NoErr(err)

	session.SaveSubjects(store.Subjects())
	session.SaveFilterPriority(string(study.High))
	session.SaveFilterStatus(view.StatusOverdue)
	session.SaveLayout(LayoutGrid)
	session.SaveTheme(ThemeDark)
	session.SaveShowStats(false)
	session.SaveCurrentView("history")
	session.SaveCollapsed([]study.ID{id})
	session.SaveReminders([]reminder.Reminder{{ID: "r1", Text: "revise", Time: now}})

	st = NewSession(InJSON(file), nil).Load()
	is.Equal(len(st.Subjects), 1)
	is.Equal(st.Subjects[0].Name, "Math")
	is.Equal(st.Subjects[0].Topics[0].Name, "Algebra")
	is.Equal(st.FilterPriority, "high")
	is.Equal(st.FilterStatus, view.StatusOverdue)
	is.Equal(st.Layout, LayoutGrid)
	is.Equal(st.Theme, ThemeDark)
	is.Equal(st.ShowStats, false)
	is.Equal(st.CurrentView, "history")
	is.Equal(st.Collapsed, []study.ID{id})
	is.Equal(len(st.Reminders), 1)
	is.True(st.Reminders[0].Time.Equal(now))
}

func TestSession_CorruptKeyIsIsolated(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "study.json")
	is.NoErr(os.WriteFile(file, []byte(`{"studySubjects": "oops", "theme": "dark"}`), 0660))

	st := NewSession(InJSON(file), nil).Load()
	is.Equal(st.Subjects, []study.Subject{})
	is.Equal(st.Theme, ThemeDark)
}

func TestSession_CorruptFileRecoversOnSave(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "study.json")
	is.NoErr(os.WriteFile(file, []byte(`{"studySubjects": [`), 0660))

	session := NewSession(InJSON(file), nil)
	st := session.Load()
	is.Equal(len(st.Subjects), 0)

	store := study.FromSubjects(st.Subjects)
	_, err := store.AddSubject("Math", time.Now())
	is.NoErr(err)
	session.SaveSubjects(store.Subjects())
	session.SaveTheme(ThemeDark)

	st = NewSession(InJSON(file), nil).Load()
	is.Equal(len(st.Subjects), 1)
	is.Equal(st.Subjects[0].Name, "Math")
	is.Equal(st.Theme, ThemeDark)

	bad, err := os.ReadFile(file + ".corrupt")
	is.NoErr(err)
	is.Equal(string(bad), `{"studySubjects": [`)
}

func TestOpen_UnknownDriver(t *testing.T) {
	is := is.New(t)
	_, err := Open(Options{Driver: "postgres"})
	is.True(err != nil)
}

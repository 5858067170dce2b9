package view

import (
	"reflect"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/study/date"
)

var now = time.Date(2025, time.April, 16, 15, 30, 0, 0, time.Local)

// math builds the Math subject with an overdue Algebra and a completed Geometry.
func mathSubjects(t *testing.T) *study.Store {
	is := is.New(t)
	s := study.NewStore()
	id, err := s.AddSubject("Math", now)
	is.NoErr(err)
	_, err = s.AddTopic(id, study.TopicInput{
		Name:     "Algebra",
		Hours:    "3",
		Priority: study.High,
		Deadline: date.Of(now).AddDays(-1),
	}, now)
	is.NoErr(err)
	geo, err := s.AddTopic(id, study.TopicInput{Name: "Geometry", Hours: "2"}, now)
	is.NoErr(err)
	is.NoErr(s.ToggleTopic(id, geo, now))
	return s
}

func names(subjects []study.Subject) []string {
	out := []string{}
	for _, s := range subjects {
		for _, t := range s.Topics {
			out = append(out, t.Name)
		}
	}
	return out
}

func TestMathScenario(t *testing.T) {
	is := is.New(t)
	s := mathSubjects(t)

	f := DefaultFilter()
	f.Status = StatusOverdue
	is.Equal(names(Apply(s.Subjects(), f, now)), []string{"Algebra"})

	stats := Summarize(s.Subjects(), now)
	is.Equal(stats.Hours, 5)
	is.Equal(stats.CompletionRate, 50)
	is.Equal(stats.Total, 2)
	is.Equal(stats.Completed, 1)
	is.Equal(stats.Overdue, 1)
}

func TestFilter(t *testing.T) {
	s := mathSubjects(t)
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"default", DefaultFilter(), []string{"Algebra", "Geometry"}},
		{"zero value matches all", Filter{}, []string{"Algebra", "Geometry"}},
		{"search is case insensitive", Filter{Search: "ALG", Priority: All, Status: StatusAll}, []string{"Algebra"}},
		{"priority", Filter{Priority: "medium", Status: StatusAll}, []string{"Geometry"}},
		{"completed", Filter{Priority: All, Status: StatusCompleted}, []string{"Geometry"}},
		{"pending", Filter{Priority: All, Status: StatusPending}, []string{"Algebra"}},
		{"criteria combine", Filter{Search: "geo", Priority: "high", Status: StatusAll}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(names(Apply(s.Subjects(), tt.filter, now)), tt.want)
		})
	}
}

func TestFilter_OverdueNeedsPastDeadline(t *testing.T) {
	is := is.New(t)
	s := study.NewStore()
	id, _ := s.AddSubject("Bio", now)
	_, _ = s.AddTopic(id, study.TopicInput{Name: "today", Deadline: date.Of(now)}, now)
	_, _ = s.AddTopic(id, study.TopicInput{Name: "tomorrow", Deadline: date.Of(now).AddDays(1)}, now)
	_, _ = s.AddTopic(id, study.TopicInput{Name: "none"}, now)

	f := Filter{Priority: All, Status: StatusOverdue}
	// midnight today is before now, so a deadline of today has passed
	is.Equal(names(Apply(s.Subjects(), f, now)), []string{"today"})
	is.Equal(Summarize(s.Subjects(), now).Overdue, 1)
}

func TestApply_Idempotent(t *testing.T) {
	s := mathSubjects(t)
	filters := []Filter{
		DefaultFilter(),
		{Search: "a", Priority: All, Status: StatusAll},
		{Search: "zzz", Priority: All, Status: StatusAll},
		{Priority: "high", Status: StatusOverdue},
		{Priority: All, Status: StatusCompleted},
	}
	for _, f := range filters {
		is := is.New(t)
		once := Apply(s.Subjects(), f, now)
		twice := Apply(once, f, now)
		is.True(reflect.DeepEqual(once, twice))
	}
}

func TestApply_DoesNotMutate(t *testing.T) {
	is := is.New(t)
	s := mathSubjects(t)
	_ = Apply(s.Subjects(), Filter{Search: "nothing"}, now)
	is.Equal(len(s.Subjects()[0].Topics), 2)
}

func TestApply_EmptySubjects(t *testing.T) {
	is := is.New(t)
	s := study.NewStore()
	_, _ = s.AddSubject("Empty", now)

	got := Apply(s.Subjects(), DefaultFilter(), now)
	is.Equal(len(got), 1)
	is.Equal(got[0].Name, "Empty")

	// searching hides subjects without a match
	got = Apply(s.Subjects(), Filter{Search: "x"}, now)
	is.Equal(len(got), 0)
}

func TestProgress(t *testing.T) {
	is := is.New(t)
	s := study.NewStore()
	id, _ := s.AddSubject("Math", now)

	sub, _ := s.Get(id)
	is.Equal(Progress(sub), 0)

	var ids []study.ID
	for _, name := range []string{"a", "b", "c"} {
		tid, _ := s.AddTopic(id, study.TopicInput{Name: name}, now)
		ids = append(ids, tid)
	}
	for i, tid := range ids {
		is.NoErr(s.ToggleTopic(id, tid, now))
		sub, _ = s.Get(id)
		p := Progress(sub)
		is.True(p >= 0 && p <= 100)
		is.Equal(p, []int{33, 67, 100}[i])
	}
}

func TestDeleteSubjectDropsFromStats(t *testing.T) {
	is := is.New(t)
	s := mathSubjects(t)
	bio, _ := s.AddSubject("Bio", now)
	_, _ = s.AddTopic(bio, study.TopicInput{Name: "Cells", Hours: "4"}, now)
	is.Equal(Summarize(s.Subjects(), now).Total, 3)

	is.NoErr(s.DeleteSubject(s.Subjects()[0].ID))
	stats := Summarize(s.Subjects(), now)
	is.Equal(stats, Stats{Total: 1, Hours: 4})
}

func TestSummarize_Empty(t *testing.T) {
	is := is.New(t)
	is.Equal(Summarize(nil, now), Stats{})
}

func TestPaginate(t *testing.T) {
	subjects := make([]study.Subject, 5)
	for i := range subjects {
		subjects[i].Name = string(rune('a' + i))
	}
	tests := []struct {
		name    string
		page    int
		perPage int
		want    []string
		number  int
		total   int
	}{
		{"first", 1, 2, []string{"a", "b"}, 1, 3},
		{"last is short", 3, 2, []string{"e"}, 3, 3},
		{"clamped high", 9, 2, []string{"e"}, 3, 3},
		{"clamped low", 0, 2, []string{"a", "b"}, 1, 3},
		{"no page size", 1, 0, []string{"a", "b", "c", "d", "e"}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			p := Paginate(subjects, tt.page, tt.perPage)
			got := []string{}
			for _, s := range p.Subjects {
				got = append(got, s.Name)
			}
			is.Equal(got, tt.want)
			is.Equal(p.Number, tt.number)
			is.Equal(p.Total, tt.total)
		})
	}

	t.Run("empty", func(t *testing.T) {
		is := is.New(t)
		p := Paginate(nil, 3, 4)
		is.Equal(len(p.Subjects), 0)
		is.Equal(p.Total, 1)
		is.True(!p.HasNext())
		is.True(!p.HasPrev())
	})
}

func TestCharts(t *testing.T) {
	is := is.New(t)
	s := mathSubjects(t)

	is.Equal(BySubject(s.Subjects()), []SubjectBar{{Name: "Math", Topics: 2, Completed: 1}})
	is.Equal(ByPriority(s.Subjects()), []PrioritySlice{
		{Priority: study.High, Count: 1},
		{Priority: study.Medium, Count: 1},
		{Priority: study.Low, Count: 0},
	})

	id := s.Subjects()[0].ID
	algebra := s.Subjects()[0].Topics[0].ID
	is.NoErr(s.ToggleTopic(id, algebra, now.AddDate(0, 0, -2)))
	days := CompletedOverTime(s.Subjects())
	is.Equal(len(days), 2)
	is.Equal(days[0], DayCount{Day: date.Of(now).AddDays(-2), Count: 1})
	is.Equal(days[1], DayCount{Day: date.Of(now), Count: 1})
}

func TestHistory(t *testing.T) {
	is := is.New(t)
	s := mathSubjects(t)
	id := s.Subjects()[0].ID
	geo := s.Subjects()[0].Topics[1].ID
	is.NoErr(s.UpdateNotes(id, geo, "triangles"))

	rows := History(s.Subjects())
	is.Equal(len(rows), 1)
	is.Equal(rows[0].Topic, "Geometry")
	is.Equal(rows[0].Subject, "Math")
	is.Equal(rows[0].Notes, "triangles")
	is.Equal(rows[0].Day, date.Of(now))

	rows = append(rows, HistoryRow{Hours: "1.5"}, HistoryRow{Hours: "n/a"})
	is.Equal(HistoryHours(rows), 3.5)
}

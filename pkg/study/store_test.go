package study

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/studyman/pkg/study/date"
)

func TestStore_AddSubject(t *testing.T) {
	is := is.New(t)

	s := NewStore()
	now := time.Now()

	// blank names are skipped
	_, err := s.AddSubject("   ", now)
	is.Equal(err, ErrEmptyName)
	is.Equal(len(s.Subjects()), 0)

	id, err := s.AddSubject("Math", now)
	is.NoErr(err)
	is.Equal(len(s.Subjects()), 1)

	got, ok := s.Get(id)
	is.True(ok)
	is.Equal(got.Name, "Math")
	is.Equal(got.CreatedAt, now)
	is.Equal(len(got.Topics), 0)
	is.True(got.Topics != nil) // serialises as [] rather than null
	is.True(inPalette(got.Color))
}

func TestStore_IDsDoNotCollide(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	now := time.Now()
	seen := map[ID]bool{}
	for i := 0; i < 100; i++ {
		id, err := s.AddSubject("same instant", now)
		is.NoErr(err)
		is.True(!seen[id])
		seen[id] = true
	}
}

func TestStore_RenameSubject(t *testing.T) {
	s := NewStore()
	id, _ := s.AddSubject("Math", time.Now())

	t.Run("renames a valid subject", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(s.RenameSubject(id, "Maths"))
		got, _ := s.Get(id)
		is.Equal(got.Name, "Maths")
	})

	t.Run("accepts blank names", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(s.RenameSubject(id, ""))
		got, _ := s.Get(id)
		is.Equal(got.Name, "")
	})

	t.Run("returns error on invalid subject ID", func(t *testing.T) {
		is := is.New(t)
		is.Equal(s.RenameSubject("invalid", "hello"), ErrNotFound)
	})
}

func TestStore_AddTopic(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	now := time.Now()
	id, _ := s.AddSubject("Math", now)

	names := []string{"Algebra", "", "  ", "Geometry", "Calculus", "\t"}
	want := 0
	for _, name := range names {
		_, err := s.AddTopic(id, TopicInput{Name: name}, now)
		if err == nil {
			want++
		} else {
			is.Equal(err, ErrEmptyName)
		}
	}
	got, _ := s.Get(id)
	is.Equal(len(got.Topics), want)
	is.Equal(want, 3)

	t.Run("defaults", func(t *testing.T) {
		is := is.New(t)
		topic := got.Topics[0]
		is.Equal(topic.Name, "Algebra")
		is.Equal(topic.StudyTime, "0")
		is.Equal(topic.Priority, Medium)
		is.True(topic.Deadline.IsZero())
		is.Equal(topic.Notes, "")
		is.True(!topic.Completed)
		is.True(topic.CompletedAt == nil)
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		is := is.New(t)
		is.Equal(got.Topics[1].Name, "Geometry")
		is.Equal(got.Topics[2].Name, "Calculus")
	})

	t.Run("keeps given fields", func(t *testing.T) {
		is := is.New(t)
		deadline := date.On(2030, time.January, 2)
		tid, err := s.AddTopic(id, TopicInput{Name: "Trig", Hours: "2.5", Priority: High, Deadline: deadline}, now)
		is.NoErr(err)
		sub, _ := s.Get(id)
		topic := sub.Topics[len(sub.Topics)-1]
		is.Equal(topic.ID, tid)
		is.Equal(topic.StudyTime, "2.5")
		is.Equal(topic.Priority, High)
		is.Equal(topic.Deadline, deadline)
	})

	t.Run("unknown subject", func(t *testing.T) {
		is := is.New(t)
		_, err := s.AddTopic("invalid", TopicInput{Name: "x"}, now)
		is.Equal(err, ErrNotFound)
	})
}

func TestStore_ToggleTopic(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	sid, _ := s.AddSubject("Math", time.Now())
	tid, _ := s.AddTopic(sid, TopicInput{Name: "Algebra"}, time.Now())

	done := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	is.NoErr(s.ToggleTopic(sid, tid, done))
	sub, _ := s.Get(sid)
	is.True(sub.Topics[0].Completed)
	is.Equal(*sub.Topics[0].CompletedAt, done)

	// toggling twice restores the original state
	is.NoErr(s.ToggleTopic(sid, tid, done.Add(time.Hour)))
	sub, _ = s.Get(sid)
	is.True(!sub.Topics[0].Completed)
	is.True(sub.Topics[0].CompletedAt == nil)

	is.Equal(s.ToggleTopic(sid, "invalid", done), ErrNotFound)
	is.Equal(s.ToggleTopic("invalid", tid, done), ErrNotFound)
}

func TestStore_UpdateNotes(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	sid, _ := s.AddSubject("Math", time.Now())
	tid, _ := s.AddTopic(sid, TopicInput{Name: "Algebra"}, time.Now())
	is.NoErr(s.ToggleTopic(sid, tid, time.Now()))

	is.NoErr(s.UpdateNotes(sid, tid, "chapter 3"))
	sub, _ := s.Get(sid)
	is.Equal(sub.Topics[0].Notes, "chapter 3")
	// notes do not touch completion
	is.True(sub.Topics[0].Completed)
	is.True(sub.Topics[0].CompletedAt != nil)

	is.NoErr(s.UpdateNotes(sid, tid, ""))
	sub, _ = s.Get(sid)
	is.Equal(sub.Topics[0].Notes, "")
}

func TestStore_Delete(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	now := time.Now()
	math, _ := s.AddSubject("Math", now)
	bio, _ := s.AddSubject("Biology", now)
	algebra, _ := s.AddTopic(math, TopicInput{Name: "Algebra"}, now)
	_, _ = s.AddTopic(math, TopicInput{Name: "Geometry"}, now)
	_, _ = s.AddTopic(bio, TopicInput{Name: "Cells"}, now)

	t.Run("topic", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(s.DeleteTopic(math, algebra))
		sub, _ := s.Get(math)
		is.Equal(len(sub.Topics), 1)
		is.Equal(sub.Topics[0].Name, "Geometry")
		is.Equal(s.DeleteTopic(math, algebra), ErrNotFound)
	})

	t.Run("subject cascades", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(s.DeleteSubject(math))
		_, ok := s.Get(math)
		is.True(!ok)
		is.Equal(len(s.Subjects()), 1)
		is.Equal(s.Subjects()[0].ID, bio)
		is.Equal(s.DeleteSubject(math), ErrNotFound)
	})
	is.Equal(len(s.Subjects()), 1)
}

func TestStore_JSON(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	sid, _ := s.AddSubject("Math", now)
	tid, _ := s.AddTopic(sid, TopicInput{Name: "Algebra", Hours: "3", Priority: High, Deadline: date.On(2025, time.April, 2)}, now)
	is.NoErr(s.ToggleTopic(sid, tid, now))

	bs, err := json.Marshal(s)
	is.NoErr(err)

	var raw []map[string]interface{}
	is.NoErr(json.Unmarshal(bs, &raw))
	topic := raw[0]["topics"].([]interface{})[0].(map[string]interface{})
	is.Equal(topic["deadline"], "2025-04-02")
	is.Equal(topic["studyTime"], "3")
	is.Equal(topic["priority"], "high")

	loaded := NewStore()
	is.NoErr(json.Unmarshal(bs, loaded))
	is.Equal(len(loaded.Subjects()), 1)
	got, _ := loaded.Get(sid)
	is.Equal(got.Topics[0].Deadline, date.On(2025, time.April, 2))
	is.True(got.Topics[0].CompletedAt.Equal(now))
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"2.9", 2},
		{" 4 ", 4},
		{"10h", 10},
		{"", 0},
		{"abc", 0},
		{"-2", 0},
		{"+5", 5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseHours(tt.in); got != tt.want {
				t.Errorf("ParseHours(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func inPalette(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

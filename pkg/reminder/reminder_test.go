package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
)

var at = time.Date(2025, time.April, 16, 9, 30, 0, 0, time.Local)

func TestBook_Add(t *testing.T) {
	is := is.New(t)
	b := NewBook(nil)

	_, err := b.Add("   ", at)
	is.True(err != nil)
	_, err = b.Add("revise", time.Time{})
	is.True(err != nil)
	is.Equal(len(b.All()), 0)

	r, err := b.Add("revise algebra", at.Add(42*time.Second))
	is.NoErr(err)
	is.Equal(r.Text, "revise algebra")
	is.Equal(r.Time, at)
	is.True(r.ID != "")
	is.Equal(len(b.All()), 1)
}

func TestBook_Delete(t *testing.T) {
	is := is.New(t)
	b := NewBook(nil)
	r, _ := b.Add("revise", at)
	is.NoErr(b.Delete(r.ID))
	is.Equal(len(b.All()), 0)
	is.Equal(b.Delete(r.ID), ErrNotFound)
}

func TestBook_Due(t *testing.T) {
	is := is.New(t)
	b := NewBook(nil)
	r, _ := b.Add("revise", at)
	_, _ = b.Add("later", at.Add(time.Minute))
	_, _ = b.Add("next day", at.AddDate(0, 0, 1))

	is.Equal(len(b.Due(at.Add(-time.Second))), 0)

	due := b.Due(at.Add(10 * time.Second))
	is.Equal(len(due), 1)
	is.Equal(due[0].ID, r.ID)

	// at most once per minute
	is.Equal(len(b.Due(at.Add(50*time.Second))), 0)

	is.Equal(len(b.Due(at.Add(time.Minute))), 1)
}

func TestReminder_JSON(t *testing.T) {
	is := is.New(t)
	r := Reminder{ID: "1", Text: "revise", Time: at}
	bs, err := json.Marshal(r)
	is.NoErr(err)
	is.Equal(string(bs), `{"id":"1","text":"revise","time":"2025-04-16T09:30"}`)

	var got Reminder
	is.NoErr(json.Unmarshal(bs, &got))
	is.Equal(got, r)
}

type recorder struct {
	mu   sync.Mutex
	got  []string
	fail bool
}

func (r *recorder) Notify(rem Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("permission denied")
	}
	r.got = append(r.got, rem.Text)
	return nil
}

func TestService_Check(t *testing.T) {
	is := is.New(t)
	b := NewBook(nil)
	_, _ = b.Add("revise", at)
	rec := &recorder{}
	s := NewService(b, rec, 0, nil)
	s.now = func() time.Time { return at.Add(5 * time.Second) }

	is.Equal(s.Check(), 1)
	is.Equal(s.Check(), 0)
	is.Equal(rec.got, []string{"revise"})

	t.Run("failed delivery is not retried", func(t *testing.T) {
		is := is.New(t)
		b := NewBook(nil)
		_, _ = b.Add("revise", at)
		rec := &recorder{fail: true}
		s := NewService(b, rec, 0, nil)
		s.now = func() time.Time { return at }
		is.Equal(s.Check(), 1)
		is.Equal(s.Check(), 0)
		is.Equal(len(rec.got), 0)
	})
}

func TestService_Run(t *testing.T) {
	is := is.New(t)
	b := NewBook(nil)
	_, _ = b.Add("revise", at)

	fired := make(chan string, 1)
	notifier := NotifierFunc(func(r Reminder) error {
		fired <- r.Text
		return nil
	})
	s := NewService(b, notifier, 5*time.Millisecond, nil)
	s.now = func() time.Time { return at }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case text := <-fired:
		is.Equal(text, "revise")
	case <-time.After(time.Second):
		t.Fatal("reminder did not fire")
	}
	cancel()
	<-done
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-04-20T18:05", time.Date(2025, time.April, 20, 18, 5, 0, 0, time.Local), true},
		{"2025-04-20 18:05", time.Date(2025, time.April, 20, 18, 5, 0, 0, time.Local), true},
		{" 07:45 ", time.Date(2025, time.April, 16, 7, 45, 0, 0, time.Local), true},
		{"tomorrow", time.Time{}, false},
		{"25:00", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			is := is.New(t)
			got, err := ParseTime(tt.in, at)
			is.Equal(err == nil, tt.ok)
			is.True(got.Equal(tt.want))
		})
	}
}

package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Layout is the wire format of a reminder time, the same as an html
// datetime-local input. Reminders are minute-granular wall-clock times.
const Layout = "2006-01-02T15:04"

var ErrNotFound = errors.New("reminder not found")

type Reminder struct {
	ID   string    `json:"id"`
	Text string    `json:"text" validate:"required"`
	Time time.Time `json:"-" validate:"required"`
}

func (r Reminder) MarshalJSON() ([]byte, error) {
	type alias Reminder
	return json.Marshal(struct {
		alias
		Time string `json:"time"`
	}{alias(r), r.Time.Format(Layout)})
}

func (r *Reminder) UnmarshalJSON(bs []byte) error {
	type alias Reminder
	var out struct {
		alias
		Time string `json:"time"`
	}
	if err := json.Unmarshal(bs, &out); err != nil {
		return err
	}
	t, err := time.ParseInLocation(Layout, out.Time, time.Local)
	if err != nil {
		return err
	}
	*r = Reminder(out.alias)
	r.Time = t
	return nil
}

// ParseTime reads a reminder time typed by the user: either a full
// "2006-01-02T15:04" / "2006-01-02 15:04" or just "15:04", meaning today.
func ParseTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{Layout, "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	t, err := time.ParseInLocation("15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("reminder time %q: use 15:04 or %s", s, Layout)
	}
	now = now.Local()
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// minute truncates t to the minute on the local wall clock.
func minute(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}

// matches compares year, month, day, hour and minute.
func (r Reminder) matches(now time.Time) bool {
	return minute(r.Time).Equal(minute(now))
}

// Book is the list of reminders. It is safe for concurrent use, since the
// background check reads it while the user edits it.
type Book struct {
	mu        sync.Mutex
	reminders []Reminder
	fired     map[string]time.Time
	validate  *validator.Validate
}

func NewBook(reminders []Reminder) *Book {
	if reminders == nil {
		reminders = []Reminder{}
	}
	return &Book{
		reminders: reminders,
		fired:     map[string]time.Time{},
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Add appends a reminder. Blank text or a zero time fails validation and
// leaves the book unchanged.
func (b *Book) Add(text string, at time.Time) (Reminder, error) {
	r := Reminder{
		ID:   uuid.NewString(),
		Text: strings.TrimSpace(text),
		Time: at,
	}
	if err := b.validate.Struct(r); err != nil {
		return Reminder{}, err
	}
	r.Text = text
	r.Time = minute(at)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.reminders = append(b.reminders, r)
	return r, nil
}

func (b *Book) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.reminders {
		if r.ID == id {
			b.reminders = append(b.reminders[:i], b.reminders[i+1:]...)
			delete(b.fired, id)
			return nil
		}
	}
	return ErrNotFound
}

// All returns a copy of the reminders.
func (b *Book) All() []Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Reminder, len(b.reminders))
	copy(out, b.reminders)
	return out
}

// Due returns the reminders scheduled for the minute now falls in.
// A reminder is returned at most once for its minute.
func (b *Book) Due(now time.Time) []Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := minute(now)
	due := []Reminder{}
	for _, r := range b.reminders {
		if !r.matches(now) {
			continue
		}
		if last, ok := b.fired[r.ID]; ok && last.Equal(m) {
			continue
		}
		b.fired[r.ID] = m
		due = append(due, r)
	}
	return due
}

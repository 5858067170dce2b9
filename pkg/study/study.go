package study

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/td0m/studyman/pkg/study/date"
)

type ID string

// NewID returns a random identifier that will not collide under rapid creation.
func NewID() ID {
	return ID(uuid.NewString())
}

type Priority string

const (
	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"
)

// Priorities lists every priority, most urgent first.
var Priorities = []Priority{High, Medium, Low}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == High || p == Medium || p == Low
}

// Palette holds the colours a subject can be given at creation.
var Palette = []string{"#667eea", "#f093fb", "#4facfe", "#fa709a", "#30cfd0", "#a8edea"}

func randomColor() string {
	return Palette[rand.Intn(len(Palette))]
}

type Subject struct {
	// constants
	ID        ID        `json:"id"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`

	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

// Completed returns the number of completed topics.
func (s Subject) Completed() int {
	n := 0
	for _, t := range s.Topics {
		if t.Completed {
			n++
		}
	}
	return n
}

type Topic struct {
	// constants
	ID        ID        `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	// behavioural properties
	Name        string     `json:"name"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Notes       string     `json:"notes"`
	StudyTime   string     `json:"studyTime"`
	Priority    Priority   `json:"priority"`
	Deadline    date.Day   `json:"deadline"`
}

// PastDeadline reports whether the topic has a deadline strictly before now.
// Deadlines are dates, so the comparison is against midnight of that date.
func (t Topic) PastDeadline(now time.Time) bool {
	return t.Deadline.Before(now)
}

// Overdue reports whether the deadline has passed and the topic is not done yet.
func (t Topic) Overdue(now time.Time) bool {
	return !t.Completed && t.PastDeadline(now)
}

// Hours is the study time used for aggregation.
func (t Topic) Hours() int {
	return ParseHours(t.StudyTime)
}

// ParseHours reads the leading whole number of s.
// Fractions are truncated; anything that does not start with a number,
// and any negative value, counts as 0.
func ParseHours(s string) int {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return 0
	}
	s = strings.TrimPrefix(s, "+")
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

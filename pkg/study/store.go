package study

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/td0m/studyman/pkg/study/date"
)

// Manager is every operation the client can apply to the collection.
type Manager interface {
	AddSubject(name string, at time.Time) (ID, error)
	DeleteSubject(ID) error
	RenameSubject(ID, string) error

	AddTopic(subject ID, in TopicInput, at time.Time) (ID, error)
	ToggleTopic(subject, topic ID, at time.Time) error
	DeleteTopic(subject, topic ID) error
	UpdateNotes(subject, topic ID, notes string) error

	Subjects() []Subject
	Get(ID) (Subject, bool)
}

var _ Manager = &Store{}

var (
	ErrEmptyName = errors.New("name is empty")
	ErrNotFound  = errors.New("not found")
)

// TopicInput is what the user fills in when creating a topic.
type TopicInput struct {
	Name     string
	Hours    string
	Priority Priority
	Deadline date.Day
}

// Store keeps subjects in insertion order.
// It is not safe for concurrent use; the client mutates it from one loop.
type Store struct {
	subjects []Subject
}

func NewStore() *Store {
	return &Store{subjects: []Subject{}}
}

// FromSubjects wraps an already loaded collection.
func FromSubjects(subjects []Subject) *Store {
	if subjects == nil {
		subjects = []Subject{}
	}
	for i := range subjects {
		if subjects[i].Topics == nil {
			subjects[i].Topics = []Topic{}
		}
	}
	return &Store{subjects: subjects}
}

func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.subjects)
}

func (s *Store) UnmarshalJSON(bs []byte) error {
	var out []Subject
	if err := json.Unmarshal(bs, &out); err != nil {
		return err
	}
	*s = *FromSubjects(out)
	return nil
}

// AddSubject appends a subject. A blank name leaves the store untouched.
func (s *Store) AddSubject(name string, at time.Time) (ID, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	id := NewID()
	s.subjects = append(s.subjects, Subject{
		ID:        id,
		Name:      name,
		Color:     randomColor(),
		CreatedAt: at,
		Topics:    []Topic{},
	})
	return id, nil
}

// DeleteSubject removes the subject together with its topics.
// Asking the user for confirmation is up to the caller.
func (s *Store) DeleteSubject(id ID) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.subjects = append(s.subjects[:i], s.subjects[i+1:]...)
	return nil
}

// RenameSubject replaces the name as given, even when it is blank.
func (s *Store) RenameSubject(id ID, name string) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.subjects[i].Name = name
	return nil
}

func (s *Store) AddTopic(subject ID, in TopicInput, at time.Time) (ID, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", ErrEmptyName
	}
	i := s.index(subject)
	if i < 0 {
		return "", ErrNotFound
	}
	if in.Hours == "" {
		in.Hours = "0"
	}
	if in.Priority == "" {
		in.Priority = Medium
	}
	id := NewID()
	s.subjects[i].Topics = append(s.subjects[i].Topics, Topic{
		ID:        id,
		Name:      in.Name,
		StudyTime: in.Hours,
		Priority:  in.Priority,
		Deadline:  in.Deadline,
		CreatedAt: at,
	})
	return id, nil
}

// ToggleTopic flips completion; completedAt is set only while completed.
func (s *Store) ToggleTopic(subject, topic ID, at time.Time) error {
	t, err := s.topic(subject, topic)
	if err != nil {
		return err
	}
	t.Completed = !t.Completed
	if t.Completed {
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	return nil
}

func (s *Store) DeleteTopic(subject, topic ID) error {
	i := s.index(subject)
	if i < 0 {
		return ErrNotFound
	}
	topics := s.subjects[i].Topics
	for j, t := range topics {
		if t.ID == topic {
			s.subjects[i].Topics = append(topics[:j], topics[j+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// UpdateNotes replaces the notes as given; there is no length limit.
func (s *Store) UpdateNotes(subject, topic ID, notes string) error {
	t, err := s.topic(subject, topic)
	if err != nil {
		return err
	}
	t.Notes = notes
	return nil
}

func (s *Store) Subjects() []Subject {
	return s.subjects
}

func (s *Store) Get(id ID) (Subject, bool) {
	i := s.index(id)
	if i < 0 {
		return Subject{}, false
	}
	return s.subjects[i], true
}

func (s *Store) index(id ID) int {
	for i, subject := range s.subjects {
		if subject.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) topic(subject, topic ID) (*Topic, error) {
	i := s.index(subject)
	if i < 0 {
		return nil, ErrNotFound
	}
	topics := s.subjects[i].Topics
	for j := range topics {
		if topics[j].ID == topic {
			return &topics[j], nil
		}
	}
	return nil, ErrNotFound
}

// Package view derives everything the client displays from the subject
// collection. Nothing here is cached or persisted: every function recomputes
// its result from the subjects it is given and never mutates them.
package view

import (
	"strings"
	"time"

	"github.com/td0m/studyman/pkg/study"
)

// All matches every priority or status.
const All = "all"

type Status string

const (
	StatusAll       Status = All
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// Statuses lists the status filters in the order the client cycles them.
var Statuses = []Status{StatusAll, StatusPending, StatusCompleted, StatusOverdue}

// Priorities lists the priority filters in the order the client cycles them.
var Priorities = []string{All, string(study.High), string(study.Medium), string(study.Low)}

type Filter struct {
	Search   string `json:"search"`
	Priority string `json:"priority"`
	Status   Status `json:"status"`
}

// DefaultFilter matches every topic.
func DefaultFilter() Filter {
	return Filter{Priority: All, Status: StatusAll}
}

// Match reports whether a single topic passes every criterion.
func (f Filter) Match(t study.Topic, now time.Time) bool {
	if !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Priority != "" && f.Priority != All && f.Priority != string(t.Priority) {
		return false
	}
	switch f.Status {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	case StatusOverdue:
		return t.Overdue(now)
	}
	return true
}

// Apply returns copies of the subjects holding only the matching topics.
// A subject with no matching topic is dropped, unless nothing is being
// searched for: then every subject is kept, even an empty one.
func Apply(subjects []study.Subject, f Filter, now time.Time) []study.Subject {
	out := []study.Subject{}
	for _, s := range subjects {
		topics := []study.Topic{}
		for _, t := range s.Topics {
			if f.Match(t, now) {
				topics = append(topics, t)
			}
		}
		if len(topics) == 0 && f.Search != "" {
			continue
		}
		s.Topics = topics
		out = append(out, s)
	}
	return out
}

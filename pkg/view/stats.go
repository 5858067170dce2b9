package view

import (
	"math"
	"time"

	"github.com/td0m/studyman/pkg/study"
)

// Stats are computed over every subject, ignoring any filter.
type Stats struct {
	Total          int
	Completed      int
	CompletionRate int
	Hours          int
	Overdue        int
}

func Summarize(subjects []study.Subject, now time.Time) Stats {
	var s Stats
	for _, subject := range subjects {
		for _, t := range subject.Topics {
			s.Total++
			if t.Completed {
				s.Completed++
			}
			if t.Overdue(now) {
				s.Overdue++
			}
			s.Hours += t.Hours()
		}
	}
	s.CompletionRate = percent(s.Completed, s.Total)
	return s
}

// Progress is the rounded share of completed topics, 0 for an empty subject.
func Progress(s study.Subject) int {
	return percent(s.Completed(), len(s.Topics))
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

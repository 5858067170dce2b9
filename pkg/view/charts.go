package view

import (
	"sort"

	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/study/date"
)

type SubjectBar struct {
	Name      string
	Topics    int
	Completed int
}

// BySubject counts topics and completed topics per subject, in subject order.
func BySubject(subjects []study.Subject) []SubjectBar {
	out := make([]SubjectBar, len(subjects))
	for i, s := range subjects {
		out[i] = SubjectBar{Name: s.Name, Topics: len(s.Topics), Completed: s.Completed()}
	}
	return out
}

type PrioritySlice struct {
	Priority study.Priority
	Count    int
}

// ByPriority always returns high, medium and low in that order, even when empty.
func ByPriority(subjects []study.Subject) []PrioritySlice {
	counts := map[study.Priority]int{}
	for _, s := range subjects {
		for _, t := range s.Topics {
			counts[t.Priority]++
		}
	}
	out := make([]PrioritySlice, len(study.Priorities))
	for i, p := range study.Priorities {
		out[i] = PrioritySlice{Priority: p, Count: counts[p]}
	}
	return out
}

type DayCount struct {
	Day   date.Day
	Count int
}

// CompletedOverTime counts completions per calendar day, oldest first.
func CompletedOverTime(subjects []study.Subject) []DayCount {
	counts := map[date.Day]int{}
	for _, s := range subjects {
		for _, t := range s.Topics {
			if !t.Completed || t.CompletedAt == nil {
				continue
			}
			counts[date.Of(t.CompletedAt.Local())]++
		}
	}
	out := make([]DayCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, DayCount{Day: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Time().Before(out[j].Day.Time())
	})
	return out
}

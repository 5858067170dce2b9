package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/study/date"
)

// HistoryRow is one completed topic in the study log.
type HistoryRow struct {
	ID      study.ID
	Day     date.Day
	Subject string
	Hours   string
	Topic   string
	Notes   string
}

// History lists completed topics, subject by subject in collection order.
func History(subjects []study.Subject) []HistoryRow {
	rows := []HistoryRow{}
	for _, s := range subjects {
		for _, t := range s.Topics {
			if !t.Completed {
				continue
			}
			var day date.Day
			if t.CompletedAt != nil {
				day = date.Of(t.CompletedAt.Local())
			}
			rows = append(rows, HistoryRow{
				ID:      t.ID,
				Day:     day,
				Subject: s.Name,
				Hours:   t.StudyTime,
				Topic:   t.Name,
				Notes:   t.Notes,
			})
		}
	}
	return rows
}

// HistoryHours sums the logged hours, keeping fractions.
// Values that are not numbers are skipped.
func HistoryHours(rows []HistoryRow) float64 {
	total := 0.0
	for _, r := range rows {
		total += leadingFloat(r.Hours)
	}
	return total
}

// leadingFloat parses the longest numeric prefix of s, 0 if there is none.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			end = i + 1
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '-' || c == '+') && i == 0:
		default:
			return parsed(s[:end])
		}
	}
	return parsed(s[:end])
}

func parsed(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// SortHistory orders rows by completion day, most recent first.
func SortHistory(rows []HistoryRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[j].Day.Time().Before(rows[i].Day.Time())
	})
}

package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/view"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

const (
	colDate      = "Date"
	colSubject   = "Subject"
	colTopic     = "Topic"
	colHours     = "Hours"
	colNotes     = "Notes"
	colTopics    = "Topics"
	colCompleted = "Completed"
	colProgress  = "Progress"
	colOverdue   = "Overdue"
)

// HistoryDataset lists completed topics, most recent first.
func HistoryDataset(subjects []study.Subject) Dataset {
	rows := view.History(subjects)
	view.SortHistory(rows)
	out := Dataset{Headers: []string{colDate, colSubject, colTopic, colHours, colNotes}}
	for _, r := range rows {
		out.Rows = append(out.Rows, map[string]string{
			colDate:    r.Day.String(),
			colSubject: Clean(r.Subject),
			colTopic:   Clean(r.Topic),
			colHours:   r.Hours,
			colNotes:   Clean(r.Notes),
		})
	}
	return out
}

// SubjectsDataset has one progress row per subject.
func SubjectsDataset(subjects []study.Subject, now time.Time) Dataset {
	out := Dataset{Headers: []string{colSubject, colTopics, colCompleted, colProgress, colHours, colOverdue}}
	for _, s := range subjects {
		st := view.Summarize([]study.Subject{s}, now)
		out.Rows = append(out.Rows, map[string]string{
			colSubject:   Clean(s.Name),
			colTopics:    strconv.Itoa(st.Total),
			colCompleted: strconv.Itoa(st.Completed),
			colProgress:  fmt.Sprintf("%d%%", view.Progress(s)),
			colHours:     strconv.Itoa(st.Hours),
			colOverdue:   strconv.Itoa(st.Overdue),
		})
	}
	return out
}

// SummaryLine renders the aggregate counters as a single sentence.
func SummaryLine(st view.Stats) string {
	return fmt.Sprintf("%d topics, %d completed (%d%%), %d hours planned, %d overdue",
		st.Total, st.Completed, st.CompletionRate, st.Hours, st.Overdue)
}

package date

import (
	"encoding/json"
	"time"
)

// Layout is the wire format of a Day, the same one an html date input uses.
const Layout = "2006-01-02"

// Day is a calendar date without a time of day.
// The zero value means "no date".
type Day struct {
	t time.Time
}

// On returns the given calendar day in the local timezone.
func On(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// Of returns the calendar day t falls on.
func Of(t time.Time) Day {
	return Day{t: StartOfDay(t)}
}

// StartOfDay returns local midnight of the day t falls on.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// Time returns midnight of the day.
func (d Day) Time() time.Time {
	return d.t
}

// Before reports whether midnight of d is strictly earlier than t.
func (d Day) Before(t time.Time) bool {
	return !d.IsZero() && d.t.Before(t)
}

// AddDays returns the day n days after d.
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Day{}
		return nil
	}
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return err
	}
	*d = Day{t: t}
	return nil
}

package date

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrParsing = errors.New("error parsing date")

// Parse reads a human-friendly date relative to now.
// An empty string parses to the zero Day, which clears a deadline.
func Parse(s string, now time.Time) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	today := Of(now)
	switch s {
	case "":
		return Day{}, nil
	case "today", "tod", "now":
		return today, nil
	case "tomorrow", "tom":
		return today.AddDays(1), nil
	case "yesterday", "yday":
		return today.AddDays(-1), nil
	}
	if wkd, err := parseWeekday(s); err == nil {
		return nextWeekday(today, wkd), nil
	}
	if offset, err := parseDayOffset(s); err == nil {
		return today.AddDays(offset), nil
	}
	if d, err := parseAbsolute(s); err == nil {
		return d, nil
	}
	if n, err := parseDayOfMonth(s); err == nil {
		return nextDayOfMonth(today, n), nil
	}
	return Day{}, ErrParsing
}

func parseAbsolute(s string) (Day, error) {
	for _, layout := range absoluteFormats {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return Of(t), nil
		}
	}
	return Day{}, errors.New("format not found")
}

var absoluteFormats = []string{
	Layout,
	"_2/01/06",
	"_2/01/2006",
	"_2 Jan 2006",
	"_2 January 2006",
	"Jan _2 2006",
	"January _2 2006",
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

func parseDayOffset(s string) (int, error) {
	s = strings.TrimPrefix(s, "in")
	s = strings.TrimSpace(s)
	var (
		n        int
		negative bool
	)
	if len(s) >= 1 {
		if s[0] == '-' {
			negative = true
			s = s[1:]
		} else if s[0] == '+' {
			s = s[1:]
		}
	}
	// parse quantity
	{
		s1, n1, err := parseInt(s)
		if err != nil {
			return 0, err
		}
		n = n1
		s = strings.TrimSpace(s1)
	}

	multiplier := 1
	if len(s) > 0 {
		multiplier = 0
		endOfWord := len(s)
		for i, c := range s {
			if c == ' ' {
				endOfWord = i
				break
			}
		}
		for _, m := range multipliers {
			end := min(len(m.key), endOfWord)
			if m.key[:end] == s[:end] {
				multiplier = m.value
				s = s[endOfWord:]
				break
			}
		}
		if multiplier == 0 {
			return 0, errors.New("invalid suffix, expected 'days', 'months', 'weeks', or 'years'")
		}
		switch strings.TrimSpace(s) {
		case "ago":
			negative = true
		case "":
		default:
			return 0, errors.New("unexpected trailing text")
		}
	}

	if negative {
		n *= -1
	}
	return n * multiplier, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for i := time.Sunday; i <= time.Saturday; i++ {
		name := strings.ToLower(i.String())
		if s == name || s == name[:3] {
			return i, nil
		}
	}
	return 0, errors.New("invalid weekday")
}

// nextWeekday is always in the future, never today
func nextWeekday(today Day, w time.Weekday) Day {
	days := int(w - today.t.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDays(days)
}

var ordinal = regexp.MustCompile(`^([0-9]+)(st|nd|rd|th)$`)

func parseDayOfMonth(s string) (int, error) {
	m := ordinal.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.New("not an ordinal")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, err
	}
	lastDigit := n % 10
	forceTh := (n%100 - lastDigit) == 10

	var valid bool
	switch suffix := m[2]; {
	case n < 1 || n > 31:
	case lastDigit == 1 && !forceTh:
		valid = suffix == "st"
	case lastDigit == 2 && !forceTh:
		valid = suffix == "nd"
	case lastDigit == 3 && !forceTh:
		valid = suffix == "rd"
	default:
		valid = suffix == "th"
	}
	if !valid {
		return 0, errors.New("invalid postfix")
	}
	return n, nil
}

// nextDayOfMonth returns the next nth of a month, today included.
func nextDayOfMonth(today Day, nth int) Day {
	days := nth - today.t.Day()
	months := 0
	if days < 0 {
		months = 1
	}
	return Day{t: today.t.AddDate(0, months, days)}
}

// parseInt reads the longest leading integer of s.
// It returns the rest of the string and fails when s has no leading digit.
func parseInt(s string) (string, int, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return s, 0, errors.New("failed to parse")
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return s, 0, err
	}
	return s[i:], n, nil
}

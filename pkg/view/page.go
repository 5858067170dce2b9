package view

import "github.com/td0m/studyman/pkg/study"

// Page is one slice of a paginated subject list. Pages are 1-based.
type Page struct {
	Subjects []study.Subject
	Number   int
	Total    int
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.Total
}

// Paginate clamps page into the valid range; there is always at least one page.
// A non-positive perPage puts everything on a single page.
func Paginate(subjects []study.Subject, page, perPage int) Page {
	if perPage <= 0 {
		perPage = len(subjects)
		if perPage == 0 {
			perPage = 1
		}
	}
	total := (len(subjects) + perPage - 1) / perPage
	if total < 1 {
		total = 1
	}
	page = clamp(page, 1, total)
	start := min((page-1)*perPage, len(subjects))
	end := min(start+perPage, len(subjects))
	return Page{
		Subjects: subjects[start:end],
		Number:   page,
		Total:    total,
	}
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}

package utils

import "strconv"

// Paginator splits a result set of Count items into pages of PerPage items.
// An empty result set still has one (empty) page.
type Paginator struct {
	Count   int64
	PerPage int
}

type Page struct {
	Number   int
	NumPages int
	Offset   int
	Limit    int
}

func NewPaginator(count int64, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator{Count: count, PerPage: perPage}
}

func (p *Paginator) NumPages() int {
	if p.Count <= 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Page resolves a raw page parameter. Anything that is not an integer
// yields the first page; an integer outside [1, NumPages] yields the last.
func (p *Paginator) Page(raw string) Page {
	last := p.NumPages()
	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > last:
		number = last
	}
	return Page{
		Number:   number,
		NumPages: last,
		Offset:   (number - 1) * p.PerPage,
		Limit:    p.PerPage,
	}
}

func (p Page) HasPrevious() bool { return p.Number > 1 }

func (p Page) HasNext() bool { return p.Number < p.NumPages }

func (p Page) PreviousNumber() int { return p.Number - 1 }

func (p Page) NextNumber() int { return p.Number + 1 }

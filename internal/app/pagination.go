package app

import (
	"strconv"
	"strings"
)

// Page sizes per listing.
const (
	PropertiesPerPage   = 6
	BlogsPerPage        = 6
	TestimonialsPerPage = 6
	CategoriesPerPage   = 10
	BookingsPerPage     = 10
	ContactsPerPage     = 10
	GalleryPerPage      = 8
)

type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"number"`
	NumPages   int  `json:"num_pages"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"has_previous"`
	HasNext    bool `json:"has_next"`
	PrevNumber int  `json:"previous_page_number,omitempty"`
	NextNumber int  `json:"next_page_number,omitempty"`
}

// Paginate slices rows into the requested page. A missing or malformed page
// yields the first page, a page past the end yields the last one, so every
// request gets a real page back. An empty list still has one (empty) page.
func Paginate[T any](rows []T, page string, size int) Page[T] {
	if size <= 0 {
		size = len(rows)
		if size == 0 {
			size = 1
		}
	}
	pages := (len(rows) + size - 1) / size
	if pages == 0 {
		pages = 1
	}

	n, err := strconv.Atoi(strings.TrimSpace(page))
	switch {
	case err != nil || n < 1:
		n = 1
	case n > pages:
		n = pages
	}

	lo := (n - 1) * size
	hi := min(lo+size, len(rows))
	items := make([]T, 0, hi-lo)
	items = append(items, rows[lo:hi]...)

	p := Page[T]{
		Items:    items,
		Number:   n,
		NumPages: pages,
		Total:    len(rows),
		HasPrev:  n > 1,
		HasNext:  n < pages,
	}
	if p.HasPrev {
		p.PrevNumber = n - 1
	}
	if p.HasNext {
		p.NextNumber = n + 1
	}
	return p
}

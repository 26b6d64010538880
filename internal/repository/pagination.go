package repository

import "github.com/maxviazov/job-portal/internal/pagination"

// Page represents a simple limit/offset window for listing operations.
// I keep it intentionally small; filtering travels separately as listfilter.Criteria.
type Page struct {
	Limit  int
	Offset int
	// Index is the 1-based page the window was built from; zero means derive it from Offset.
	Index int
}

// PageFrom converts a validated pagination result into a window.
func PageFrom(r pagination.Result) Page {
	return Page{Limit: r.Limit, Offset: r.Offset(), Index: r.Page}
}

// Number returns the 1-based page index of the window.
func (p Page) Number() int {
	if p.Index > 0 {
		return p.Index
	}
	if p.Limit <= 0 || p.Offset <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Window slices items according to p. It is used by in-memory stores that hold the full set.
func Window[T any](items []T, p Page) []T {
	if p.Offset >= len(items) || p.Offset < 0 {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}

package catalogue

import "fmt"

// DefaultPageSize is the number of test cases shown per gallery page.
const DefaultPageSize = 8

// Page is one slice of a filtered subset.
type Page[T any] struct {
	Visible   []T `json:"visible"`
	PageCount int `json:"page_count"`
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
}

// Paginate slices subset into the requested 1-based page. Pages outside
// [1, PageCount] yield an empty Visible; a non-positive pageSize yields no
// pages at all.
func Paginate[T any](subset []T, page, pageSize int) Page[T] {
	p := Page[T]{Visible: []T{}, Page: page, PageSize: pageSize, Total: len(subset)}
	if pageSize <= 0 || len(subset) == 0 {
		return p
	}
	p.PageCount = (len(subset) + pageSize - 1) / pageSize
	if page < 1 || page > p.PageCount {
		return p
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(subset))
	p.Visible = subset[start:end:end]
	return p
}

// ClampPage pulls page into [1, max(pageCount, 1)].
func ClampPage(page, pageCount int) int {
	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}
	return page
}

// ShowingRange renders the gallery's range label, e.g. "Showing 9-16 of 20
// tests". It is empty when nothing is visible.
func ShowingRange[T any](p Page[T]) string {
	if len(p.Visible) == 0 {
		return ""
	}
	first := (p.Page-1)*p.PageSize + 1
	last := first + len(p.Visible) - 1
	noun := "tests"
	if p.Total == 1 {
		noun = "test"
	}
	return fmt.Sprintf("Showing %d-%d of %d %s", first, last, p.Total, noun)
}

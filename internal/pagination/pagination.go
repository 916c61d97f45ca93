// Package pagination splits ordered collections into fixed-size pages.
package pagination

import "strconv"

// Page is one window over an ordered collection.
type Page[T any] struct {
	Items   []T
	Number  int
	HasMore bool
	Total   int
}

// Paginate returns the requested page of items. Pages are 1-based.
// A page before the first clamps to 1, a page past the last clamps to the
// last page, so the remainder page always holds total mod pageSize items
// (or a full page when total divides evenly).
func Paginate[T any](items []T, pageSize, requestedPage int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	numPages := (total + pageSize - 1) / pageSize
	if numPages == 0 {
		numPages = 1
	}

	page := requestedPage
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:   items[start:end],
		Number:  page,
		HasMore: page < numPages,
		Total:   total,
	}
}

// ParsePage converts a raw query value into a page number.
// Empty, non-numeric and non-positive values default to page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

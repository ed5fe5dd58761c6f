package store

import "math"

// Order sorts by one column.
type Order struct {
	Column     string
	Descending bool
}

// PageRequest selects a zero-based page. A Size of zero means unpaged.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// Unpaged requests every row, sorted by identity.
func Unpaged() PageRequest {
	return PageRequest{}
}

// Paged reports whether the request limits the number of rows.
func (r PageRequest) Paged() bool {
	return r.Size > 0
}

// Offset is the number of rows skipped before the page. It saturates at
// math.MaxInt.
func (r PageRequest) Offset() int {
	if !r.Paged() || r.Page < 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

// Page is one page of results together with the total number of matches.
type Page[T any] struct {
	Content []T
	Total   int64
	Number  int
	Size    int
}

// NewPage builds a page for the given request.
func NewPage[T any](content []T, total int64, req PageRequest) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Total: total, Number: req.Page, Size: req.Size}
}

// TotalPages returns the number of pages of the same size.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		if p.Total > 0 {
			return 1
		}
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage converts the content of a page.
func MapPage[T, U any](p Page[T], f func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = f(v)
	}
	return Page[U]{Content: out, Total: p.Total, Number: p.Number, Size: p.Size}
}

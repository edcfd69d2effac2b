package entity

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination is a 1-based page request.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}

	return p
}

// Offset is the number of rows to skip.
func (p Pagination) Offset() int {
	n := p.Normalize()

	return (n.Page - 1) * n.Limit
}

// Page is one page of a listing together with the total row count.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPage builds a Page from a normalized request.
func NewPage[T any](items []T, total int64, p Pagination) *Page[T] {
	n := p.Normalize()
	if items == nil {
		items = []T{}
	}

	return &Page[T]{Items: items, Total: total, Page: n.Page, Limit: n.Limit}
}

package outcome

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageParams are the normalized paging inputs of a list request.
type PageParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Search   string `json:"search,omitempty"`
}

// NewPageParams clamps page to >= 1 and pageSize to [1, MaxPageSize],
// using DefaultPageSize for non-positive sizes.
func NewPageParams(page, pageSize int, search string) PageParams {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return PageParams{Page: page, PageSize: pageSize, Search: search}
}

// Offset is the number of items to skip.
func (p PageParams) Offset() int { return (p.Page - 1) * p.PageSize }

// Page is one page of a list result.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// NewPage builds a page. A nil items slice is replaced by an empty one so
// the JSON body always carries an array.
func NewPage[T any](items []T, total int, p PageParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalCount: total, Page: p.Page, PageSize: p.PageSize}
}

// TotalPages is the number of pages needed for TotalCount items.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages() }

// HasPrevious reports whether an earlier page exists.
func (p Page[T]) HasPrevious() bool { return p.Page > 1 }

package pagination

// Page represents one page of an offset-paginated result list.
// Generic type T allows reuse across different entity types.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasMore bool `json:"has_more"`
}

// NewPage creates a page envelope. The total is unknown to callers that
// stream from upstream sources, so a full page is assumed to have more
// behind it.
func NewPage[T any](items []T, page, size int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:   items,
		Page:    page,
		Size:    size,
		HasMore: len(items) == size,
	}
}

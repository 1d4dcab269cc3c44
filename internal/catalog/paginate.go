package catalog

// DefaultPageSize is the storefront grid size.
const DefaultPageSize = 12

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalPages int `json:"totalPages"`
	Current    int `json:"current"`
}

// Paginate slices items into pages of pageSize and returns the requested
// page. TotalPages is 0 for an empty set, otherwise ceil(len/pageSize).
// A page beyond the end is clamped to the last page, or to 1 when the set
// is empty, so a view that shrinks under the shopper never strands them on
// a page that no longer exists.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize

	current := page
	if totalPages == 0 {
		current = 1
	} else if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		TotalPages: totalPages,
		Current:    current,
	}
}

package model

// CartItem is a product snapshot plus a quantity. Name and price are frozen
// at the moment the product is added; later catalogue edits do not change
// existing cart lines.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// FilterState holds the shopper's current catalogue view selection.
// Changing category or search term resets Page to 1.
type FilterState struct {
	Category   string `json:"category"`
	SearchTerm string `json:"searchTerm"`
	Page       int    `json:"page"`
}

// DefaultFilterState returns the view state used at startup.
func DefaultFilterState() FilterState {
	return FilterState{Category: CategoryAll, Page: 1}
}

package catalog

import (
	"strings"

	"github.com/masknetdesign/mercado-online/internal/model"
)

// Filter derives the visible subset of products for the given view state.
// The category filter is applied first, then the normalized search narrows
// the category-filtered set. The result preserves the relative order of
// products and shares no backing array with the input.
func Filter(products []model.Product, state model.FilterState) []model.Product {
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if state.Category != model.CategoryAll && state.Category != "" && p.Category != state.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	term := strings.TrimSpace(Normalize(state.SearchTerm))
	if term == "" {
		// A term that normalizes away (all punctuation, say) means no search.
		return filtered
	}

	matched := make([]model.Product, 0, len(filtered))
	for _, p := range filtered {
		if strings.Contains(Normalize(p.Name), term) || strings.Contains(Normalize(p.Description), term) {
			matched = append(matched, p)
		}
	}
	return matched
}

package catalog

import (
	"testing"

	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Banana Prata", Description: "Banana prata fresca e doce", Price: decimal.RequireFromString("4.99"), Category: model.CategoryFrutas},
		{ID: 2, Name: "Coca-Cola 2L", Description: "Refrigerante Coca-Cola 2 litros", Price: decimal.RequireFromString("8.99"), Category: model.CategoryBebidas},
		{ID: 3, Name: "Detergente Ypê", Description: "Detergente líquido neutro 500ml", Price: decimal.RequireFromString("2.49"), Category: model.CategoryLimpeza},
		{ID: 4, Name: "Pão Francês", Description: "Pão francês fresquinho (kg)", Price: decimal.RequireFromString("12.90"), Category: model.CategoryPadaria},
		{ID: 5, Name: "Picanha", Description: "Picanha bovina premium (kg)", Price: decimal.RequireFromString("89.90"), Category: model.CategoryCarnes},
		{ID: 6, Name: "Maçã Gala", Description: "Maçã gala vermelha (kg)", Price: decimal.RequireFromString("7.99"), Category: model.CategoryFrutas},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Lowercases plain text",
			input:    "Banana Prata",
			expected: "banana prata",
		},
		{
			name:     "Strips diacritics",
			input:    "Maçã",
			expected: "maca",
		},
		{
			name:     "Removes punctuation",
			input:    "Coca-Cola 2L!",
			expected: "cocacola 2l",
		},
		{
			name:     "All punctuation normalizes to empty",
			input:    "!!!---???",
			expected: "",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_AccentInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("maca"), Normalize("Maçã"))
	assert.Equal(t, Normalize("pao frances"), Normalize("Pão Francês"))
}

func TestFilter(t *testing.T) {
	products := demoProducts()

	tests := []struct {
		name        string
		state       model.FilterState
		expectedIDs []int64
	}{
		{
			name:        "No filters returns everything",
			state:       model.FilterState{Category: model.CategoryAll},
			expectedIDs: []int64{1, 2, 3, 4, 5, 6},
		},
		{
			name:        "Empty category behaves like all",
			state:       model.FilterState{},
			expectedIDs: []int64{1, 2, 3, 4, 5, 6},
		},
		{
			name:        "Category filter",
			state:       model.FilterState{Category: model.CategoryFrutas},
			expectedIDs: []int64{1, 6},
		},
		{
			name:        "Search matches normalized name",
			state:       model.FilterState{Category: model.CategoryAll, SearchTerm: "maca"},
			expectedIDs: []int64{6},
		},
		{
			name:        "Search matches description",
			state:       model.FilterState{Category: model.CategoryAll, SearchTerm: "litros"},
			expectedIDs: []int64{2},
		},
		{
			name:        "Category then search narrows",
			state:       model.FilterState{Category: model.CategoryFrutas, SearchTerm: "gal"},
			expectedIDs: []int64{6},
		},
		{
			name:        "Search outside selected category matches nothing",
			state:       model.FilterState{Category: model.CategoryBebidas, SearchTerm: "banana"},
			expectedIDs: []int64{},
		},
		{
			name:        "Term that normalizes to empty matches everything in category",
			state:       model.FilterState{Category: model.CategoryFrutas, SearchTerm: "!!!"},
			expectedIDs: []int64{1, 6},
		},
		{
			name:        "Padded term matches after trimming",
			state:       model.FilterState{Category: model.CategoryAll, SearchTerm: "  banana  "},
			expectedIDs: []int64{1},
		},
		{
			name:        "Unknown category matches nothing",
			state:       model.FilterState{Category: "eletronicos"},
			expectedIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Filter(products, tt.state)

			ids := make([]int64, 0, len(result))
			for _, p := range result {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	result := Filter(nil, model.FilterState{Category: model.CategoryAll, SearchTerm: "banana"})
	assert.Empty(t, result)
}

func TestFilter_PreservesOrderAndIsIdempotent(t *testing.T) {
	products := demoProducts()
	state := model.FilterState{Category: model.CategoryAll, SearchTerm: "kg"}

	once := Filter(products, state)
	require.NotEmpty(t, once)

	// Relative order of the input must survive.
	var lastID int64
	for _, p := range once {
		assert.Greater(t, p.ID, lastID)
		lastID = p.ID
	}

	// Re-filtering the output with the same state changes nothing.
	twice := Filter(once, state)
	assert.Equal(t, once, twice)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	products := demoProducts()
	original := demoProducts()

	Filter(products, model.FilterState{Category: model.CategoryFrutas, SearchTerm: "gala"})

	assert.Equal(t, original, products)
}

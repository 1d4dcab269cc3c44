package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the merchant's catalogue.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"nome"`
	Description string          `json:"description,omitempty" db:"descricao"`
	Price       decimal.Decimal `json:"price" db:"preco"`
	Category    string          `json:"category" db:"categoria"`
	ImageURL    string          `json:"imageUrl,omitempty" db:"url_imagem"`
	CreatedAt   time.Time       `json:"createdAt" db:"criado_em"`
}

// ProductInput carries the writable fields of a product for create/update
// calls against the backend gateway.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Product categories as stored by the merchant.
const (
	CategoryFrutas  = "frutas"
	CategoryBebidas = "bebidas"
	CategoryLimpeza = "limpeza"
	CategoryPadaria = "padaria"
	CategoryCarnes  = "carnes"
	CategoryOutros  = "outros"

	// CategoryAll is the filter wildcard, never stored on a product.
	CategoryAll = "all"
)

// Categories lists every storable category in display order.
func Categories() []string {
	return []string{
		CategoryFrutas,
		CategoryBebidas,
		CategoryLimpeza,
		CategoryPadaria,
		CategoryCarnes,
		CategoryOutros,
	}
}

// ValidCategory reports whether c is a storable product category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryFrutas, CategoryBebidas, CategoryLimpeza, CategoryPadaria, CategoryCarnes, CategoryOutros:
		return true
	}
	return false
}

// CategoryName returns the human-readable name for a category value.
func CategoryName(c string) string {
	names := map[string]string{
		CategoryFrutas:  "Frutas",
		CategoryBebidas: "Bebidas",
		CategoryLimpeza: "Limpeza",
		CategoryPadaria: "Padaria",
		CategoryCarnes:  "Carnes",
		CategoryOutros:  "Outros",
	}
	if name, ok := names[c]; ok {
		return name
	}
	return c
}

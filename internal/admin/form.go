package admin

import (
	"strings"

	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/shopspring/decimal"
)

// decimalFromForm parses the price field. The form accepts both "12.90" and
// the Brazilian "12,90"; anything non-positive is rejected.
func decimalFromForm(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, model.NewValidationError("Preço do produto é obrigatório")
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Zero, model.NewValidationError("Preço inválido")
	}
	if !price.IsPositive() {
		return decimal.Zero, model.NewValidationError("Preço deve ser maior que zero")
	}
	return price, nil
}

package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/shopspring/decimal"
)

// separator is the visual rule between message sections.
var separator = strings.Repeat("─", 30)

// timestampLayout matches the pt-BR date/time the merchant expects on orders.
const timestampLayout = "02/01/2006 15:04:05"

// Compose turns the cart and the checkout form into the order message sent
// to the merchant. The message is deterministic for a given cart, customer
// and timestamp; the caller hands it verbatim to the deep-link builder,
// which owns URL encoding.
//
// Composition fails with a validation error when the cart is empty or any
// required customer field is blank; whitespace-only counts as blank.
func Compose(items []model.CartItem, customer model.Customer, at time.Time) (string, error) {
	if len(items) == 0 {
		return "", model.ErrEmptyCart
	}
	if err := validateCustomer(customer); err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString("🛒 *NOVO PEDIDO - MERCADO ONLINE*\n\n")
	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", customer.Name)
	fmt.Fprintf(&b, "📱 *Telefone:* %s\n", customer.Phone)
	fmt.Fprintf(&b, "📍 *Endereço:* %s\n", customer.Address)
	fmt.Fprintf(&b, "💳 *Pagamento:* %s\n\n", customer.PaymentMethod)

	b.WriteString("📦 *ITENS DO PEDIDO:*\n")
	b.WriteString(separator + "\n")

	total := decimal.Zero
	for _, item := range items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)

		fmt.Fprintf(&b, "• %s\n", item.Name)
		fmt.Fprintf(&b, "  Qtd: %d x %s = %s\n\n", item.Quantity, FormatBRL(item.Price), FormatBRL(lineTotal))
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL: %s*\n\n", FormatBRL(total))

	if notes := strings.TrimSpace(customer.Notes); notes != "" {
		fmt.Fprintf(&b, "📝 *Observações:* %s\n\n", notes)
	}

	fmt.Fprintf(&b, "⏰ Pedido realizado em: %s\n", at.Format(timestampLayout))
	b.WriteString("\n_Pedido gerado automaticamente pelo site_")

	return b.String(), nil
}

func validateCustomer(c model.Customer) error {
	required := []struct {
		value string
		field string
	}{
		{c.Name, "nome"},
		{c.Phone, "telefone"},
		{c.Address, "endereço"},
		{c.PaymentMethod, "forma de pagamento"},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return model.NewValidationError(fmt.Sprintf("O campo %s é obrigatório", f.field))
		}
	}
	return nil
}

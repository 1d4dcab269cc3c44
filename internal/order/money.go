package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a value as Brazilian currency with exactly two fraction
// digits: R$ 1.234,56. Every price the shopper sees goes through here.
func FormatBRL(value decimal.Decimal) string {
	fixed := value.Round(2).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

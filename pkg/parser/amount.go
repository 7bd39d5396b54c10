package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountCleaner = strings.NewReplacer(",", "", `"`, "")

// ParseAmount normalizes a monetary string into a decimal value. Accepted
// notations: plain signed decimals ("100.98", "-100.98"), trailing-minus
// ("100.98-"), thousands separators ("1,234.56"), and combinations. Empty or
// unparsable input yields an invalid NullDecimal, never an error.
func ParseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}

	negative := strings.HasSuffix(s, "-")
	if negative {
		s = strings.TrimSpace(strings.TrimSuffix(s, "-"))
	}
	s = amountCleaner.Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	if negative {
		d = d.Abs().Neg()
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user supplied monetary amount such as "1.50".
// A comma decimal separator is accepted as well.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, NewDomainError(ErrInvalidAmount, "not a decimal number", s)
	}
	return d, nil
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

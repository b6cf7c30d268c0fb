package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a non-negative money amount typed into a form field.
// Blank, malformed and negative input all coerce to zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders an amount with two decimals and an optional currency code.
func FormatAmount(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	if currency == "" {
		return s
	}
	return currency + " " + s
}

package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ordercraft/ordercraft/internal/domain"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"   ", "0"},
		{"50", "50"},
		{" 12.75 ", "12.75"},
		{"0.10", "0.1"},
		{"abc", "0"},
		{"12,50", "0"},
		{"-3", "0"},
		{"1e2", "100"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ParseAmount(tc.in).String(), "input %q", tc.in)
	}
}

func TestFormatAmount(t *testing.T) {
	d := decimal.RequireFromString("12.5")
	assert.Equal(t, "12.50", domain.FormatAmount(d, ""))
	assert.Equal(t, "USD 12.50", domain.FormatAmount(d, "USD"))
	assert.Equal(t, "-3.00", domain.FormatAmount(decimal.NewFromInt(-3), ""))
}

func TestCartLine_LineTotal(t *testing.T) {
	l := domain.CartLine{UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3}
	assert.Equal(t, "59.97", l.LineTotal().String())
}

package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonAmountChars = regexp.MustCompile(`[^\d.\-]`)

// RoundMoney rounds a monetary value to two decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundFloat rounds a float64 amount to two decimal places.
func RoundFloat(f float64) float64 {
	r, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return r
}

// FormatMoney renders an amount with a currency symbol and two decimals.
func FormatMoney(symbol string, d decimal.Decimal) string {
	return fmt.Sprintf("%s%s", symbol, d.StringFixed(2))
}

// ParseAmount parses a statement-style amount such as "$1,234.50" or "₹ 99".
// Currency symbols, spaces and thousands separators are ignored.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := nonAmountChars.ReplaceAllString(strings.ReplaceAll(raw, ",", ""), "")
	cleaned = strings.TrimSuffix(cleaned, ".")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s'", raw)
	}
	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", raw, err)
	}
	return dec, nil
}

// Package currencyutils provides amount parsing for bank statement imports.
// Bank exports disagree on thousands and decimal separators, so everything is
// funneled through a single normalization routine before any arithmetic.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonAmountChars = regexp.MustCompile(`[^0-9,.\-]`)
	decimalComma   = regexp.MustCompile(`,(\d{1,2})$`)
)

// NormalizeAmount converts a locale-formatted amount string into a decimal
// value. Dots are treated as thousands separators and a trailing comma with
// one or two digits as the decimal separator, so "1.234,56" parses to
// 1234.56. Malformed input yields zero rather than an error; the import
// pipeline counts such rows instead of aborting on them.
func NormalizeAmount(raw string) decimal.Decimal {
	cleaned := nonAmountChars.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = decimalComma.ReplaceAllString(cleaned, ".$1")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// FormatAmount renders a decimal with two decimal places for display and logs.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

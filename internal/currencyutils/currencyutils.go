// Package currencyutils provides the small amount and quantity rewrites the broker
// parsers apply to raw CSV text.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// leadingMarker matches a currency marker at the start of an amount, after an optional sign.
var leadingMarker = regexp.MustCompile(`^([+-]?)\s*[$€£]\s*`)

// StripCurrencyMarker removes a leading currency marker, keeping the sign:
// "$1.00" → "1.00", "-$500.00" → "-500.00".
func StripCurrencyMarker(amountStr string) string {
	s := strings.TrimSpace(amountStr)
	return leadingMarker.ReplaceAllString(s, "$1")
}

// Magnitude strips leading minus signs from an amount. The QIF amount of most
// investment actions is a non-negative magnitude; the sign is implied by the action.
func Magnitude(amountStr string) string {
	return strings.TrimLeft(amountStr, "-")
}

// NegateQuantity flips the sign of a textual quantity without reformatting it.
func NegateQuantity(quantity string) (string, error) {
	q := strings.TrimSpace(quantity)
	if q == "" || q == "-" {
		return "", fmt.Errorf("cannot negate empty quantity")
	}
	if strings.HasPrefix(q, "-") {
		return q[1:], nil
	}
	return "-" + q, nil
}

// ParseQuantity parses a quantity that may carry thousands separators ("1,000").
func ParseQuantity(quantity string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(quantity), ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse quantity '%s': %w", quantity, err)
	}
	return d, nil
}

// AllBlank reports whether every value is empty after trimming whitespace.
func AllBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

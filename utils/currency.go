package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEGP formats an amount with thousands separators, e.g. 12345.5 -> "EGP 12,345.50".
func FormatEGP(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	negative := strings.HasPrefix(formatted, "-")
	formatted = strings.TrimPrefix(formatted, "-")

	parts := strings.SplitN(formatted, ".", 2)
	integerPart := parts[0]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := strings.Join(groups, ",") + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return "EGP " + result
}

package commands

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parsePrice accepts a positive decimal string.
func parsePrice(value string) (float64, bool) {
	parsed, err := decimal.NewFromString(value)
	if err != nil || parsed.Sign() <= 0 {
		return 0, false
	}
	return parsed.InexactFloat64(), true
}

// normalizeSymbol uppercases a trading symbol and rejects anything that is
// not a plain alphanumeric token.
func normalizeSymbol(raw string) (string, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if symbol == "" {
		return "", false
	}
	for _, r := range symbol {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", false
		}
	}
	return symbol, true
}

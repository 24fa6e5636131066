package converter

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SanitizeAmount strips every character outside [0-9.] from raw user input.
// The returned ok is false when the stripped value still is not a valid
// amount (more than one decimal point); the caller keeps its previous state
// in that case.
func SanitizeAmount(raw string) (string, bool) {
	var b strings.Builder
	dots := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			dots++
			b.WriteRune(r)
		}
	}
	if dots > 1 {
		return "", false
	}
	return b.String(), true
}

// ParseAmount parses a sanitized amount string. Empty or unparseable input
// is treated as zero, never as an error. Partially typed values like "100."
// or ".5" parse the way a user expects.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

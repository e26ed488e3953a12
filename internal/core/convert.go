package core

// convert.go holds the numeric coercion policy for user-provided text.
//
// CSV cells and form fields arrive as strings. The policy is deliberately
// forgiving for catalog data and strict for stock adjustments:
//   - ParseAmount: blank or unparseable input becomes 0; negatives become 0
//   - ParseQuantity: ParseAmount truncated toward zero
//   - ParseAdjustQuantity: must be a positive whole number, otherwise a ValidationError

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a money amount such as cost or price.
// Returns 0 for empty, invalid, non-finite or negative input.
func ParseAmount(s string) float64 {
	f, ok := parseFinite(s)
	if !ok || f < 0 {
		return 0
	}
	return f
}

// ParseQuantity converts a stock count or threshold.
// Fractions are truncated; anything ParseAmount rejects becomes 0.
func ParseQuantity(s string) int {
	f := ParseAmount(s)
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ParseAdjustQuantity validates the quantity of a stock adjustment.
// Zero, negative, fractional or unparseable quantities are rejected.
func ParseAdjustQuantity(s string) (int, error) {
	f, ok := parseFinite(s)
	if !ok || f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, &ValidationError{Field: "quantity", Err: ErrInvalidQuantity}
	}
	return int(f), nil
}

// parseFinite parses s as a float after trimming whitespace.
// An empty string parses as 0.
func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// formatAmount renders a number as plain decimal text with no exponent.
func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

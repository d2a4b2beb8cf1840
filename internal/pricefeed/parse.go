package pricefeed

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// ParseNumber coerces a decoded feed value to a finite float64.
// Numbers and numeric strings are accepted; anything else, including
// NaN and infinities, yields NaN.
func ParseNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		return ParseAmount(n.String())
	case string:
		return ParseAmount(n)
	default:
		return math.NaN()
	}
	if !types.IsFinite(f) {
		return math.NaN()
	}
	return f
}

// ParseAmount parses user or feed text into a finite float64, NaN on failure.
// Surrounding whitespace is ignored. Grouping commas are not accepted.
func ParseAmount(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return math.NaN()
	}
	// strconv accepts "Inf", "NaN" and hex floats; none are amounts.
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(lower, "0x") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !types.IsFinite(f) {
		return math.NaN()
	}
	return f
}

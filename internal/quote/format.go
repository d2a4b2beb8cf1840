package quote

import (
	"strconv"
	"strings"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// Placeholder is shown for any figure that is not yet quotable.
const Placeholder = "-"

// FormatAmount renders v with at most decimals fraction digits, trimming
// trailing zeros. Non-finite values render as Placeholder.
func FormatAmount(v float64, decimals int) string {
	if !types.IsFinite(v) {
		return Placeholder
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatUSD renders a dollar figure with two decimals.
func FormatUSD(v float64) string {
	if !types.IsFinite(v) {
		return Placeholder
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatRate renders "1 IN = x OUT".
func FormatRate(in, out string, rate float64) string {
	return "1 " + in + " = " + FormatAmount(rate, 6) + " " + out
}

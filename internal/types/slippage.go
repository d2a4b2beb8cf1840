// internal/types/slippage.go
package types

import "math"

// Slippage bounds, in basis points (1 bps = 0.01%).
const (
	MinSlippageBps     = 0
	MaxSlippageBps     = 200
	DefaultSlippageBps = 50
	bpsDenominator     = 10000.0
)

// ClampSlippageBps forces bps into [MinSlippageBps, MaxSlippageBps].
func ClampSlippageBps(bps int) int {
	if bps < MinSlippageBps {
		return MinSlippageBps
	}
	if bps > MaxSlippageBps {
		return MaxSlippageBps
	}
	return bps
}

// CalculateMinReceived applies a slippage tolerance to an expected output.
// A non-finite expected amount yields NaN.
func CalculateMinReceived(expectedAmount float64, bps int) float64 {
	if !IsFinite(expectedAmount) {
		return math.NaN()
	}
	multiplier := 1.0 - float64(bps)/bpsDenominator
	return expectedAmount * multiplier
}

// SlippagePercent converts basis points to a percentage (50 -> 0.5).
func SlippagePercent(bps int) float64 {
	return float64(bps) / 100.0
}

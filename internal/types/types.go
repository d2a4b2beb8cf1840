// internal/types/types.go
package types

import (
	"math"
	"time"
)

// Token is a priced, tradable symbol produced by the price feed normalizer.
// Tokens are immutable once built; a feed reload replaces the whole list.
type Token struct {
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
	IconRef string  `json:"iconRef"`
}

// Quote holds the figures derived for a token pair and an input amount.
// Any field that cannot be computed is NaN, never zero.
type Quote struct {
	Rate        float64
	AmountOut   float64
	MinReceived float64
	InputUSD    float64
	OutputUSD   float64
}

// EmptyQuote returns a quote with every figure unset.
func EmptyQuote() Quote {
	nan := math.NaN()
	return Quote{
		Rate:        nan,
		AmountOut:   nan,
		MinReceived: nan,
		InputUSD:    nan,
		OutputUSD:   nan,
	}
}

// Quotable reports whether the quote has a usable output amount.
func (q Quote) Quotable() bool {
	return IsFinite(q.AmountOut)
}

// Verdict is the validator outcome. Reason is empty when OK is true.
type Verdict struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
}

// SwapIntent is what gets handed to the submission collaborator.
type SwapIntent struct {
	TokenInSymbol  string  `json:"tokenInSymbol"`
	TokenOutSymbol string  `json:"tokenOutSymbol"`
	AmountIn       float64 `json:"amountIn"`
	AmountOut      float64 `json:"amountOut"`
}

// Receipt acknowledges a completed simulated swap.
type Receipt struct {
	ID          string     `json:"id"`
	Intent      SwapIntent `json:"intent"`
	SubmittedAt time.Time  `json:"submittedAt"`
	CompletedAt time.Time  `json:"completedAt"`
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

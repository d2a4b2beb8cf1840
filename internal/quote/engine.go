// internal/quote/engine.go
package quote

import (
	"math"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// Rate is the number of tokenOut units one tokenIn unit buys.
// NaN unless both prices are finite and the output price is positive.
func Rate(tokenIn, tokenOut *types.Token) float64 {
	if tokenIn == nil || tokenOut == nil {
		return math.NaN()
	}
	if !types.IsFinite(tokenIn.Price) || !types.IsFinite(tokenOut.Price) || tokenOut.Price <= 0 {
		return math.NaN()
	}
	return tokenIn.Price / tokenOut.Price
}

// AmountOut converts amountIn at rate. A zero or negative amount is not
// quotable and yields NaN rather than a zero trade.
func AmountOut(amountIn, rate float64) float64 {
	if !types.IsFinite(rate) || !types.IsFinite(amountIn) || amountIn <= 0 {
		return math.NaN()
	}
	return amountIn * rate
}

// USDValue prices amount of token in USD.
func USDValue(amount float64, token *types.Token) float64 {
	if token == nil || !types.IsFinite(amount) || !types.IsFinite(token.Price) {
		return math.NaN()
	}
	return amount * token.Price
}

// Compute derives the full quote for amountIn of tokenIn into tokenOut.
// InputUSD is computed from the same amountIn; callers holding a separate
// live amount overwrite it.
func Compute(tokenIn, tokenOut *types.Token, amountIn float64, slippageBps int) types.Quote {
	q := types.EmptyQuote()

	q.Rate = Rate(tokenIn, tokenOut)
	q.AmountOut = AmountOut(amountIn, q.Rate)
	q.MinReceived = types.CalculateMinReceived(q.AmountOut, slippageBps)
	if types.IsFinite(amountIn) && amountIn > 0 {
		q.InputUSD = USDValue(amountIn, tokenIn)
	}
	q.OutputUSD = USDValue(q.AmountOut, tokenOut)

	return q
}

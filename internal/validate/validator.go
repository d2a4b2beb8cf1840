package validate

import (
	"strings"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// Failure reasons, in evaluation order.
const (
	ReasonPickTokens     = "pick tokens"
	ReasonDistinctTokens = "pick two different tokens"
	ReasonEnterAmount    = "enter an amount"
	ReasonInvalidAmount  = "enter a valid amount"
	ReasonInsufficient   = "insufficient balance"
	ReasonUnableToQuote  = "unable to quote price"
)

// Swap evaluates the swap state. Rules are checked in a fixed order and the
// first failing rule decides the reason.
func Swap(tokenIn, tokenOut *types.Token, amountInText string, amountIn, balanceIn, amountOut float64) types.Verdict {
	switch {
	case tokenIn == nil || tokenOut == nil:
		return fail(ReasonPickTokens)
	case tokenIn.Symbol == tokenOut.Symbol:
		return fail(ReasonDistinctTokens)
	case strings.TrimSpace(amountInText) == "":
		return fail(ReasonEnterAmount)
	case !types.IsFinite(amountIn) || amountIn <= 0:
		return fail(ReasonInvalidAmount)
	case !(amountIn <= balanceIn):
		return fail(ReasonInsufficient)
	case !types.IsFinite(amountOut) || amountOut <= 0:
		return fail(ReasonUnableToQuote)
	}
	return types.Verdict{OK: true}
}

func fail(reason string) types.Verdict {
	return types.Verdict{OK: false, Reason: reason}
}

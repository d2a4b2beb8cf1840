// Package session holds the state of one swap form: selected tokens, the
// typed amount (live and settled), slippage and the token search query.
// A Session is not safe for concurrent use; it is owned by a single UI loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rovshanmuradov/swapdemo/internal/balance"
	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/quote"
	"github.com/rovshanmuradov/swapdemo/internal/search"
	"github.com/rovshanmuradov/swapdemo/internal/submit"
	"github.com/rovshanmuradov/swapdemo/internal/types"
	"github.com/rovshanmuradov/swapdemo/internal/validate"
)

// ErrNotReady wraps the verdict reason when a submission is attempted on an
// invalid form.
var ErrNotReady = errors.New("swap is not ready")

// ErrUnsettled is returned when the quote still reflects an older amount
// than the one typed.
var ErrUnsettled = errors.New("amount has not settled yet")

// Session is the explicit form context.
type Session struct {
	tokens   []types.Token
	tokenIn  *types.Token
	tokenOut *types.Token

	amountText    string
	settledAmount string

	slippageBps int

	query        string
	settledQuery string

	submitting bool
}

// New creates an empty session with the given slippage (clamped).
func New(slippageBps int) *Session {
	return &Session{slippageBps: types.ClampSlippageBps(slippageBps)}
}

// LoadTokens replaces the token list. Selections survive when their symbol
// is still listed (picking up the new price); otherwise the first two
// tokens become the default pair.
func (s *Session) LoadTokens(tokens []types.Token) {
	s.tokens = make([]types.Token, len(tokens))
	copy(s.tokens, tokens)

	s.tokenIn = s.find(symbolOf(s.tokenIn))
	s.tokenOut = s.find(symbolOf(s.tokenOut))

	if s.tokenIn == nil && len(s.tokens) > 0 {
		s.tokenIn = s.firstExcept(symbolOf(s.tokenOut))
	}
	if s.tokenOut == nil && len(s.tokens) > 1 {
		s.tokenOut = s.firstExcept(symbolOf(s.tokenIn))
	}
}

// Tokens returns the loaded list.
func (s *Session) Tokens() []types.Token { return s.tokens }

// TokenIn returns the selected input token, or nil.
func (s *Session) TokenIn() *types.Token { return s.tokenIn }

// TokenOut returns the selected output token, or nil.
func (s *Session) TokenOut() *types.Token { return s.tokenOut }

// PickIn selects the input token by symbol. It reports whether the symbol exists.
func (s *Session) PickIn(symbol string) bool {
	t := s.find(symbol)
	if t == nil {
		return false
	}
	s.tokenIn = t
	return true
}

// PickOut selects the output token by symbol.
func (s *Session) PickOut(symbol string) bool {
	t := s.find(symbol)
	if t == nil {
		return false
	}
	s.tokenOut = t
	return true
}

// SwapSides exchanges input and output tokens.
func (s *Session) SwapSides() {
	s.tokenIn, s.tokenOut = s.tokenOut, s.tokenIn
}

// SetAmountText records the live, not yet settled, amount text.
func (s *Session) SetAmountText(text string) { s.amountText = text }

// AmountText returns the live amount text.
func (s *Session) AmountText() string { return s.amountText }

// SettleAmount records the debounced amount text.
func (s *Session) SettleAmount(text string) { s.settledAmount = text }

// LiveAmount parses the live text; NaN when invalid.
func (s *Session) LiveAmount() float64 { return pricefeed.ParseAmount(s.amountText) }

// SettledAmount parses the debounced text; NaN when invalid.
func (s *Session) SettledAmount() float64 { return pricefeed.ParseAmount(s.settledAmount) }

// SetSlippage sets the tolerance, clamped to the allowed range, and returns it.
func (s *Session) SetSlippage(bps int) int {
	s.slippageBps = types.ClampSlippageBps(bps)
	return s.slippageBps
}

// Slippage returns the tolerance in basis points.
func (s *Session) Slippage() int { return s.slippageBps }

// SetQuery records the live search text.
func (s *Session) SetQuery(q string) { s.query = q }

// Query returns the live search text.
func (s *Session) Query() string { return s.query }

// SettleQuery records the debounced search text.
func (s *Session) SettleQuery(q string) { s.settledQuery = q }

// Results filters the token list by the settled query.
func (s *Session) Results() []types.Token {
	return search.Filter(s.tokens, s.settledQuery)
}

// Balance is the simulated balance of the input token; NaN without one.
func (s *Session) Balance() float64 {
	if s.tokenIn == nil {
		return math.NaN()
	}
	return balance.For(s.tokenIn.Symbol)
}

// Quote prices the settled amount. The input-side USD figure follows the
// live amount, so it may briefly run ahead of the output side while typing.
func (s *Session) Quote() types.Quote {
	q := quote.Compute(s.tokenIn, s.tokenOut, s.SettledAmount(), s.slippageBps)
	q.InputUSD = math.NaN()
	if live := s.LiveAmount(); types.IsFinite(live) && live > 0 {
		q.InputUSD = quote.USDValue(live, s.tokenIn)
	}
	return q
}

// Verdict validates the current form.
func (s *Session) Verdict() types.Verdict {
	return validate.Swap(s.tokenIn, s.tokenOut, s.amountText, s.LiveAmount(), s.Balance(), s.Quote().AmountOut)
}

// Submitting reports whether a submission is outstanding.
func (s *Session) Submitting() bool { return s.submitting }

// BeginSubmit checks the form and marks a submission as outstanding.
func (s *Session) BeginSubmit() (types.SwapIntent, error) {
	if s.submitting {
		return types.SwapIntent{}, submit.ErrInFlight
	}
	v := s.Verdict()
	if !v.OK {
		return types.SwapIntent{}, fmt.Errorf("%w: %s", ErrNotReady, v.Reason)
	}
	if s.amountText != s.settledAmount {
		return types.SwapIntent{}, ErrUnsettled
	}
	s.submitting = true
	return types.SwapIntent{
		TokenInSymbol:  s.tokenIn.Symbol,
		TokenOutSymbol: s.tokenOut.Symbol,
		AmountIn:       s.LiveAmount(),
		AmountOut:      s.Quote().AmountOut,
	}, nil
}

// CompleteSubmit ends the outstanding submission; on success the amount is cleared.
func (s *Session) CompleteSubmit(err error) {
	s.submitting = false
	if err == nil {
		s.amountText = ""
		s.settledAmount = ""
	}
}

// Submit runs BeginSubmit, the submitter and CompleteSubmit in sequence.
func (s *Session) Submit(ctx context.Context, sub submit.Submitter) (types.Receipt, error) {
	intent, err := s.BeginSubmit()
	if err != nil {
		return types.Receipt{}, err
	}
	receipt, err := sub.Submit(ctx, intent)
	s.CompleteSubmit(err)
	return receipt, err
}

func (s *Session) find(symbol string) *types.Token {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil
	}
	for i := range s.tokens {
		if s.tokens[i].Symbol == symbol {
			t := s.tokens[i]
			return &t
		}
	}
	return nil
}

func (s *Session) firstExcept(symbol string) *types.Token {
	for i := range s.tokens {
		if s.tokens[i].Symbol != symbol {
			t := s.tokens[i]
			return &t
		}
	}
	return nil
}

func symbolOf(t *types.Token) string {
	if t == nil {
		return ""
	}
	return t.Symbol
}

package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

func TestSwapReasons(t *testing.T) {
	btc := &types.Token{Symbol: "BTC", Price: 50000}
	eth := &types.Token{Symbol: "ETH", Price: 3000}
	nan := math.NaN()

	tests := []struct {
		name      string
		in, out   *types.Token
		text      string
		amount    float64
		balance   float64
		amountOut float64
		want      types.Verdict
	}{
		{"ok", btc, eth, "2", 2, 90.97, 33.33, types.Verdict{OK: true}},
		{"no tokens and empty amount", nil, nil, "", nan, nan, nan, types.Verdict{Reason: ReasonPickTokens}},
		{"only input token", btc, nil, "2", 2, 90, nan, types.Verdict{Reason: ReasonPickTokens}},
		{"same token and bad amount", btc, &types.Token{Symbol: "BTC", Price: 50000}, "abc", nan, 90, nan, types.Verdict{Reason: ReasonDistinctTokens}},
		{"empty amount", btc, eth, "", nan, 90, nan, types.Verdict{Reason: ReasonEnterAmount}},
		{"whitespace amount", btc, eth, "   ", nan, 90, nan, types.Verdict{Reason: ReasonEnterAmount}},
		{"non numeric amount", btc, eth, "abc", nan, 90, nan, types.Verdict{Reason: ReasonInvalidAmount}},
		{"zero amount", btc, eth, "0", 0, 90, nan, types.Verdict{Reason: ReasonInvalidAmount}},
		{"negative amount", btc, eth, "-1", -1, 90, nan, types.Verdict{Reason: ReasonInvalidAmount}},
		{"insufficient balance with valid quote", btc, eth, "100", 100, 90.97, 1666.67, types.Verdict{Reason: ReasonInsufficient}},
		{"unknown balance", btc, eth, "1", 1, nan, 16.67, types.Verdict{Reason: ReasonInsufficient}},
		{"amount equal to balance", btc, eth, "90.97", 90.97, 90.97, 1516.17, types.Verdict{OK: true}},
		{"unquotable", btc, eth, "2", 2, 90, nan, types.Verdict{Reason: ReasonUnableToQuote}},
		{"zero output", btc, eth, "2", 2, 90, 0, types.Verdict{Reason: ReasonUnableToQuote}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Swap(tt.in, tt.out, tt.text, tt.amount, tt.balance, tt.amountOut)
			assert.Equal(t, tt.want, got)
		})
	}
}

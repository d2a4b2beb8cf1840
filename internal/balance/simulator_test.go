package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForKnownValues(t *testing.T) {
	tests := []struct {
		symbol string
		want   float64
	}{
		{"ETH", 24.85},
		{"BTC", 90.97},
		{"USDT", 16.9},
		{"SWTH", 34.36},
		{"😀", 58.99},
		{"", 1},
		{"A", 1},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, For(tt.symbol))
		})
	}
}

func TestForDeterministicAndBounded(t *testing.T) {
	for _, sym := range []string{"ETH", "BTC", "ATOM", "USDC", "OSMO", "LUNA", "ZIL", "x"} {
		first := For(sym)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, For(sym))
		}
		assert.GreaterOrEqual(t, first, 1.0)
		assert.Less(t, first, 95.0)
	}
}

func TestForIsCaseSensitive(t *testing.T) {
	assert.NotEqual(t, For("ETH"), For("eth"))
}

package quote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{33.333333333, 6, "33.333333"},
		{2, 6, "2"},
		{2.5, 6, "2.5"},
		{0.0000001, 6, "0"},
		{-0.0000001, 6, "0"},
		{1234.5678, 2, "1234.57"},
		{math.NaN(), 6, Placeholder},
		{math.Inf(-1), 2, Placeholder},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.v, tt.decimals))
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$100000.00", FormatUSD(100000))
	assert.Equal(t, "$0.01", FormatUSD(0.005001))
	assert.Equal(t, Placeholder, FormatUSD(math.NaN()))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "1 BTC = 16.666667 ETH", FormatRate("BTC", "ETH", 50000.0/3000.0))
	assert.Equal(t, "1 BTC = - ETH", FormatRate("BTC", "ETH", math.NaN()))
}

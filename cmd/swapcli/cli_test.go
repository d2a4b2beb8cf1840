package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

const testFeed = `[
	{"currency":"BTC","price":50000},
	{"currency":"ETH","price":3000},
	{"currency":"USDC","price":"1"},
	{"currency":"BAD","price":-1}
]`

func withFeed(t *testing.T, body string, status int) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("SWAPDEMO_FEED_URL", srv.URL)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokensJSON(t *testing.T) {
	withFeed(t, testFeed, http.StatusOK)

	out, err := execute(t, "tokens", "--json")
	require.NoError(t, err)

	var tokens []types.Token
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	require.Len(t, tokens, 3)
	assert.Equal(t, "BTC", tokens[0].Symbol)
	assert.Equal(t, "USDC", tokens[2].Symbol)

	out, err = execute(t, "ls", "-j", "-q", "zzz")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestTokensTable(t *testing.T) {
	withFeed(t, testFeed, http.StatusOK)

	out, err := execute(t, "tokens", "--query", "us", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "USDC")
	assert.NotContains(t, out, "BTC")
	assert.Contains(t, out, "$1.00")
	assert.Contains(t, out, "1 tokens")
}

func TestQuoteJSON(t *testing.T) {
	withFeed(t, testFeed, http.StatusOK)

	out, err := execute(t, "quote", "2", "btc", "ETH", "--slippage-bps", "100", "-j")
	require.NoError(t, err)

	var q quoteOutput
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, "BTC", q.TokenIn)
	assert.Equal(t, "ETH", q.TokenOut)
	require.NotNil(t, q.AmountOut)
	assert.InDelta(t, 33.333333, *q.AmountOut, 1e-6)
	require.NotNil(t, q.MinReceived)
	assert.InDelta(t, 33.0, *q.MinReceived, 1e-6)
	assert.Equal(t, 100, q.SlippageBps)
	assert.True(t, q.OK)
	assert.Empty(t, q.Reason)
}

func TestQuoteInvalidAmount(t *testing.T) {
	withFeed(t, testFeed, http.StatusOK)

	out, err := execute(t, "quote", "abc", "BTC", "ETH", "-j")
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Nil(t, raw["amountOut"])
	assert.Nil(t, raw["amountIn"])
	assert.Equal(t, false, raw["ok"])
	assert.Equal(t, "enter a valid amount", raw["reason"])
	assert.Equal(t, float64(types.DefaultSlippageBps), raw["slippageBps"])
}

func TestQuoteText(t *testing.T) {
	withFeed(t, testFeed, http.StatusOK)

	out, err := execute(t, "quote", "1000", "BTC", "USDC")
	require.NoError(t, err)
	assert.Contains(t, out, "1 BTC = 50000 USDC")
	assert.Contains(t, out, "insufficient balance")
}

func TestQuoteUnknownToken(t *testing.T) {
	withFeed(t, testFeed, http.StatusOK)

	_, err := execute(t, "quote", "1", "BTC", "DOGE", "-j")
	assert.EqualError(t, err, `unknown token "DOGE"`)

	_, err = execute(t, "quote", "1", "BTC")
	assert.Error(t, err)
}

func TestFeedFailure(t *testing.T) {
	withFeed(t, `not found`, http.StatusNotFound)

	_, err := execute(t, "tokens", "-j")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load price feed")
}

func TestBalance(t *testing.T) {
	out, err := execute(t, "balance", " swth ", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"SWTH","balance":34.36}`, out)

	out, err = execute(t, "balance", "ETH")
	require.NoError(t, err)
	assert.Contains(t, out, "24.85")
}

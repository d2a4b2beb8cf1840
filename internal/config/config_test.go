package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, pricefeed.DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, pricefeed.DefaultIconBaseURL, cfg.IconBaseURL)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 1, cfg.FetchRetries)
	assert.Equal(t, 150*time.Millisecond, cfg.AmountDebounce)
	assert.Equal(t, 80*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 50, cfg.DefaultSlippageBps)
	assert.Equal(t, 1200*time.Millisecond, cfg.SubmitDelay)
	assert.False(t, cfg.DebugLogging)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 600.0, cfg.RateLimitRPM)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `{
		"feed_url": "http://127.0.0.1:9000/prices.json",
		"fetch_timeout": 750,
		"fetch_retries": 3,
		"amount_debounce": 200,
		"default_slippage_bps": 100,
		"debug_logging": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/prices.json", cfg.FeedURL)
	assert.Equal(t, 750*time.Millisecond, cfg.FetchTimeout)
	assert.Equal(t, 200*time.Millisecond, cfg.AmountDebounce)
	assert.Equal(t, 80*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 100, cfg.DefaultSlippageBps)
	assert.True(t, cfg.DebugLogging)

	client := cfg.FeedClientConfig()
	assert.Equal(t, cfg.FeedURL, client.URL)
	assert.Equal(t, 750*time.Millisecond, client.Timeout)
	assert.Equal(t, uint(3), client.MaxTries)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, `{"default_slippage_bps": 100}`)
	t.Setenv("SWAPDEMO_DEFAULT_SLIPPAGE_BPS", "25")
	t.Setenv("SWAPDEMO_FEED_URL", "https://feed.example.com/p.json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DefaultSlippageBps)
	assert.Equal(t, "https://feed.example.com/p.json", cfg.FeedURL)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"non http feed", `{"feed_url": "ftp://example.com/prices.json"}`},
		{"feed without host", `{"feed_url": "https:///prices.json"}`},
		{"bad icon base", `{"icon_base_url": "icons"}`},
		{"slippage too high", `{"default_slippage_bps": 201}`},
		{"slippage negative", `{"default_slippage_bps": -1}`},
		{"zero retries", `{"fetch_retries": 0}`},
		{"zero timeout", `{"fetch_timeout": 0}`},
		{"zero amount debounce", `{"amount_debounce": 0}`},
		{"zero search debounce", `{"search_debounce": 0}`},
		{"zero submit delay", `{"submit_delay": 0}`},
		{"zero rate limit", `{"rate_limit_rpm": 0}`},
		{"empty listen addr", `{"listen_addr": " "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

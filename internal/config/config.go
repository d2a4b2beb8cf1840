// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/types"
)

type Config struct {
	FeedURL            string        `mapstructure:"feed_url"`
	IconBaseURL        string        `mapstructure:"icon_base_url"`
	FetchTimeout       time.Duration `mapstructure:"-"`
	FetchTimeoutMS     int           `mapstructure:"fetch_timeout"`
	FetchRetries       int           `mapstructure:"fetch_retries"`
	AmountDebounce     time.Duration `mapstructure:"-"`
	AmountDebounceMS   int           `mapstructure:"amount_debounce"`
	SearchDebounce     time.Duration `mapstructure:"-"`
	SearchDebounceMS   int           `mapstructure:"search_debounce"`
	DefaultSlippageBps int           `mapstructure:"default_slippage_bps"`
	SubmitDelay        time.Duration `mapstructure:"-"`
	SubmitDelayMS      int           `mapstructure:"submit_delay"`
	DebugLogging       bool          `mapstructure:"debug_logging"`
	LogFile            string        `mapstructure:"log_file"`
	ListenAddr         string        `mapstructure:"listen_addr"`
	RateLimitRPM       float64       `mapstructure:"rate_limit_rpm"`
	RateLimitBurst     int           `mapstructure:"rate_limit_burst"`
}

const (
	DefaultFetchTimeout   = 5000
	DefaultFetchRetries   = 1
	DefaultAmountDebounce = 150
	DefaultSearchDebounce = 80
	DefaultSubmitDelay    = 1200
	DefaultLogFile        = "logs/swapdemo.log"
	DefaultListenAddr     = ":8080"
	DefaultRateLimitRPM   = 600
	DefaultRateLimitBurst = 20

	envPrefix = "SWAPDEMO"
)

var configKeys = []string{
	"feed_url", "icon_base_url", "fetch_timeout", "fetch_retries",
	"amount_debounce", "search_debounce", "default_slippage_bps", "submit_delay",
	"debug_logging", "log_file", "listen_addr", "rate_limit_rpm", "rate_limit_burst",
}

// LoadConfig reads configuration from path (optional; empty means defaults
// and environment only) and validates it. SWAPDEMO_* variables override
// file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"feed_url":             pricefeed.DefaultFeedURL,
		"icon_base_url":        pricefeed.DefaultIconBaseURL,
		"fetch_timeout":        DefaultFetchTimeout,
		"fetch_retries":        DefaultFetchRetries,
		"amount_debounce":      DefaultAmountDebounce,
		"search_debounce":      DefaultSearchDebounce,
		"default_slippage_bps": types.DefaultSlippageBps,
		"submit_delay":         DefaultSubmitDelay,
		"debug_logging":        false,
		"log_file":             DefaultLogFile,
		"listen_addr":          DefaultListenAddr,
		"rate_limit_rpm":       DefaultRateLimitRPM,
		"rate_limit_burst":     DefaultRateLimitBurst,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutMS) * time.Millisecond
	cfg.AmountDebounce = time.Duration(cfg.AmountDebounceMS) * time.Millisecond
	cfg.SearchDebounce = time.Duration(cfg.SearchDebounceMS) * time.Millisecond
	cfg.SubmitDelay = time.Duration(cfg.SubmitDelayMS) * time.Millisecond

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FeedClientConfig maps the settings onto the price feed client.
func (c *Config) FeedClientConfig() pricefeed.ClientConfig {
	return pricefeed.ClientConfig{
		URL:      c.FeedURL,
		Timeout:  c.FetchTimeout,
		MaxTries: uint(c.FetchRetries),
	}
}

func validateConfig(cfg *Config) error {
	if err := validateURL(cfg.FeedURL); err != nil {
		return fmt.Errorf("invalid feed_url: %w", err)
	}
	if err := validateURL(cfg.IconBaseURL); err != nil {
		return fmt.Errorf("invalid icon_base_url: %w", err)
	}
	if err := validateNumericParams(cfg); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("listen_addr is empty")
	}
	return nil
}

func validateNumericParams(cfg *Config) error {
	if cfg.FetchTimeoutMS <= 0 {
		return errors.New("invalid fetch_timeout")
	}
	if cfg.FetchRetries < 1 {
		return errors.New("invalid fetch_retries: at least one attempt is required")
	}
	if cfg.AmountDebounceMS <= 0 {
		return errors.New("invalid amount_debounce")
	}
	if cfg.SearchDebounceMS <= 0 {
		return errors.New("invalid search_debounce")
	}
	if cfg.DefaultSlippageBps < types.MinSlippageBps || cfg.DefaultSlippageBps > types.MaxSlippageBps {
		return fmt.Errorf("invalid default_slippage_bps: must be within [%d, %d]",
			types.MinSlippageBps, types.MaxSlippageBps)
	}
	if cfg.SubmitDelayMS <= 0 {
		return errors.New("invalid submit_delay")
	}
	if cfg.RateLimitRPM <= 0 {
		return errors.New("invalid rate_limit_rpm")
	}
	if cfg.RateLimitBurst <= 0 {
		return errors.New("invalid rate_limit_burst")
	}
	return nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("invalid URL protocol")
	}
	if parsed.Host == "" {
		return errors.New("missing URL host")
	}
	return nil
}

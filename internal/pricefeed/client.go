package pricefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// DefaultFeedURL is the public price document used by the demo.
const DefaultFeedURL = "https://interview.switcheo.com/prices.json"

const maxFeedBytes = 8 << 20

// Fetcher retrieves the raw feed document.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// ClientConfig configures the HTTP feed client.
type ClientConfig struct {
	URL        string
	Timeout    time.Duration
	MaxTries   uint
	RetryDelay time.Duration
}

// Client performs a GET against the feed endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	maxTries   uint
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewClient creates a feed client. MaxTries of 0 or 1 means a single attempt.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.URL == "" {
		cfg.URL = DefaultFeedURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxTries:   cfg.MaxTries,
		retryDelay: cfg.RetryDelay,
		logger:     logger.Named("feed_client"),
	}
}

// Fetch returns the response body. Client errors (4xx) are not retried.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryDelay
	policy.MaxInterval = c.retryDelay * 10

	notify := func(err error, d time.Duration) {
		c.logger.Info("Retrying price feed fetch", zap.Error(err), zap.Duration("backoff", d))
	}

	return backoff.Retry(ctx, func() ([]byte, error) {
		return c.fetchOnce(ctx)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(notify))
}

func (c *Client) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build feed request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("request price feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Status: resp.Status}
		if resp.StatusCode < 500 {
			return nil, backoff.Permanent(statusErr)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read price feed: %w", err)
	}
	return body, nil
}

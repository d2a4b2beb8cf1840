package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/metrics"
	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// LoadResult is a completed feed load tagged with the generation that produced it.
type LoadResult struct {
	Generation uint64
	Tokens     []types.Token
	Rejected   int
}

// Loader fetches and normalizes the feed with last-writer-wins semantics:
// starting a load cancels the one in flight, and a load that finishes after
// a newer one started reports ErrSuperseded instead of a result.
type Loader struct {
	fetcher    Fetcher
	normalizer *Normalizer
	logger     *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// NewLoader wires a fetcher to a normalizer.
func NewLoader(fetcher Fetcher, normalizer *Normalizer, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fetcher:    fetcher,
		normalizer: normalizer,
		logger:     logger.Named("feed_loader"),
	}
}

// Latest returns the generation of the most recently started load.
func (l *Loader) Latest() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// IsCurrent reports whether gen is still the most recent load.
func (l *Loader) IsCurrent(gen uint64) bool {
	return l.Latest() == gen
}

// Load runs one fetch + normalize cycle. The result carries the load's
// generation even when err is non-nil, so callers can discard stale failures.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	if l.cancel != nil {
		l.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	start := time.Now()
	l.logger.Info("Loading price feed", zap.Uint64("generation", gen))

	data, err := l.fetcher.Fetch(loadCtx)
	if !l.IsCurrent(gen) {
		return l.superseded(gen)
	}
	if err != nil {
		metrics.RecordFeedLoad(metrics.FeedError, time.Since(start))
		l.logger.Error("Price feed fetch failed", zap.Uint64("generation", gen), zap.Error(err))
		return LoadResult{Generation: gen}, fmt.Errorf("fetch price feed: %w", err)
	}

	raw, err := DecodeFeed(data)
	if !l.IsCurrent(gen) {
		return l.superseded(gen)
	}
	if err != nil {
		metrics.RecordFeedLoad(metrics.FeedError, time.Since(start))
		l.logger.Error("Price feed is not valid JSON", zap.Uint64("generation", gen), zap.Error(err))
		return LoadResult{Generation: gen}, err
	}

	res := l.normalizer.NormalizeWithStats(raw)
	// A newer load may have started while this one was decoding or normalizing.
	if !l.IsCurrent(gen) {
		return l.superseded(gen)
	}
	metrics.RecordRejected(res.Rejected)
	if len(res.Tokens) == 0 {
		metrics.RecordFeedLoad(metrics.FeedError, time.Since(start))
		l.logger.Error("Price feed yielded no tokens", zap.Uint64("generation", gen), zap.Int("rejected", res.Rejected))
		return LoadResult{Generation: gen}, ErrNoTokens
	}

	metrics.RecordFeedLoad(metrics.FeedOK, time.Since(start))
	l.logger.Info("Price feed loaded",
		zap.Uint64("generation", gen),
		zap.Int("tokens", len(res.Tokens)),
		zap.Int("rejected", res.Rejected),
		zap.Duration("took", time.Since(start)))

	return LoadResult{Generation: gen, Tokens: res.Tokens, Rejected: res.Rejected}, nil
}

// LoadInto runs Load and replaces the store contents if the result is still current.
func (l *Loader) LoadInto(ctx context.Context, store *Store) (LoadResult, error) {
	res, err := l.Load(ctx)
	if err != nil {
		return res, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != res.Generation {
		metrics.RecordFeedLoad(metrics.FeedSuperseded, 0)
		return LoadResult{}, ErrSuperseded
	}
	store.Replace(res.Tokens)
	return res, nil
}

func (l *Loader) superseded(gen uint64) (LoadResult, error) {
	metrics.RecordFeedLoad(metrics.FeedSuperseded, 0)
	l.logger.Debug("Discarding superseded price feed load", zap.Uint64("generation", gen))
	return LoadResult{Generation: gen}, ErrSuperseded
}

// IsFeedError reports whether err should surface as the blocking feed-error state.
func IsFeedError(err error) bool {
	return err != nil && !errors.Is(err, ErrSuperseded)
}

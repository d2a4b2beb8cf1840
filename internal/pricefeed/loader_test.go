package pricefeed

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type fetcherFunc func(ctx context.Context) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context) ([]byte, error) { return f(ctx) }

func staticFetcher(doc string) Fetcher {
	return fetcherFunc(func(context.Context) ([]byte, error) { return []byte(doc), nil })
}

func newTestLoader(f Fetcher) *Loader {
	return NewLoader(f, newTestNormalizer(), zap.NewNop())
}

func TestLoaderLoad(t *testing.T) {
	l := newTestLoader(staticFetcher(`{"ETH":3000,"BTC":50000,"BAD":-1}`))

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Generation)
	assert.Equal(t, []string{"BTC", "ETH"}, symbols(res.Tokens))
	assert.Equal(t, 1, res.Rejected)
	assert.True(t, l.IsCurrent(res.Generation))
}

func TestLoaderErrors(t *testing.T) {
	fetchErr := errors.New("connection refused")

	tests := []struct {
		name    string
		fetcher Fetcher
		check   func(t *testing.T, err error)
	}{
		{
			name: "fetch failure",
			fetcher: fetcherFunc(func(context.Context) ([]byte, error) {
				return nil, fetchErr
			}),
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, fetchErr) },
		},
		{
			name:    "invalid json",
			fetcher: staticFetcher(`<html>`),
			check:   func(t *testing.T, err error) { assert.Error(t, err) },
		},
		{
			name:    "no valid tokens",
			fetcher: staticFetcher(`[{"currency":"X","price":0}]`),
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNoTokens) },
		},
		{
			name:    "empty document",
			fetcher: staticFetcher(`{}`),
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNoTokens) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLoader(tt.fetcher).Load(context.Background())
			require.Error(t, err)
			tt.check(t, err)
			assert.True(t, IsFeedError(err))
		})
	}
}

func TestLoaderLastWriterWins(t *testing.T) {
	started := make(chan struct{})
	calls := 0
	f := fetcherFunc(func(ctx context.Context) ([]byte, error) {
		calls++
		if calls == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []byte(`{"NEW":1}`), nil
	})
	l := newTestLoader(f)

	type outcome struct {
		res LoadResult
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := l.Load(context.Background())
		first <- outcome{res, err}
	}()
	<-started

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Generation)

	select {
	case out := <-first:
		assert.ErrorIs(t, out.err, ErrSuperseded)
		assert.False(t, IsFeedError(out.err))
	case <-time.After(2 * time.Second):
		t.Fatal("superseded load did not return")
	}
	assert.False(t, l.IsCurrent(1))
	assert.True(t, l.IsCurrent(2))
}

func TestLoaderSupersededWhileNormalizing(t *testing.T) {
	docs := []string{`{"BAD":-1}`, `{"BTC":50000}`}
	calls := 0
	f := fetcherFunc(func(context.Context) ([]byte, error) {
		doc := docs[calls]
		calls++
		return []byte(doc), nil
	})

	var (
		l     *Loader
		newer LoadResult
		nerr  error
	)
	// Start the newer load from inside the first load's normalize step.
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(io.Discard), zapcore.DebugLevel)
	hooked := zap.New(core, zap.Hooks(func(e zapcore.Entry) error {
		if e.Message == "Dropped invalid feed entries" && calls == 1 {
			newer, nerr = l.Load(context.Background())
		}
		return nil
	}))
	l = NewLoader(f, NewNormalizer("", hooked), zap.NewNop())

	res, err := l.Load(context.Background())
	require.ErrorIs(t, err, ErrSuperseded, "stale load must not report its own failure")
	assert.False(t, IsFeedError(err))
	assert.Equal(t, uint64(1), res.Generation)

	require.NoError(t, nerr)
	assert.Equal(t, uint64(2), newer.Generation)
	assert.Equal(t, []string{"BTC"}, symbols(newer.Tokens))
}

func TestLoaderErrorCarriesGeneration(t *testing.T) {
	l := newTestLoader(staticFetcher(`{}`))
	_, _ = l.Load(context.Background())

	res, err := l.Load(context.Background())
	require.ErrorIs(t, err, ErrNoTokens)
	assert.Equal(t, uint64(2), res.Generation)
}

func TestLoaderLoadInto(t *testing.T) {
	store := NewStore()
	l := newTestLoader(staticFetcher(`{"ETH":3000}`))

	res, err := l.LoadInto(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, res.Tokens, store.Snapshot())

	failing := newTestLoader(staticFetcher(`{}`))
	_, err = failing.LoadInto(context.Background(), store)
	require.ErrorIs(t, err, ErrNoTokens)
	assert.Equal(t, 1, store.Len(), "failed load must not clear the store")
}

func TestIsFeedError(t *testing.T) {
	assert.False(t, IsFeedError(nil))
	assert.False(t, IsFeedError(ErrSuperseded))
	assert.True(t, IsFeedError(ErrNoTokens))
	assert.True(t, IsFeedError(&StatusError{Code: 500, Status: "500 Internal Server Error"}))
}

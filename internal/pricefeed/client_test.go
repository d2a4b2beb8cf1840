package pricefeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"BTC":50000}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{URL: srv.URL, Timeout: time.Second}, zap.NewNop())
	body, err := c.Fetch(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, `{"BTC":50000}`, string(body))
}

func TestClientStatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		maxTries  uint
		wantCalls int32
	}{
		{name: "not found is not retried", status: http.StatusNotFound, maxTries: 3, wantCalls: 1},
		{name: "server error one-shot", status: http.StatusBadGateway, maxTries: 1, wantCalls: 1},
		{name: "server error retried", status: http.StatusServiceUnavailable, maxTries: 3, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(ClientConfig{
				URL:        srv.URL,
				Timeout:    time.Second,
				MaxTries:   tt.maxTries,
				RetryDelay: time.Millisecond,
			}, zap.NewNop())

			_, err := c.Fetch(context.Background())
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Code)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestClientRecoversAfterRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{URL: srv.URL, MaxTries: 2, RetryDelay: time.Millisecond}, zap.NewNop())
	body, err := c.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := NewClient(ClientConfig{URL: srv.URL, Timeout: 5 * time.Second, MaxTries: 3}, zap.NewNop())
	_, err := c.Fetch(ctx)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

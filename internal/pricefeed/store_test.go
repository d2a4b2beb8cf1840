package pricefeed

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

func TestStoreReplaceAndLookup(t *testing.T) {
	s := NewStore()
	assert.True(t, s.LoadedAt().IsZero())

	_, ok := s.Lookup("ETH")
	assert.False(t, ok)

	s.Replace([]types.Token{{Symbol: "BTC", Price: 50000}, {Symbol: "ETH", Price: 3000}})

	tk, ok := s.Lookup(" eth ")
	assert.True(t, ok)
	assert.Equal(t, 3000.0, tk.Price)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.LoadedAt().IsZero())

	s.Replace([]types.Token{{Symbol: "SOL", Price: 20}})
	_, ok = s.Lookup("ETH")
	assert.False(t, ok, "replace is wholesale")
	assert.Equal(t, 1, s.Len())
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := NewStore()
	in := []types.Token{{Symbol: "BTC", Price: 1}}
	s.Replace(in)
	in[0].Price = 99

	snap := s.Snapshot()
	snap[0].Price = 42

	tk, _ := s.Lookup("BTC")
	assert.Equal(t, 1.0, tk.Price)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Replace([]types.Token{{Symbol: "ETH", Price: float64(j + 1)}})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Snapshot()
				_, _ = s.Lookup("eth")
			}
		}()
	}
	wg.Wait()

	tokens, reads, writes := s.GetStats()
	assert.Equal(t, uint64(1), tokens)
	assert.Equal(t, uint64(1600), reads)
	assert.Equal(t, uint64(800), writes)
}

package pricefeed

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// Store holds the current token list. Lists are replaced wholesale, never patched.
type Store struct {
	mu       sync.RWMutex
	tokens   []types.Token
	index    map[string]int
	loadedAt time.Time

	// Statistics (accessed atomically)
	reads  uint64
	writes uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Replace swaps in a new token list.
func (s *Store) Replace(tokens []types.Token) {
	list := make([]types.Token, len(tokens))
	copy(list, tokens)
	index := make(map[string]int, len(list))
	for i, t := range list {
		index[t.Symbol] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = list
	s.index = index
	s.loadedAt = time.Now()
	atomic.AddUint64(&s.writes, 1)
}

// Snapshot returns a copy of the current list.
func (s *Store) Snapshot() []types.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	atomic.AddUint64(&s.reads, 1)
	out := make([]types.Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Lookup finds a token by symbol, case-insensitively.
func (s *Store) Lookup(symbol string) (types.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	atomic.AddUint64(&s.reads, 1)
	i, ok := s.index[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return types.Token{}, false
	}
	return s.tokens[i], true
}

// Len returns the number of tokens held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// LoadedAt returns when the list was last replaced; zero if never.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// GetStats returns store statistics.
func (s *Store) GetStats() (tokens, reads, writes uint64) {
	s.mu.RLock()
	tokens = uint64(len(s.tokens))
	s.mu.RUnlock()

	reads = atomic.LoadUint64(&s.reads)
	writes = atomic.LoadUint64(&s.writes)
	return tokens, reads, writes
}

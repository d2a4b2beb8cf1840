package pricefeed

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// NormalizeResult carries the canonical token list and how many candidate
// entries were dropped on the way.
type NormalizeResult struct {
	Tokens   []types.Token
	Rejected int
}

// Normalizer turns an untrusted feed document into a canonical token list.
type Normalizer struct {
	iconBaseURL string
	logger      *zap.Logger

	// Overlapping loads normalize concurrently; a Collator is not safe for that.
	collatorMu sync.Mutex
	collator   *collate.Collator
}

// NewNormalizer creates a normalizer deriving icon references from iconBaseURL.
func NewNormalizer(iconBaseURL string, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		iconBaseURL: iconBaseURL,
		logger:      logger.Named("normalizer"),
		collator:    collate.New(language.English),
	}
}

// Normalize returns the de-duplicated tokens of raw, sorted by symbol.
func (n *Normalizer) Normalize(raw any) []types.Token {
	return n.NormalizeWithStats(raw).Tokens
}

// NormalizeWithStats is Normalize plus the number of rejected entries.
//
// Accepted shapes: a sequence of records carrying currency (or symbol) and
// price, or a mapping of symbol to either a number or an object with price.
// When a symbol repeats, the last occurrence in iteration order wins.
func (n *Normalizer) NormalizeWithStats(raw any) NormalizeResult {
	acc := newAccumulator()

	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			acc.addRecord(item)
		}
	case []map[string]any:
		for _, item := range v {
			acc.addRecord(item)
		}
	case []types.Token:
		for _, t := range v {
			acc.add(t.Symbol, t.Price)
		}
	case Object:
		for _, m := range v {
			acc.addKeyed(m.Key, m.Value)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			acc.addKeyed(k, v[k])
		}
	default:
		n.logger.Debug("Unsupported feed shape, nothing to normalize")
	}

	tokens := make([]types.Token, 0, len(acc.order))
	for _, sym := range acc.order {
		tokens = append(tokens, types.Token{
			Symbol:  sym,
			Price:   acc.prices[sym],
			IconRef: IconRef(n.iconBaseURL, sym),
		})
	}
	n.sortTokens(tokens)

	if acc.rejected > 0 {
		n.logger.Debug("Dropped invalid feed entries",
			zap.Int("rejected", acc.rejected),
			zap.Int("accepted", len(tokens)))
	}

	return NormalizeResult{Tokens: tokens, Rejected: acc.rejected}
}

// sortTokens orders tokens by symbol using locale-aware comparison, with a
// byte-wise tie break so distinct symbols never compare equal.
func (n *Normalizer) sortTokens(tokens []types.Token) {
	n.collatorMu.Lock()
	defer n.collatorMu.Unlock()

	sort.SliceStable(tokens, func(i, j int) bool {
		if cmp := n.collator.CompareString(tokens[i].Symbol, tokens[j].Symbol); cmp != 0 {
			return cmp < 0
		}
		return tokens[i].Symbol < tokens[j].Symbol
	})
}

type accumulator struct {
	prices   map[string]float64
	order    []string
	rejected int
}

func newAccumulator() *accumulator {
	return &accumulator{prices: make(map[string]float64)}
}

func (a *accumulator) add(symbol string, price float64) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" || !types.IsFinite(price) || price <= 0 {
		a.rejected++
		return
	}
	if _, seen := a.prices[sym]; !seen {
		a.order = append(a.order, sym)
	}
	a.prices[sym] = price
}

func (a *accumulator) addRecord(item any) {
	get, ok := fieldGetter(item)
	if !ok {
		a.rejected++
		return
	}
	symbol := stringField(get, "currency")
	if strings.TrimSpace(symbol) == "" {
		symbol = stringField(get, "symbol")
	}
	price, _ := get("price")
	a.add(symbol, ParseNumber(price))
}

func (a *accumulator) addKeyed(symbol string, value any) {
	if get, ok := fieldGetter(value); ok {
		price, _ := get("price")
		a.add(symbol, ParseNumber(price))
		return
	}
	a.add(symbol, ParseNumber(value))
}

func fieldGetter(item any) (func(string) (any, bool), bool) {
	switch rec := item.(type) {
	case Object:
		return rec.Get, true
	case map[string]any:
		return func(k string) (any, bool) {
			v, ok := rec[k]
			return v, ok
		}, true
	}
	return nil, false
}

func stringField(get func(string) (any, bool), key string) string {
	v, ok := get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

package search

import (
	"strings"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// Filter returns the tokens whose symbol contains query as a substring,
// case-insensitively, keeping input order. A blank query returns tokens as is.
func Filter(tokens []types.Token, query string) []types.Token {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return tokens
	}

	matched := make([]types.Token, 0, len(tokens))
	for _, t := range tokens {
		if strings.Contains(strings.ToUpper(t.Symbol), q) {
			matched = append(matched, t)
		}
	}
	return matched
}

package pricefeed

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTokens means the feed was readable but produced no valid token.
	ErrNoTokens = errors.New("price feed yielded no valid tokens")
	// ErrSuperseded means a newer load started before this one finished.
	ErrSuperseded = errors.New("price feed load superseded")
)

// StatusError reports a non-2xx response from the feed endpoint.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("price feed returned HTTP %d (%s)", e.Code, e.Status)
}

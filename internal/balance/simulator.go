// Package balance derives stable pseudo-balances for demo purposes.
// The values are not random and carry no security meaning.
package balance

import "unicode/utf16"

const (
	hashBase   = 31
	modulus    = 9500
	scale      = 100.0
	minBalance = 1.0
)

// For returns the simulated balance of symbol. The same symbol always
// yields the same value, with no external state involved.
func For(symbol string) float64 {
	var h uint32
	for _, unit := range utf16.Encode([]rune(symbol)) {
		h = h*hashBase + uint32(unit)
	}
	b := float64(h%modulus) / scale
	if b < minBalance {
		return minBalance
	}
	return b
}

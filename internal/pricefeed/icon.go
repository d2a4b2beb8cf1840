package pricefeed

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// DefaultIconBaseURL hosts one SVG per token symbol.
const DefaultIconBaseURL = "https://raw.githubusercontent.com/Switcheo/token-icons/main/tokens"

// IconRef builds the icon URL for an uppercase symbol. It performs no I/O.
func IconRef(baseURL, symbol string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultIconBaseURL
	}
	return base + "/" + url.PathEscape(symbol) + ".svg"
}

// Glyph is the two-letter fallback shown when an icon cannot be loaded.
func Glyph(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if utf8.RuneCountInString(s) <= 2 {
		return s
	}
	r := []rune(s)
	return string(r[:2])
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// Number is a float64 that encodes NaN and infinities as null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	if !types.IsFinite(float64(n)) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(n), 'g', -1, 64), nil
}

type tokenView struct {
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
	IconRef string  `json:"iconRef"`
	Glyph   string  `json:"glyph"`
}

type quoteView struct {
	Rate        Number `json:"rate"`
	AmountOut   Number `json:"amountOut"`
	MinReceived Number `json:"minReceived"`
	InputUSD    Number `json:"inputUsd"`
	OutputUSD   Number `json:"outputUsd"`
	SlippageBps int    `json:"slippageBps"`
}

func newQuoteView(q types.Quote, bps int) quoteView {
	return quoteView{
		Rate:        Number(q.Rate),
		AmountOut:   Number(q.AmountOut),
		MinReceived: Number(q.MinReceived),
		InputUSD:    Number(q.InputUSD),
		OutputUSD:   Number(q.OutputUSD),
		SlippageBps: bps,
	}
}

type verdictView struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

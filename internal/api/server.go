// Package api exposes the quote engine over HTTP: token listing, balances,
// quotes, validation and simulated swaps against the most recent feed.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/balance"
	"github.com/rovshanmuradov/swapdemo/internal/metrics"
	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/quote"
	"github.com/rovshanmuradov/swapdemo/internal/search"
	"github.com/rovshanmuradov/swapdemo/internal/submit"
	"github.com/rovshanmuradov/swapdemo/internal/types"
	"github.com/rovshanmuradov/swapdemo/internal/validate"
)

const maxRequestBody = 1 << 16

// Config groups the server collaborators.
type Config struct {
	Store              *pricefeed.Store
	Loader             *pricefeed.Loader
	Submitter          submit.Submitter
	DefaultSlippageBps int
	RateLimit          RateLimit
	Logger             *zap.Logger
}

// Server is the HTTP front-end.
type Server struct {
	store       *pricefeed.Store
	loader      *pricefeed.Loader
	submitter   submit.Submitter
	slippageBps int
	limiter     *RateLimiter
	logger      *zap.Logger
}

// NewServer creates a server. Store and Submitter are required.
func NewServer(cfg Config) *Server {
	if cfg.Store == nil {
		panic("token store required")
	}
	if cfg.Submitter == nil {
		panic("submitter required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:       cfg.Store,
		loader:      cfg.Loader,
		submitter:   cfg.Submitter,
		slippageBps: types.ClampSlippageBps(cfg.DefaultSlippageBps),
		limiter:     NewRateLimiter(cfg.RateLimit, logger),
		logger:      logger,
	}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(ar chi.Router) {
		ar.Use(s.limiter.Middleware)
		ar.Get("/tokens", s.handleTokens)
		ar.Get("/balance/{symbol}", s.handleBalance)
		ar.Get("/quote", s.handleQuote)
		ar.Post("/validate", s.handleValidate)
		ar.Post("/swap", s.handleSwap)
		ar.Post("/reload", s.handleReload)
	})
	return r
}

// SwapRequest is the body of /api/validate and /api/swap.
type SwapRequest struct {
	TokenIn     string `json:"tokenIn"`
	TokenOut    string `json:"tokenOut"`
	Amount      string `json:"amount"`
	SlippageBps *int   `json:"slippageBps,omitempty"`
}

type evaluation struct {
	tokenIn  *types.Token
	tokenOut *types.Token
	amount   float64
	bps      int
	balance  float64
	quote    types.Quote
	verdict  types.Verdict
}

// evaluate prices and validates req against the current store.
func (s *Server) evaluate(req SwapRequest) evaluation {
	ev := evaluation{
		tokenIn:  s.lookup(req.TokenIn),
		tokenOut: s.lookup(req.TokenOut),
		amount:   pricefeed.ParseAmount(req.Amount),
		bps:      s.slippageBps,
		balance:  math.NaN(),
	}
	if req.SlippageBps != nil {
		ev.bps = types.ClampSlippageBps(*req.SlippageBps)
	}
	if ev.tokenIn != nil {
		ev.balance = balance.For(ev.tokenIn.Symbol)
	}
	ev.quote = quote.Compute(ev.tokenIn, ev.tokenOut, ev.amount, ev.bps)
	ev.verdict = validate.Swap(ev.tokenIn, ev.tokenOut, req.Amount, ev.amount, ev.balance, ev.quote.AmountOut)

	metrics.RecordQuote(ev.quote.Quotable())
	metrics.RecordVerdict(ev.verdict.OK, ev.verdict.Reason)
	return ev
}

func (s *Server) lookup(symbol string) *types.Token {
	if strings.TrimSpace(symbol) == "" {
		return nil
	}
	t, ok := s.store.Lookup(symbol)
	if !ok {
		return nil
	}
	return &t
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	tokens := search.Filter(s.store.Snapshot(), r.URL.Query().Get("q"))
	views := make([]tokenView, 0, len(tokens))
	for _, t := range tokens {
		views = append(views, tokenView{
			Symbol:  t.Symbol,
			Price:   t.Price,
			IconRef: t.IconRef,
			Glyph:   pricefeed.Glyph(t.Symbol),
		})
	}
	resp := struct {
		Tokens   []tokenView `json:"tokens"`
		LoadedAt *time.Time  `json:"loadedAt,omitempty"`
	}{Tokens: views}
	if at := s.store.LoadedAt(); !at.IsZero() {
		resp.LoadedAt = &at
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	t := s.lookup(chi.URLParam(r, "symbol"))
	if t == nil {
		writeError(w, http.StatusNotFound, "unknown token")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Symbol  string `json:"symbol"`
		Balance Number `json:"balance"`
	}{Symbol: t.Symbol, Balance: Number(balance.For(t.Symbol))})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := SwapRequest{
		TokenIn:  q.Get("in"),
		TokenOut: q.Get("out"),
		Amount:   q.Get("amount"),
	}
	if raw := q.Get("slippage_bps"); raw != "" {
		bps, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "slippage_bps must be an integer")
			return
		}
		req.SlippageBps = &bps
	}
	ev := s.evaluate(req)
	writeJSON(w, http.StatusOK, newQuoteView(ev.quote, ev.bps))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSwapRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev := s.evaluate(req)
	writeJSON(w, http.StatusOK, struct {
		Verdict verdictView `json:"verdict"`
		Quote   quoteView   `json:"quote"`
		Balance Number      `json:"balance"`
	}{
		Verdict: verdictView{OK: ev.verdict.OK, Reason: ev.verdict.Reason},
		Quote:   newQuoteView(ev.quote, ev.bps),
		Balance: Number(ev.balance),
	})
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSwapRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev := s.evaluate(req)
	if !ev.verdict.OK {
		writeJSON(w, http.StatusUnprocessableEntity, verdictView{OK: false, Reason: ev.verdict.Reason})
		return
	}

	intent := types.SwapIntent{
		TokenInSymbol:  ev.tokenIn.Symbol,
		TokenOutSymbol: ev.tokenOut.Symbol,
		AmountIn:       ev.amount,
		AmountOut:      ev.quote.AmountOut,
	}
	receipt, err := s.submitter.Submit(r.Context(), intent)
	switch {
	case errors.Is(err, submit.ErrInFlight):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Debug("Swap request abandoned", zap.Error(err))
		return
	case err != nil:
		s.logger.Error("Swap submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "submission failed")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		ID          string    `json:"id"`
		TokenIn     string    `json:"tokenIn"`
		TokenOut    string    `json:"tokenOut"`
		AmountIn    Number    `json:"amountIn"`
		AmountOut   Number    `json:"amountOut"`
		SubmittedAt time.Time `json:"submittedAt"`
		CompletedAt time.Time `json:"completedAt"`
	}{
		ID:          receipt.ID,
		TokenIn:     receipt.Intent.TokenInSymbol,
		TokenOut:    receipt.Intent.TokenOutSymbol,
		AmountIn:    Number(receipt.Intent.AmountIn),
		AmountOut:   Number(receipt.Intent.AmountOut),
		SubmittedAt: receipt.SubmittedAt,
		CompletedAt: receipt.CompletedAt,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.loader == nil {
		writeError(w, http.StatusServiceUnavailable, "feed reload not configured")
		return
	}
	res, err := s.loader.LoadInto(r.Context(), s.store)
	switch {
	case errors.Is(err, pricefeed.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded by a newer reload")
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Generation uint64 `json:"generation"`
		Tokens     int    `json:"tokens"`
		Rejected   int    `json:"rejected"`
	}{Generation: res.Generation, Tokens: len(res.Tokens), Rejected: res.Rejected})
}

func decodeSwapRequest(r *http.Request) (SwapRequest, error) {
	var req SwapRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return SwapRequest{}, errors.New("invalid JSON body")
	}
	return req, nil
}

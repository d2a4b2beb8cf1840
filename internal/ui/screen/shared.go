package screen

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/debounce"
	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/quote"
	"github.com/rovshanmuradov/swapdemo/internal/session"
	"github.com/rovshanmuradov/swapdemo/internal/submit"
	"github.com/rovshanmuradov/swapdemo/internal/ui"
)

// FeedState tracks the price feed as seen by the form.
type FeedState int

const (
	FeedLoading FeedState = iota
	FeedReady
	FeedFailed
)

// Shared is the state every screen works against. It is only touched from
// the tea update loop.
type Shared struct {
	Session   *session.Session
	Loader    *pricefeed.Loader
	Submitter submit.Submitter
	Amount    *debounce.Debouncer[string]
	Search    *debounce.Debouncer[string]
	KeyMap    ui.KeyMap
	Logger    *zap.Logger
	BaseCtx   context.Context

	Feed    FeedState
	FeedErr error
	Notice  string
	Failure string
}

// SharedConfig groups the collaborators needed to build Shared.
type SharedConfig struct {
	Session     *session.Session
	Loader      *pricefeed.Loader
	Submitter   submit.Submitter
	Bus         *ui.Bus
	AmountDelay time.Duration
	SearchDelay time.Duration
	Logger      *zap.Logger
}

// NewShared wires the debouncers to the bus so settled values come back
// into the update loop as messages.
func NewShared(ctx context.Context, cfg SharedConfig) *Shared {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bus := cfg.Bus
	publish := func(msg tea.Msg) {
		if !bus.Publish(msg) {
			logger.Warn("UI bus full, dropping message", zap.String("type", fmt.Sprintf("%T", msg)))
		}
	}

	return &Shared{
		Session:   cfg.Session,
		Loader:    cfg.Loader,
		Submitter: cfg.Submitter,
		Amount: debounce.New(cfg.AmountDelay, func(text string) {
			publish(ui.AmountSettledMsg{Text: text})
		}),
		Search: debounce.New(cfg.SearchDelay, func(text string) {
			publish(ui.QuerySettledMsg{Text: text})
		}),
		KeyMap:  ui.DefaultKeyMap(),
		Logger:  logger,
		BaseCtx: ctx,
		Feed:    FeedLoading,
	}
}

// LoadFeed starts a feed load. A load already in flight is superseded.
func (s *Shared) LoadFeed() tea.Cmd {
	s.Feed = FeedLoading
	s.FeedErr = nil
	loader, ctx := s.Loader, s.BaseCtx
	return func() tea.Msg {
		res, err := loader.Load(ctx)
		if err != nil {
			return ui.FeedErrorMsg{Generation: res.Generation, Err: err}
		}
		return ui.FeedLoadedMsg{Result: res}
	}
}

// Handle applies messages that change shared state. It is called by the
// application model before the message reaches the current screen.
func (s *Shared) Handle(msg tea.Msg) {
	switch msg := msg.(type) {
	case ui.FeedLoadedMsg:
		if !s.Loader.IsCurrent(msg.Result.Generation) {
			return
		}
		s.Session.LoadTokens(msg.Result.Tokens)
		s.Feed = FeedReady
		s.FeedErr = nil

	case ui.FeedErrorMsg:
		if !pricefeed.IsFeedError(msg.Err) || !s.Loader.IsCurrent(msg.Generation) {
			return
		}
		s.Feed = FeedFailed
		s.FeedErr = msg.Err

	case ui.AmountSettledMsg:
		// A settle for text the user has since replaced is stale.
		if msg.Text == s.Session.AmountText() {
			s.Session.SettleAmount(msg.Text)
		}

	case ui.QuerySettledMsg:
		if msg.Text == s.Session.Query() {
			s.Session.SettleQuery(msg.Text)
		}

	case ui.SubmitDoneMsg:
		s.Session.CompleteSubmit(msg.Err)
		if msg.Err != nil {
			s.Notice = ""
			s.Failure = "swap failed: " + msg.Err.Error()
			return
		}
		s.Amount.Stop()
		in := msg.Receipt.Intent
		s.Failure = ""
		s.Notice = fmt.Sprintf("Swapped %s %s for %s %s",
			quote.FormatAmount(in.AmountIn, 6), in.TokenInSymbol,
			quote.FormatAmount(in.AmountOut, 6), in.TokenOutSymbol)
	}
}

// Submit validates the form and returns the command running the simulated
// submission, or nil when the form is not ready.
func (s *Shared) Submit() tea.Cmd {
	// Submitting settles the amount at once so the swap prices exactly what
	// was typed, even inside the debounce window.
	s.Amount.Stop()
	s.Session.SettleAmount(s.Session.AmountText())

	intent, err := s.Session.BeginSubmit()
	if err != nil {
		if errors.Is(err, submit.ErrInFlight) {
			s.Failure = "a swap is already in progress"
		}
		return nil
	}
	s.Notice = ""
	s.Failure = ""
	sub, ctx := s.Submitter, s.BaseCtx
	return func() tea.Msg {
		receipt, err := sub.Submit(ctx, intent)
		return ui.SubmitDoneMsg{Receipt: receipt, Err: err}
	}
}

package main

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/session"
	"github.com/rovshanmuradov/swapdemo/internal/submit"
	"github.com/rovshanmuradov/swapdemo/internal/ui"
	"github.com/rovshanmuradov/swapdemo/internal/ui/screen"
)

type staticFetcher string

func (f staticFetcher) Fetch(context.Context) ([]byte, error) { return []byte(f), nil }

func newTestApp(t *testing.T) (*AppModel, *screen.Shared, *ui.Bus) {
	t.Helper()
	bus := ui.NewBus(8)
	shared := screen.NewShared(context.Background(), screen.SharedConfig{
		Session: session.New(50),
		Loader: pricefeed.NewLoader(
			staticFetcher(`{"BTC":50000,"ETH":3000,"SOL":20}`),
			pricefeed.NewNormalizer("", nil),
			nil,
		),
		Submitter:   submit.NewSimulator(time.Millisecond, nil),
		Bus:         bus,
		AmountDelay: 5 * time.Millisecond,
		SearchDelay: 5 * time.Millisecond,
		Logger:      zap.NewNop(),
	})
	t.Cleanup(func() {
		shared.Amount.Stop()
		shared.Search.Stop()
	})

	app := NewAppModel(shared, bus)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app.Update(shared.LoadFeed()())
	require.Equal(t, screen.FeedReady, shared.Feed)
	return app, shared, bus
}

func typeText(app *AppModel, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestAppInitializingView(t *testing.T) {
	bus := ui.NewBus(1)
	shared := screen.NewShared(context.Background(), screen.SharedConfig{
		Session:   session.New(50),
		Submitter: submit.NewSimulator(time.Millisecond, nil),
		Bus:       bus,
	})
	app := NewAppModel(shared, bus)
	assert.Equal(t, "Initializing...", app.View())
}

func TestAppAmountSettlesThroughBus(t *testing.T) {
	app, shared, bus := newTestApp(t)

	typeText(app, "2")
	assert.Equal(t, "2", shared.Session.AmountText())

	msg := bus.Listen()()
	_, cmd := app.Update(msg)
	assert.NotNil(t, cmd, "listener is re-armed")
	assert.Equal(t, 2.0, shared.Session.SettledAmount())
	assert.Contains(t, app.View(), "33.333333")
}

func TestAppNavigation(t *testing.T) {
	app, shared, _ := newTestApp(t)

	app.Update(ui.RouterMsg{To: ui.RoutePickOut})
	assert.Equal(t, 2, app.router.Depth())
	assert.Contains(t, app.View(), "Swap to")

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "SOL", shared.Session.TokenOut().Symbol)

	app.Update(ui.BackMsg{})
	assert.Equal(t, 1, app.router.Depth())

	app.Update(ui.RouterMsg{To: ui.RouteSettings})
	assert.Contains(t, app.View(), "Slippage tolerance")
	app.Update(ui.BackMsg{})
	assert.Equal(t, 1, app.router.Depth())
}

func TestAppQuit(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUIFactoryRebuildsBusPerRun(t *testing.T) {
	f := &uiFactory{
		ctx: context.Background(),
		cfg: screen.SharedConfig{
			Session: session.New(50),
			Loader: pricefeed.NewLoader(
				staticFetcher(`{"BTC":50000,"ETH":3000}`),
				pricefeed.NewNormalizer("", nil),
				nil,
			),
			Submitter:   submit.NewSimulator(time.Millisecond, nil),
			AmountDelay: 5 * time.Millisecond,
			SearchDelay: 5 * time.Millisecond,
		},
		busSize: 4,
	}

	crashed := f.build()
	pending := crashed.shared.Amount.Set("1")

	restarted := f.build()
	t.Cleanup(func() {
		restarted.shared.Amount.Stop()
		restarted.shared.Search.Stop()
	})
	assert.NotSame(t, crashed.bus, restarted.bus)
	assert.Same(t, crashed.shared.Session, restarted.shared.Session, "form state survives a restart")
	assert.False(t, pending.Pending(), "old run's debouncers are stopped")

	restarted.shared.Session.SetAmountText("2")
	restarted.shared.Amount.Set("2")
	msg := restarted.bus.Listen()()
	assert.Equal(t, ui.BusMsg{Msg: ui.AmountSettledMsg{Text: "2"}}, msg)
}

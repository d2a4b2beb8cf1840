package main

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/swapdemo/internal/ui"
	"github.com/rovshanmuradov/swapdemo/internal/ui/router"
	"github.com/rovshanmuradov/swapdemo/internal/ui/screen"
)

// AppModel is the top-level tea model: it feeds bus deliveries and shared
// state changes into the screen stack.
type AppModel struct {
	shared *screen.Shared
	bus    *ui.Bus
	router *router.Router
	sized  bool
}

func NewAppModel(shared *screen.Shared, bus *ui.Bus) *AppModel {
	build := func(route ui.Route) router.Screen {
		switch route {
		case ui.RoutePickIn, ui.RoutePickOut:
			return screen.NewPickerScreen(shared, route)
		case ui.RouteSettings:
			return screen.NewSettingsScreen(shared)
		}
		return nil
	}
	return &AppModel{
		shared: shared,
		bus:    bus,
		router: router.New(screen.NewSwapScreen(shared), build),
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Init(), m.shared.LoadFeed(), m.bus.Listen())
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var relisten tea.Cmd
	if bm, ok := msg.(ui.BusMsg); ok {
		msg = bm.Msg
		relisten = m.bus.Listen()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.sized = msg.Width > 0 && msg.Height > 0
	case tea.KeyMsg:
		if key.Matches(msg, m.shared.KeyMap.Quit) {
			m.shared.Amount.Stop()
			m.shared.Search.Stop()
			return m, tea.Quit
		}
	}

	m.shared.Handle(msg)
	return m, tea.Batch(relisten, m.router.Update(msg))
}

func (m *AppModel) View() string {
	if !m.sized {
		return "Initializing..."
	}
	return m.router.View()
}

// uiFactory builds the model for each (re)start of the program. Every run
// gets its own bus and debouncers: the listener of a crashed run stays
// parked on its old bus and would otherwise swallow the next settle.
type uiFactory struct {
	ctx     context.Context
	cfg     screen.SharedConfig
	busSize int
	current *screen.Shared
}

func (f *uiFactory) build() *AppModel {
	if f.current != nil {
		f.current.Amount.Stop()
		f.current.Search.Stop()
	}
	cfg := f.cfg
	cfg.Bus = ui.NewBus(f.busSize)
	f.current = screen.NewShared(f.ctx, cfg)
	return NewAppModel(f.current, cfg.Bus)
}

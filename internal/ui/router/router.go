// Package router keeps the screen stack of the TUI. The swap form sits at
// the bottom and is never popped; pickers and settings are pushed on top.
package router

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/swapdemo/internal/ui"
)

// Screen is one page of the TUI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Factory builds the screen for a route, or returns nil for routes that
// cannot be pushed.
type Factory func(route ui.Route) Screen

type Router struct {
	stack  []Screen
	build  Factory
	width  int
	height int
}

func New(root Screen, build Factory) *Router {
	return &Router{stack: []Screen{root}, build: build}
}

func (r *Router) Init() tea.Cmd { return r.top().Init() }

// Update handles navigation and sizing itself and forwards everything else
// to the top screen only.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ui.RouterMsg:
		if r.build == nil {
			return nil
		}
		next := r.build(msg.To)
		if next == nil {
			return nil
		}
		return r.push(next)
	case ui.BackMsg:
		return r.pop()
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
		r.top().SetSize(r.width, r.height)
		return nil
	}

	i := len(r.stack) - 1
	var cmd tea.Cmd
	r.stack[i], cmd = r.stack[i].Update(msg)
	return cmd
}

func (r *Router) View() string { return r.top().View() }

// Depth is 1 while only the root is shown.
func (r *Router) Depth() int { return len(r.stack) }

func (r *Router) push(s Screen) tea.Cmd {
	s.SetSize(r.width, r.height)
	r.stack = append(r.stack, s)
	return s.Init()
}

// pop returns to the previous screen and re-inits it so it picks up state
// changed underneath (a token picked, slippage edited).
func (r *Router) pop() tea.Cmd {
	if len(r.stack) == 1 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	prev := r.top()
	prev.SetSize(r.width, r.height)
	return prev.Init()
}

func (r *Router) top() Screen { return r.stack[len(r.stack)-1] }

// Back pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return ui.BackMsg{} }
}

// Navigate pushes the screen for route.
func Navigate(route ui.Route) tea.Cmd {
	return func() tea.Msg { return ui.RouterMsg{To: route} }
}

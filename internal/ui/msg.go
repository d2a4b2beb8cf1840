package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// BackMsg asks the router to pop the current screen
type BackMsg struct{}

// FeedLoadedMsg carries a completed price feed load
type FeedLoadedMsg struct {
	Result pricefeed.LoadResult
}

// FeedErrorMsg carries a failed price feed load and the generation that failed
type FeedErrorMsg struct {
	Generation uint64
	Err        error
}

// AmountSettledMsg is emitted once the amount field stops changing
type AmountSettledMsg struct {
	Text string
}

// QuerySettledMsg is emitted once the search field stops changing
type QuerySettledMsg struct {
	Text string
}

// SubmitDoneMsg reports the end of a simulated submission
type SubmitDoneMsg struct {
	Receipt types.Receipt
	Err     error
}

// BusMsg wraps a message delivered through the Bus
type BusMsg struct {
	Msg tea.Msg
}

// Bus carries messages produced outside the tea loop (debounce timers)
// into it.
type Bus struct {
	ch chan tea.Msg
}

// NewBus creates a bus with the given buffer size
func NewBus(size int) *Bus {
	return &Bus{ch: make(chan tea.Msg, size)}
}

// Publish enqueues msg without blocking; it reports false when the bus is full
func (b *Bus) Publish(msg tea.Msg) bool {
	select {
	case b.ch <- msg:
		return true
	default:
		return false
	}
}

// Listen returns a tea.Cmd that waits for the next bus message. Issue it
// again after each BusMsg to keep exactly one listener running.
func (b *Bus) Listen() tea.Cmd {
	return func() tea.Msg {
		return BusMsg{Msg: <-b.ch}
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteSwap Route = iota
	RoutePickIn
	RoutePickOut
	RouteSettings
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteSwap:
		return "swap"
	case RoutePickIn:
		return "pick_in"
	case RoutePickOut:
		return "pick_out"
	case RouteSettings:
		return "settings"
	default:
		return "unknown"
	}
}

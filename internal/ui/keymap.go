package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	// Swap form
	PickIn    key.Binding
	PickOut   key.Binding
	SwapSides key.Binding
	Settings  key.Binding
	Reload    key.Binding
	Submit    key.Binding

	// Settings
	Increase key.Binding
	Decrease key.Binding
}

// DefaultKeyMap returns the default key bindings. Form actions use ctrl
// chords so every printable key reaches the text inputs.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),

		PickIn: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "from token"),
		),
		PickOut: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "to token"),
		),
		SwapSides: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "flip"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "slippage"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload prices"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "swap"),
		),

		Increase: key.NewBinding(
			key.WithKeys("up", "+"),
			key.WithHelp("↑/+", "+5 bps"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("down", "-"),
			key.WithHelp("↓/-", "-5 bps"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.PickIn, k.PickOut, k.SwapSides, k.Settings, k.Quit}
}

// FullHelp returns extended help text for the current context
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.PickIn, k.PickOut, k.SwapSides},
		{k.Settings, k.Reload, k.Back, k.Quit},
	}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteSwap:
		return k.ShortHelp()
	case RoutePickIn, RoutePickOut:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Back}
	case RouteSettings:
		return []key.Binding{k.Increase, k.Decrease, k.Enter, k.Back}
	default:
		return []key.Binding{k.Quit}
	}
}

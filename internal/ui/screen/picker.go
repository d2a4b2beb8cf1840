package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/quote"
	"github.com/rovshanmuradov/swapdemo/internal/ui"
	"github.com/rovshanmuradov/swapdemo/internal/ui/router"
	"github.com/rovshanmuradov/swapdemo/internal/ui/style"
)

const pickerRows = 10

// PickerScreen selects the token for one side of the swap.
type PickerScreen struct {
	shared *Shared
	side   ui.Route
	width  int
	height int

	search textinput.Model
	cursor int
	offset int
	help   help.Model
}

// NewPickerScreen creates a picker for ui.RoutePickIn or ui.RoutePickOut.
func NewPickerScreen(shared *Shared, side ui.Route) *PickerScreen {
	ti := textinput.New()
	ti.Placeholder = "search symbol"
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 20

	return &PickerScreen{
		shared: shared,
		side:   side,
		search: ti,
		help:   help.New(),
	}
}

func (p *PickerScreen) Init() tea.Cmd {
	p.search.SetValue(p.shared.Session.Query())
	p.search.Focus()
	p.clampCursor()
	return textinput.Blink
}

func (p *PickerScreen) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.help.Width = width
}

func (p *PickerScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	km := p.shared.KeyMap

	switch msg := msg.(type) {
	case ui.QuerySettledMsg:
		p.cursor, p.offset = 0, 0
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, km.Back):
			return p, router.Back()
		case key.Matches(msg, km.Up):
			p.move(-1)
			return p, nil
		case key.Matches(msg, km.Down):
			p.move(1)
			return p, nil
		case key.Matches(msg, km.Enter):
			return p, p.pick()
		}
	}

	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if after := p.search.Value(); after != before {
		p.shared.Session.SetQuery(after)
		p.shared.Search.Set(after)
	}
	return p, cmd
}

func (p *PickerScreen) pick() tea.Cmd {
	p.clampCursor()
	results := p.shared.Session.Results()
	if len(results) == 0 {
		return nil
	}
	sym := results[p.cursor].Symbol
	if p.side == ui.RoutePickIn {
		p.shared.Session.PickIn(sym)
	} else {
		p.shared.Session.PickOut(sym)
	}
	p.shared.Logger.Debug("Token picked",
		zap.String("side", p.side.String()),
		zap.String("symbol", sym))
	return router.Back()
}

func (p *PickerScreen) move(delta int) {
	p.cursor += delta
	p.clampCursor()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerRows {
		p.offset = p.cursor - pickerRows + 1
	}
}

func (p *PickerScreen) clampCursor() {
	n := len(p.shared.Session.Results())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.offset > p.cursor {
		p.offset = p.cursor
	}
}

func (p *PickerScreen) View() string {
	title := "Swap from"
	if p.side == ui.RoutePickOut {
		title = "Swap to"
	}

	var b strings.Builder
	b.WriteString(style.TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(p.search.View())
	b.WriteString("\n\n")

	results := p.shared.Session.Results()
	p.clampCursor()
	if len(results) == 0 {
		b.WriteString(style.LabelStyle.Render("no tokens match"))
	}
	end := min(p.offset+pickerRows, len(results))
	for i := p.offset; i < end; i++ {
		t := results[i]
		line := fmt.Sprintf("%s %-8s %s",
			style.GlyphStyle.Render(pricefeed.Glyph(t.Symbol)),
			t.Symbol,
			style.LabelStyle.Render(quote.FormatUSD(t.Price)))
		if i == p.cursor {
			line = style.SelectedStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(results) > pickerRows {
		b.WriteString(style.LabelStyle.Render(fmt.Sprintf("%d/%d", p.cursor+1, len(results))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.help.ShortHelpView(p.shared.KeyMap.ContextualHelp(p.side)))
	return b.String()
}

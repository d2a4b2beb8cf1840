package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/types"
	"github.com/rovshanmuradov/swapdemo/internal/ui"
	"github.com/rovshanmuradov/swapdemo/internal/ui/router"
	"github.com/rovshanmuradov/swapdemo/internal/ui/style"
)

// slippageStep is the increment applied by one key press.
const slippageStep = 5

// SettingsScreen edits the slippage tolerance.
type SettingsScreen struct {
	shared *Shared
	draft  int
	help   help.Model
}

func NewSettingsScreen(shared *Shared) *SettingsScreen {
	return &SettingsScreen{
		shared: shared,
		draft:  shared.Session.Slippage(),
		help:   help.New(),
	}
}

func (s *SettingsScreen) Init() tea.Cmd { return nil }

func (s *SettingsScreen) SetSize(width, _ int) { s.help.Width = width }

func (s *SettingsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	keys := s.shared.KeyMap
	switch {
	case key.Matches(km, keys.Increase):
		s.draft = types.ClampSlippageBps(s.draft + slippageStep)
	case key.Matches(km, keys.Decrease):
		s.draft = types.ClampSlippageBps(s.draft - slippageStep)
	case key.Matches(km, keys.Enter):
		applied := s.shared.Session.SetSlippage(s.draft)
		s.shared.Logger.Info("Slippage updated", zap.Int("bps", applied))
		return s, router.Back()
	case key.Matches(km, keys.Back):
		return s, router.Back()
	}
	return s, nil
}

func (s *SettingsScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Slippage tolerance"))
	b.WriteString("\n")
	b.WriteString(style.PanelStyle.Render(fmt.Sprintf("%s  %s",
		style.ValueStyle.Render(fmt.Sprintf("%.2f%%", types.SlippagePercent(s.draft))),
		style.LabelStyle.Render(fmt.Sprintf("(%d bps, %d-%d)", s.draft, types.MinSlippageBps, types.MaxSlippageBps)))))
	b.WriteString("\n")
	b.WriteString(s.help.ShortHelpView(s.shared.KeyMap.ContextualHelp(ui.RouteSettings)))
	return b.String()
}

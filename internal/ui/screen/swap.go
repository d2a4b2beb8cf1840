package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/quote"
	"github.com/rovshanmuradov/swapdemo/internal/types"
	"github.com/rovshanmuradov/swapdemo/internal/ui"
	"github.com/rovshanmuradov/swapdemo/internal/ui/router"
	"github.com/rovshanmuradov/swapdemo/internal/ui/style"
)

// SwapScreen is the swap form: amount entry, token selectors, the live
// quote and the submit control with its inline verdict.
type SwapScreen struct {
	shared *Shared
	width  int
	height int

	amount  textinput.Model
	spinner spinner.Model
	help    help.Model
}

// NewSwapScreen creates the root screen.
func NewSwapScreen(shared *Shared) *SwapScreen {
	ti := textinput.New()
	ti.Placeholder = "0.0"
	ti.Prompt = ""
	ti.CharLimit = 32
	ti.Width = 24
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style.SelectedStyle

	return &SwapScreen{
		shared:  shared,
		amount:  ti,
		spinner: sp,
		help:    help.New(),
	}
}

// Init implements router.Screen.
func (s *SwapScreen) Init() tea.Cmd {
	s.amount.SetValue(s.shared.Session.AmountText())
	s.amount.Focus()
	return tea.Batch(textinput.Blink, s.spinner.Tick)
}

// SetSize implements router.Screen.
func (s *SwapScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.help.Width = width
}

// Update implements router.Screen.
func (s *SwapScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	km := s.shared.KeyMap

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case ui.SubmitDoneMsg:
		s.amount.SetValue(s.shared.Session.AmountText())
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, km.Reload) {
			return s, s.shared.LoadFeed()
		}
		if s.shared.Feed != FeedReady {
			return s, nil
		}
		switch {
		case key.Matches(msg, km.PickIn):
			return s, router.Navigate(ui.RoutePickIn)
		case key.Matches(msg, km.PickOut):
			return s, router.Navigate(ui.RoutePickOut)
		case key.Matches(msg, km.Settings):
			return s, router.Navigate(ui.RouteSettings)
		case key.Matches(msg, km.SwapSides):
			s.shared.Session.SwapSides()
			return s, nil
		case key.Matches(msg, km.Submit):
			return s, s.shared.Submit()
		}
	}

	before := s.amount.Value()
	var cmd tea.Cmd
	s.amount, cmd = s.amount.Update(msg)
	if after := s.amount.Value(); after != before {
		s.shared.Session.SetAmountText(after)
		s.shared.Amount.Set(after)
	}
	return s, cmd
}

// View implements router.Screen.
func (s *SwapScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Swap"))
	b.WriteString("\n")

	switch s.shared.Feed {
	case FeedLoading:
		b.WriteString(s.spinner.View() + " Loading prices...")
	case FeedFailed:
		b.WriteString(style.BannerStyle.Render(fmt.Sprintf(
			"Could not load prices: %v\nPress ctrl+r to reload.", s.shared.FeedErr)))
	default:
		b.WriteString(style.PanelStyle.Render(s.formView()))
	}

	b.WriteString("\n")
	b.WriteString(s.help.ShortHelpView(s.shared.KeyMap.ContextualHelp(ui.RouteSwap)))
	return b.String()
}

func (s *SwapScreen) formView() string {
	sess := s.shared.Session
	q := sess.Quote()
	in, out := sess.TokenIn(), sess.TokenOut()

	rows := []string{
		s.tokenRow("From", in, fmt.Sprintf("balance %s", quote.FormatAmount(sess.Balance(), 2))),
		lipgloss.JoinHorizontal(lipgloss.Top,
			style.LabelStyle.Render("Amount  "),
			s.amount.View(),
			style.LabelStyle.Render("  ≈ "+quote.FormatUSD(q.InputUSD)),
		),
		"",
		s.tokenRow("To", out, ""),
		lipgloss.JoinHorizontal(lipgloss.Top,
			style.LabelStyle.Render("Receive "),
			style.ValueStyle.Render(quote.FormatAmount(q.AmountOut, 6)),
			style.LabelStyle.Render("  ≈ "+quote.FormatUSD(q.OutputUSD)),
		),
		"",
		style.LabelStyle.Render("Rate         ") + s.rateView(q.Rate),
		style.LabelStyle.Render("Slippage     ") + fmt.Sprintf("%.2f%%", types.SlippagePercent(sess.Slippage())),
		style.LabelStyle.Render("Min received ") + quote.FormatAmount(q.MinReceived, 6) + " " + symbol(out),
		"",
		s.submitView(),
	}
	if s.shared.Notice != "" {
		rows = append(rows, style.SuccessStyle.Render(s.shared.Notice))
	}
	if s.shared.Failure != "" {
		rows = append(rows, style.ErrorStyle.Render(s.shared.Failure))
	}
	return strings.Join(rows, "\n")
}

func (s *SwapScreen) tokenRow(label string, t *types.Token, extra string) string {
	name := style.LabelStyle.Render("select a token")
	if t != nil {
		name = style.GlyphStyle.Render(pricefeed.Glyph(t.Symbol)) + " " + style.ValueStyle.Render(t.Symbol)
	}
	row := style.LabelStyle.Render(fmt.Sprintf("%-8s", label)) + name
	if extra != "" {
		row += style.LabelStyle.Render("  " + extra)
	}
	return row
}

func (s *SwapScreen) rateView(rate float64) string {
	in, out := s.shared.Session.TokenIn(), s.shared.Session.TokenOut()
	if in == nil || out == nil {
		return quote.Placeholder
	}
	return quote.FormatRate(in.Symbol, out.Symbol, rate)
}

func (s *SwapScreen) submitView() string {
	sess := s.shared.Session
	if sess.Submitting() {
		return s.spinner.View() + " Swapping..."
	}
	v := sess.Verdict()
	if v.OK {
		return style.ButtonStyle.Render("Swap")
	}
	return style.DisabledButtonStyle.Render("Swap") + "  " + style.WarningStyle.Render(v.Reason)
}

func symbol(t *types.Token) string {
	if t == nil {
		return ""
	}
	return t.Symbol
}

package style

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#00E5FF")
	swapPop = lipgloss.Color("#FF1B6B")
	caution = lipgloss.Color("#FFB500")
	good    = lipgloss.Color("#2AFFAA")
	bad     = lipgloss.Color("#FF5555")
	surface = lipgloss.Color("#262831")
	muted   = lipgloss.Color("#6C7280")
	text    = lipgloss.Color("#ECEFF4")
	dimText = lipgloss.Color("#B4BCC8")
)

var (
	TitleStyle    = lipgloss.NewStyle().Foreground(accent).Bold(true).MarginBottom(1)
	PanelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(1, 2)
	LabelStyle    = lipgloss.NewStyle().Foreground(muted)
	ValueStyle    = lipgloss.NewStyle().Foreground(text).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)

	// GlyphStyle renders the two-letter token badge used in place of icons.
	GlyphStyle = lipgloss.NewStyle().Foreground(surface).Background(swapPop).Bold(true).Padding(0, 1)

	ErrorStyle   = lipgloss.NewStyle().Foreground(bad).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(caution)
	SuccessStyle = lipgloss.NewStyle().Foreground(good).Bold(true)
	BannerStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(bad).Foreground(bad).Padding(1, 2)

	ButtonStyle         = lipgloss.NewStyle().Foreground(surface).Background(good).Bold(true).Padding(0, 2)
	DisabledButtonStyle = lipgloss.NewStyle().Foreground(dimText).Background(surface).Padding(0, 2)
)

package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed       = lipgloss.Color("#ff5555")
	colorGreen     = lipgloss.Color("#50fa7b")
	colorYellow    = lipgloss.Color("#f1fa8c")
	colorBlue      = lipgloss.Color("#8be9fd")
	colorPurple    = lipgloss.Color("#bd93f9")
	colorDim       = lipgloss.Color("#6272a4")
	colorBgLight   = lipgloss.Color("#343746")
	colorFg        = lipgloss.Color("#f8f8f2")
	colorOrange    = lipgloss.Color("#ffb86c")
	colorBorder    = lipgloss.Color("#44475a")
	colorHighlight = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	// Card styles
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorOrange).
				Padding(0, 1)

	// Per-kind card titles
	generationTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	snippetTitleStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	commentaryTitleStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Bold(true)

	metricsTitleStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Bold(true)

	// Central panel
	centralStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPurple).
			Padding(0, 1)

	centralEmptyStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorRed).
				Foreground(colorDim).
				Padding(0, 1)

	queryStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	metricStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	metricHighlightStyle = lipgloss.NewStyle().
				Foreground(colorOrange).
				Bold(true)

	gradeStyle = lipgloss.NewStyle().
			Foreground(colorOrange).
			Bold(true)

	// Overlays
	listItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	listSelectedStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Background(colorHighlight).
				Bold(true)

	overlayHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true).
				Padding(0, 0, 1, 0)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	// Help
	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

func titleStyleFor(kind string) lipgloss.Style {
	switch kind {
	case "generation":
		return generationTitleStyle
	case "snippet":
		return snippetTitleStyle
	case "commentary":
		return commentaryTitleStyle
	default:
		return metricsTitleStyle
	}
}

package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorAccent  = lipgloss.Color("208") // Orange
	ColorHeader  = lipgloss.Color("63")  // Purple
	ColorSubtle  = lipgloss.Color("244") // Gray
	ColorError   = lipgloss.Color("196") // Red
	ColorPrice   = lipgloss.Color("34")  // Green
	ColorBorder  = lipgloss.Color("238")
	ColorNeutral = lipgloss.Color("252")
)

// Layout constants.
const (
	defaultWidth  = 80
	defaultHeight = 24
	minWidth      = 40
	borderPadding = 2
	footerHeight  = 2
)

//nolint:gochecknoglobals // Lip Gloss styles are shared, immutable presentation values.
var (
	KickerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorHeader).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorHeader).
			Bold(true).
			Underline(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorNeutral).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	PriceStyle = lipgloss.NewStyle().
			Foreground(ColorPrice).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			MarginTop(1)
)

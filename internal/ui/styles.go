package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorBlue    = lipgloss.Color("#3B82F6")
	ColorOrange  = lipgloss.Color("#F59E0B")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	UserLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	BotLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	LoadingStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorGray)

	MatchBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	NoMatchBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	ClipBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	PlayingBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	CheckOnStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	CheckOffStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	ProgressFillStyle = lipgloss.NewStyle().
				Foreground(ColorBlue)

	ProgressProcStyle = lipgloss.NewStyle().
				Foreground(ColorOrange)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)
)

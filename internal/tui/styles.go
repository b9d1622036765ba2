package tui

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor = lipgloss.Color("#4F46E5")
	ErrorColor   = lipgloss.Color("#DC2626")
	MutedColor   = lipgloss.Color("#626262")
	TextColor    = lipgloss.Color("#FFFFFF")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Bold(true)

	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	errorStyle = lipgloss.NewStyle().Foreground(ErrorColor)

	optionStyle = lipgloss.NewStyle().Foreground(MutedColor)

	selectedOptionStyle = lipgloss.NewStyle().Foreground(TextColor).Background(PrimaryColor).Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(MutedColor).
			Padding(0, 3)

	focusedButtonStyle = buttonStyle.Background(PrimaryColor).Bold(true)

	summaryTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

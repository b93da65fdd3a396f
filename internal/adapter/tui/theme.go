package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles used by the form.
type Theme struct {
	Title      lipgloss.Style
	Label      lipgloss.Style
	FocusLabel lipgloss.Style
	Error      lipgloss.Style
	Pending    lipgloss.Style
	Price      lipgloss.Style
	Detail     lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
	Frame      lipgloss.Style
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")),
	Label:      lipgloss.NewStyle().Width(6).Foreground(lipgloss.Color("#a9b1d6")),
	FocusLabel: lipgloss.NewStyle().Width(6).Bold(true).Foreground(lipgloss.Color("#e0af68")),
	Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
	Pending:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#565f89")),
	Price:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9ece6a")),
	Detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6")),
	HelpKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")),
	HelpDesc:   lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
	Frame:      lipgloss.NewStyle().Padding(1, 2),
}

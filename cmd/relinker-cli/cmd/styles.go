package cmd

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")) // Green
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")) // Amber
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")) // Gray
)

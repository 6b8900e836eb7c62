package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Result rows
	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowMatched = lipgloss.NewStyle().
			Foreground(Secondary)

	RowUnmatched = lipgloss.NewStyle().
			Foreground(Warning)

	Location = lipgloss.NewStyle().
			Foreground(Muted)

	// Status line
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary)

	StatusProgress = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Error banner shown above results without discarding them
	Banner = lipgloss.NewStyle().
		Foreground(White).
		Background(Error).
		Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(Muted)

	Checkbox        = "[ ] "
	CheckboxChecked = "[x] "
)

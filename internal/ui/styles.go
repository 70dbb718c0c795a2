package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for poor scores and errors
	colorWarning = lipgloss.Color("#FFD93D") // Yellow for middling scores
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Score band styles
	scoreHighStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	scoreMidStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	scoreLowStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Section header styles
	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Padding(0, 1).
				MarginTop(1)

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			MarginBottom(1)

	focusedFieldStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

// scoreStyle colours a percentage by band
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return scoreHighStyle
	case score >= 40:
		return scoreMidStyle
	default:
		return scoreLowStyle
	}
}

package app

import "github.com/charmbracelet/lipgloss"

var (
	borderColor = lipgloss.Color("240")
	accentColor = lipgloss.Color("39")
	adColor     = lipgloss.Color("214")
	mutedColor  = lipgloss.Color("245")

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleFrom = lipgloss.Color("#00afff")
	titleTo   = lipgloss.Color("#ffaf00")

	adStyle    = lipgloss.NewStyle().Bold(true).Foreground(adColor)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	progressFilledStyle = lipgloss.NewStyle().Foreground(accentColor)
	progressAdStyle     = lipgloss.NewStyle().Foreground(adColor)
	progressEmptyStyle  = lipgloss.NewStyle().Foreground(borderColor)
)

package chat

import "github.com/charmbracelet/lipgloss"

var (
	metaColor     = lipgloss.Color("242")
	selectedColor = lipgloss.Color("39")
	accentColor   = lipgloss.Color("212")
	errorColor    = lipgloss.Color("196")

	headerStyle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	metaStyle      = lipgloss.NewStyle().Foreground(metaColor)
	selectedStyle  = lipgloss.NewStyle().Foreground(selectedColor).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(errorColor)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(metaColor).Padding(0, 1)
	indicatorStyle = lipgloss.NewStyle().Foreground(accentColor)
)

package rnbokit

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	cmdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	successIcon = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")
	infoIcon    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render("•")
	warnIcon    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("!")
	failIcon    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("✗")
)

package main

import "github.com/charmbracelet/lipgloss"

var (
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardsStyle = lipgloss.NewStyle().Bold(true)
	statStyle  = lipgloss.NewStyle().Faint(true)
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

package screens

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	focusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Italic(true)
)

package cmd

import "github.com/charmbracelet/lipgloss"

// Terminal theme colors (ANSI 0-15)
// These adapt to the user's terminal color scheme
var (
	colorRed         = lipgloss.Color("1")
	colorGreen       = lipgloss.Color("2")
	colorBrightBlack = lipgloss.Color("8")

	enabledStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(colorBrightBlack)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorBrightBlack).Italic(true)
)

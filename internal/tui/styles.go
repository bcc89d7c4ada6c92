package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - counts
	colorYellow = lipgloss.Color("220") // Amber - hints
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel    = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	styleFocused  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Width(10)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleValue    = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleLink     = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleError    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleHint     = lipgloss.NewStyle().Foreground(colorYellow)
	styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleRepo     = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleLanguage = lipgloss.NewStyle().Foreground(colorBlue)
	styleCurrent  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Underline(true)
	styleSpinner  = lipgloss.NewStyle().Foreground(colorCyan)
)

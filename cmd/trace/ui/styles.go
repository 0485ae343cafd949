// Package ui provides the shared lipgloss styles for trace CLI output.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors
var (
	Success     = lipgloss.Color("#8BC34A") // Lime Green
	Destructive = lipgloss.Color("#e53935") // Red
	Warning     = lipgloss.Color("#FFC107") // Yellow
	Info        = lipgloss.Color("#2196F3") // Blue
	Muted       = lipgloss.Color("#6b7280") // Gray
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Info)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Destructive)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	BarStyle     = lipgloss.NewStyle().Foreground(Info)
)

// Bar renders a fixed-width proportional bar for count relative to max.
func Bar(count, max int64, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := int(count * int64(width) / max)
	if filled > width {
		filled = width
	}
	return BarStyle.Render(strings.Repeat("█", filled)) +
		MutedStyle.Render(strings.Repeat("░", width-filled))
}

// Rule renders a horizontal separator line.
func Rule(width int) string {
	return MutedStyle.Render(strings.Repeat("─", width))
}

package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	CodeStyle = lipgloss.NewStyle().
			Foreground(colorError)

	SourceStyle = lipgloss.NewStyle().
			Bold(true)
)

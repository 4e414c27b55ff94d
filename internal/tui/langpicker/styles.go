// ============================================================================
// mdwloc - Localization Compiler and Runtime
// ============================================================================
//
// Package:     langpicker
// Description: Styles for the language preview TUI
// License:     MIT
// ============================================================================

package langpicker

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray

	ColorBgPanel    = lipgloss.Color("#1E293B") // Slate 800
	ColorBgSelected = lipgloss.Color("#3B0764") // Purple 950

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Panel styles
var (
	ListPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	TranslationPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSecondary).
				Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
)

// List item styles
var (
	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgSelected).
				Bold(true).
				PaddingLeft(1)

	ActiveMarkerStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)
)

// Translation table styles
var (
	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Italic(true)
)

// Status and help styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Icons
const (
	IconActive   = "● "
	IconInactive = "  "
	IconCursor   = "▸ "
)

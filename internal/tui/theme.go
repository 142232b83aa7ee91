package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/keydeck/internal/config"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#2ecc71"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff4d4d"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffd75f"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
	colorPurple = lipgloss.AdaptiveColor{Light: "#4b3f72", Dark: "#6f6a7f"}
)

// Style definitions shared by both variants
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorCyan)

	styleTitleUnfocused = lipgloss.NewStyle().
				Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleMatch = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)
)

// Theme holds the styles that differ between the two presentation variants.
// Both variants render the same model; only layout and decoration change.
type Theme struct {
	Name config.Theme

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style

	// Card wraps one binding line; Compact uses a plain row instead
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	FieldLabel   lipgloss.Style
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	Locked       lipgloss.Style

	Deck lipgloss.Style
}

// NewTheme returns the styles of the named variant
func NewTheme(name config.Theme) Theme {
	if name == config.ThemeCompact {
		return compactTheme()
	}
	return cardsTheme()
}

func cardsTheme() Theme {
	return Theme{
		Name: config.ThemeCards,
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(colorGreen).
			Foreground(colorGreen),
		TabInactive: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(colorPurple).
			Foreground(colorGray),
		TabBar: lipgloss.NewStyle(),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(0, 2).
			MarginBottom(0),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorGreen).
			Padding(0, 2),
		FieldLabel: lipgloss.NewStyle().
			Foreground(colorGray).
			Align(lipgloss.Center),
		Field: lipgloss.NewStyle().
			Width(18).
			Align(lipgloss.Center),
		FieldFocused: lipgloss.NewStyle().
			Width(18).
			Align(lipgloss.Center).
			Inherit(styleSelected),
		Locked: lipgloss.NewStyle().
			Foreground(colorGray),
		Deck: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple),
	}
}

func compactTheme() Theme {
	return Theme{
		Name: config.ThemeCompact,
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Inherit(styleSelected),
		TabInactive: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorGray),
		TabBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorGray),
		Card:         lipgloss.NewStyle(),
		CardSelected: lipgloss.NewStyle().Bold(true),
		FieldLabel: lipgloss.NewStyle().
			Foreground(colorGray),
		Field: lipgloss.NewStyle().
			Width(16),
		FieldFocused: lipgloss.NewStyle().
			Width(16).
			Inherit(styleSelected),
		Locked: lipgloss.NewStyle().
			Foreground(colorGray),
		Deck: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorGray),
	}
}

package ui

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): names, highlights
// - Muted (gray): secondary info
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for notetype names and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

var accentColorRe = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// ConfigureTheme applies an accent color override from config. Invalid or
// empty values keep the default palette.
func ConfigureTheme(accent string) {
	if !accentColorRe.MatchString(accent) {
		return
	}
	color := lipgloss.Color(accent)
	Accent = Accent.Foreground(color)
	AccentBold = AccentBold.Foreground(color)
}

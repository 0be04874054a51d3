package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Terminal palette indexes shared by the list, badges and toasts.
const (
	colorAccent  = lipgloss.Color("12")
	colorSuccess = lipgloss.Color("10")
	colorWarning = lipgloss.Color("11")
	colorError   = lipgloss.Color("9")
	colorMuted   = lipgloss.Color("8")
	colorKey     = lipgloss.Color("205")
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	MutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	FooterStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	SelectedStyle = lipgloss.NewStyle().Background(colorMuted).Bold(true)
	KeyBadge      = lipgloss.NewStyle().Foreground(colorKey).Bold(true)
	VerifiedBadge = lipgloss.NewStyle().Foreground(colorSuccess)
	ActiveToggle  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	SpinnerStyle  = lipgloss.NewStyle().Foreground(colorKey)
)

// Toggle renders a filter label, highlighted when on.
func Toggle(label string, on bool) string {
	if on {
		return ActiveToggle.Render("[x] " + label)
	}
	return MutedStyle.Render("[ ] " + label)
}

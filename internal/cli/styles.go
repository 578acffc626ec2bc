package cli

import (
	"github.com/charmbracelet/lipgloss"

	"freelance-tracker/internal/services"
)

// Styles holds the lipgloss styles used by command output
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Muted    lipgloss.Style
	Value    lipgloss.Style
	OK       lipgloss.Style
	Warning  lipgloss.Style
	Critical lipgloss.Style
}

// DefaultStyles returns the default command output styles
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Value:    lipgloss.NewStyle().Bold(true),
		OK:       lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// stylesFor picks the output styles for the configured display mode
func stylesFor(app *App) Styles {
	if app != nil && app.config != nil && !app.config.Display.Color {
		return PlainStyles()
	}
	return DefaultStyles()
}

// PlainStyles returns styles with no color, for non-TTY output
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Header:   plain,
		Muted:    plain,
		Value:    plain,
		OK:       plain,
		Warning:  plain,
		Critical: plain,
	}
}

// StatusStyle picks the style for a limit status
func (s Styles) StatusStyle(status services.LimitStatus) lipgloss.Style {
	switch status {
	case services.LimitStatusCritical:
		return s.Critical
	case services.LimitStatusWarning:
		return s.Warning
	default:
		return s.OK
	}
}

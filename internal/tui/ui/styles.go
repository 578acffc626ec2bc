package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Rows
	RowSelected lipgloss.Style
	RowNormal   lipgloss.Style
	RowMuted    lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	primary := lipgloss.Color("99")
	secondary := lipgloss.Color("39")
	muted := lipgloss.Color("240")
	success := lipgloss.Color("82")
	warning := lipgloss.Color("214")
	errorColor := lipgloss.Color("196")

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		RowSelected: lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Bold(true),
		RowNormal: lipgloss.NewStyle(),
		RowMuted: lipgloss.NewStyle().
			Foreground(muted),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}

// NewStylesFromRegistry creates a Styles struct using colors from a
// bubbletint registry, mapping theme colors to semantic UI elements.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	primary := r.Purple()
	secondary := r.Cyan()
	muted := r.BrightBlack()
	success := r.Green()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()
	bg := r.Bg()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		RowSelected: lipgloss.NewStyle().
			Background(muted).
			Bold(true),
		RowNormal: lipgloss.NewStyle(),
		RowMuted: lipgloss.NewStyle().
			Foreground(muted),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}

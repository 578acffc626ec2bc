package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the default theme used when no theme is configured
const DefaultTheme = "dracula"

// ThemeProvider manages TUI themes using bubbletint
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider creates a new ThemeProvider with the specified
// initial theme. An empty or unknown name falls back to DefaultTheme.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	allTints := tint.DefaultTints()

	var defaultTint tint.Tint
	for _, t := range allTints {
		if t.ID() == DefaultTheme {
			defaultTint = t
			break
		}
	}
	if defaultTint == nil && len(allTints) > 0 {
		defaultTint = allTints[0]
	}

	registry := tint.NewRegistry(defaultTint, allTints...)
	if initialTheme != "" {
		registry.SetTintID(initialTheme)
	}

	return &ThemeProvider{registry: registry}
}

// SetTheme sets the current theme by name. Returns false when the
// theme does not exist.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// NextTheme cycles to the next theme and returns its name.
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// CurrentName returns the name of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// AvailableThemes returns a sorted list of all available theme names.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns a Styles struct configured for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}

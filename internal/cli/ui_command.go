package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"freelance-tracker/internal/tui"
)

// UICommand handles the ui command
type UICommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute starts the interactive terminal UI
func (c *UICommand) Execute() error {
	model := tui.New(c.app.api, c.app.services)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return c.errorHandler.Handle("run terminal ui", err)
	}
	return nil
}

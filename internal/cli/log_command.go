package cli

import (
	"context"
	"fmt"
	"time"

	"freelance-tracker/internal/services"
)

// LogCommand handles the log command
type LogCommand struct {
	app          *App
	errorHandler *ErrorHandler
	styles       Styles
}

// NewLogCommand creates a new log command handler
func NewLogCommand(app *App) *LogCommand {
	return &LogCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		styles:       stylesFor(app),
	}
}

// Execute logs hours against a client and reports limit usage
func (c *LogCommand) Execute(ctx context.Context, clientName string, hours float64, dateArg, notes string) error {
	date, err := parseDate(dateArg)
	if err != nil {
		return err
	}

	entry, err := c.app.api.CreateTimeEntry(ctx, date, clientName, hours, notes)
	if err != nil {
		return c.errorHandler.Handle("log time", err)
	}

	fmt.Printf("Logged %.2fh for %s on %s\n", entry.Hours, entry.ClientName, entry.Date.Format(c.app.dateFormat()))

	c.reportLimit(ctx, clientName, date)
	return nil
}

// reportLimit prints a limit warning when the client is close to its
// hour limit. Failures here never fail the log itself.
func (c *LogCommand) reportLimit(ctx context.Context, clientName string, month time.Time) {
	client, err := c.app.api.GetClient(ctx, clientName)
	if err != nil {
		return
	}
	usage, err := c.app.services.LimitService.CheckClient(ctx, client, month)
	if err != nil || usage == nil {
		return
	}

	line := fmt.Sprintf("%s: %.1fh of %.1fh used (%.0f%%)", usage.ClientName, usage.Used, usage.Limit, usage.Percent)
	switch usage.Status {
	case services.LimitStatusCritical:
		fmt.Println(c.styles.Critical.Render("LIMIT CRITICAL " + line))
	case services.LimitStatusWarning:
		fmt.Println(c.styles.Warning.Render("limit warning " + line))
	}
}

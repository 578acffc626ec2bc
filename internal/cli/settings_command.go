package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SettingsCommand handles the settings subcommands
type SettingsCommand struct {
	app          *App
	errorHandler *ErrorHandler
	styles       Styles
}

// NewSettingsCommand creates a new settings command handler
func NewSettingsCommand(app *App) *SettingsCommand {
	return &SettingsCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		styles:       stylesFor(app),
	}
}

// Show prints the current settings
func (c *SettingsCommand) Show(ctx context.Context) error {
	settings, err := c.app.api.GetSettings(ctx)
	if err != nil {
		return c.errorHandler.Handle("read settings", err)
	}

	fmt.Printf("Monthly target: %.2f\n", settings.MonthlyTarget)
	fmt.Printf("Work days:      %s\n", formatWeekdays(settings.WorkDays))
	return nil
}

// SettingsSetOptions holds the optional flags for settings set
type SettingsSetOptions struct {
	MonthlyTarget *float64
	WorkDays      *string
}

// Set updates the settings
func (c *SettingsCommand) Set(ctx context.Context, opts SettingsSetOptions) error {
	settings, err := c.app.api.GetSettings(ctx)
	if err != nil {
		return c.errorHandler.Handle("read settings", err)
	}

	if opts.MonthlyTarget != nil {
		settings.MonthlyTarget = *opts.MonthlyTarget
	}
	if opts.WorkDays != nil {
		days, err := parseWeekdays(*opts.WorkDays)
		if err != nil {
			return err
		}
		settings.WorkDays = days
	}

	if err := c.app.api.UpdateSettings(ctx, *settings); err != nil {
		return c.errorHandler.Handle("update settings", err)
	}
	fmt.Println("Settings updated")
	return c.Show(ctx)
}

func formatWeekdays(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

// parseWeekdays parses a comma-separated list of weekday names.
func parseWeekdays(list string) ([]time.Weekday, error) {
	byName := map[string]time.Weekday{
		"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
		"thursday": time.Thursday, "friday": time.Friday,
		"saturday": time.Saturday, "sunday": time.Sunday,
		"mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
		"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday, "sun": time.Sunday,
	}
	var days []time.Weekday
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		day, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("at least one work day is required")
	}
	return days, nil
}

package cli

import (
	"context"
	"fmt"

	"freelance-tracker/internal/services"
)

// CalendarCommand handles the calendar subcommands
type CalendarCommand struct {
	app          *App
	errorHandler *ErrorHandler
	styles       Styles
}

// NewCalendarCommand creates a new calendar command handler
func NewCalendarCommand(app *App) *CalendarCommand {
	return &CalendarCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		styles:       stylesFor(app),
	}
}

// Show prints the month sheet with logged hours and off days
func (c *CalendarCommand) Show(ctx context.Context, monthArg string) error {
	month, err := parseMonth(monthArg)
	if err != nil {
		return err
	}

	sheet, err := c.app.services.CalendarService.GetMonthSheet(ctx, month)
	if err != nil {
		return c.errorHandler.Handle("build calendar", err)
	}

	fmt.Println(c.styles.Title.Render(month.Format("January 2006")))
	for _, cell := range sheet.Cells {
		line := fmt.Sprintf("%s %s", cell.Date.Format("Mon 02"), c.cellSummary(cell))
		switch cell.Kind {
		case services.DayNonWork:
			fmt.Println(c.styles.Warning.Render(line))
		case services.DayWeekend:
			fmt.Println(c.styles.Muted.Render(line))
		default:
			fmt.Println(line)
		}
	}
	fmt.Println(c.styles.Muted.Render(fmt.Sprintf("%d work days", sheet.WorkDayCount)))
	return nil
}

func (c *CalendarCommand) cellSummary(cell services.DayCell) string {
	switch cell.Kind {
	case services.DayNonWork:
		if cell.Reason != "" {
			return "off: " + cell.Reason
		}
		return "off"
	case services.DayWeekend:
		return "-"
	}
	if cell.Hours > 0 {
		return fmt.Sprintf("%.1fh", cell.Hours)
	}
	return ""
}

// MarkOff marks a date as a non-working day
func (c *CalendarCommand) MarkOff(ctx context.Context, dateArg, reason string) error {
	date, err := parseDate(dateArg)
	if err != nil {
		return err
	}
	if err := c.app.api.MarkNonWorkDay(ctx, date, reason); err != nil {
		return c.errorHandler.Handle("mark day off", err)
	}
	fmt.Printf("Marked %s as a non-working day\n", date.Format(c.app.dateFormat()))
	return nil
}

// MarkOn removes a non-working day marking
func (c *CalendarCommand) MarkOn(ctx context.Context, dateArg string) error {
	date, err := parseDate(dateArg)
	if err != nil {
		return err
	}
	if err := c.app.api.UnmarkNonWorkDay(ctx, date); err != nil {
		return c.errorHandler.Handle("unmark day off", err)
	}
	fmt.Printf("%s is a working day again\n", date.Format(c.app.dateFormat()))
	return nil
}

package cli

import (
	"context"
	"fmt"

	"freelance-tracker/internal/domain"
)

// EntriesCommand handles the entries subcommands
type EntriesCommand struct {
	app          *App
	errorHandler *ErrorHandler
	styles       Styles
}

// NewEntriesCommand creates a new entries command handler
func NewEntriesCommand(app *App) *EntriesCommand {
	return &EntriesCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		styles:       stylesFor(app),
	}
}

// List prints the time entries of a month, optionally for one client
func (c *EntriesCommand) List(ctx context.Context, monthArg, clientFilter string) error {
	month, err := parseMonth(monthArg)
	if err != nil {
		return err
	}

	from := month
	to := month.AddDate(0, 1, -1)
	opts := domain.SearchOptions{From: &from, To: &to}
	if clientFilter != "" {
		opts.ClientName = &clientFilter
	}

	entries, err := c.app.api.SearchTimeEntries(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No entries for %s\n", month.Format("January 2006"))
		return nil
	}

	fmt.Println(c.styles.Header.Render(fmt.Sprintf("%4s  %-10s  %-30s %6s  %s", "ID", "DATE", "CLIENT", "HOURS", "NOTES")))
	total := 0.0
	for _, e := range entries {
		fmt.Printf("%4d  %-10s  %-30s %6.2f  %s\n", e.ID, e.Date.Format(c.app.dateFormat()), e.ClientName, e.Hours, e.Notes)
		total += e.Hours
	}
	fmt.Println(c.styles.Muted.Render(fmt.Sprintf("total: %.2fh across %d entries", total, len(entries))))
	return nil
}

// EntryEditOptions holds the optional flags for entries edit
type EntryEditOptions struct {
	Date   *string
	Client *string
	Hours  *float64
	Notes  *string
}

// Edit updates one time entry by ID
func (c *EntriesCommand) Edit(ctx context.Context, id int64, opts EntryEditOptions) error {
	entry, err := c.app.api.GetTimeEntry(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	date := entry.Date
	if opts.Date != nil {
		if date, err = parseDate(*opts.Date); err != nil {
			return err
		}
	}
	clientName := entry.ClientName
	if opts.Client != nil {
		clientName = *opts.Client
	}
	hours := entry.Hours
	if opts.Hours != nil {
		hours = *opts.Hours
	}
	notes := entry.Notes
	if opts.Notes != nil {
		notes = *opts.Notes
	}

	if err := c.app.api.UpdateTimeEntry(ctx, id, date, clientName, hours, notes); err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}
	fmt.Printf("Updated entry %d\n", id)
	return nil
}

// Delete removes one time entry by ID
func (c *EntriesCommand) Delete(ctx context.Context, id int64) error {
	if err := c.app.api.DeleteTimeEntry(ctx, id); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}
	fmt.Printf("Deleted entry %d\n", id)
	return nil
}

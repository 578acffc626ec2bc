package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/errors"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute writes the requested dataset to stdout. The first argument
// selects the format ("format=csv"), the optional second one the
// dataset (entries, clients or invoices; entries is the default).
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "export", "usage: ft export format=csv [entries|clients|invoices]")
	}

	format, found := strings.CutPrefix(args[0], "format=")
	if !found {
		return errors.NewInvalidInputError("format", args[0], "expected format=csv")
	}
	if format != "csv" {
		return errors.NewInvalidInputError("format", format, "only csv is supported")
	}

	dataset := "entries"
	if len(args) > 1 {
		dataset = args[1]
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	switch dataset {
	case "entries":
		return c.exportEntries(ctx, w)
	case "clients":
		return c.exportClients(ctx, w)
	case "invoices":
		return c.exportInvoices(ctx, w)
	default:
		return errors.NewInvalidInputError("dataset", dataset, "expected entries, clients or invoices")
	}
}

func (c *ExportCommand) exportEntries(ctx context.Context, w *csv.Writer) error {
	entries, err := c.app.api.SearchTimeEntries(ctx, domain.SearchOptions{})
	if err != nil {
		return c.errorHandler.Handle("export entries", err)
	}
	clients, err := c.app.api.ListClients(ctx, false)
	if err != nil {
		return c.errorHandler.Handle("export entries", err)
	}

	if err := w.Write([]string{"date", "client_name", "hours", "billing_type", "hourly_rate", "billable", "notes"}); err != nil {
		return err
	}
	for _, row := range entryExportRows(entries, clients) {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// entryExportRows joins time entries with their client's billing setup.
// Hourly entries carry the billed amount, retainer entries are marked
// as not billed per entry.
func entryExportRows(entries []*domain.TimeEntry, clients []*domain.Client) [][]string {
	byName := make(map[string]*domain.Client, len(clients))
	for _, c := range clients {
		byName[c.Name] = c
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		billingType, rate, billable := "", "", ""
		if c, ok := byName[e.ClientName]; ok {
			billingType = string(c.BillingType)
			rate = strconv.FormatFloat(c.HourlyRate, 'f', -1, 64)
			if c.IsHourly() {
				billable = fmt.Sprintf("%.2f", e.Hours*c.HourlyRate)
			} else {
				billable = "not billed"
			}
		}
		rows = append(rows, []string{
			e.Date.Format("2006-01-02"),
			e.ClientName,
			strconv.FormatFloat(e.Hours, 'f', -1, 64),
			billingType,
			rate,
			billable,
			e.Notes,
		})
	}
	return rows
}

func (c *ExportCommand) exportClients(ctx context.Context, w *csv.Writer) error {
	clients, err := c.app.api.ListClients(ctx, false)
	if err != nil {
		return c.errorHandler.Handle("export clients", err)
	}
	if err := w.Write([]string{"client_name", "hourly_rate", "billing_type", "active"}); err != nil {
		return err
	}
	for _, client := range clients {
		row := []string{
			client.Name,
			strconv.FormatFloat(client.HourlyRate, 'f', -1, 64),
			string(client.BillingType),
			strconv.FormatBool(client.Active),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (c *ExportCommand) exportInvoices(ctx context.Context, w *csv.Writer) error {
	invoices, err := c.app.api.SearchInvoices(ctx, domain.SearchOptions{})
	if err != nil {
		return c.errorHandler.Handle("export invoices", err)
	}
	if err := w.Write([]string{"date", "client_name", "amount", "type", "description"}); err != nil {
		return err
	}
	for _, inv := range invoices {
		row := []string{
			inv.Date.Format("2006-01-02"),
			inv.ClientName,
			fmt.Sprintf("%.2f", inv.Amount),
			string(inv.Type),
			inv.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

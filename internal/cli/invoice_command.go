package cli

import (
	"context"
	"fmt"

	"freelance-tracker/internal/domain"
)

// InvoiceCommand handles the invoice subcommands
type InvoiceCommand struct {
	app          *App
	errorHandler *ErrorHandler
	styles       Styles
}

// NewInvoiceCommand creates a new invoice command handler
func NewInvoiceCommand(app *App) *InvoiceCommand {
	return &InvoiceCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		styles:       stylesFor(app),
	}
}

// Add records an invoiced amount against a client
func (c *InvoiceCommand) Add(ctx context.Context, clientName string, amount float64, incomeType, dateArg, description string) error {
	date, err := parseDate(dateArg)
	if err != nil {
		return err
	}

	t := domain.IncomeType(incomeType)
	if incomeType == "" {
		t = domain.IncomeRetainer
	}

	invoice, err := c.app.api.CreateInvoice(ctx, date, clientName, amount, t, description)
	if err != nil {
		return c.errorHandler.Handle("add invoice", err)
	}

	fmt.Printf("Recorded %s invoice of %.2f for %s on %s\n", invoice.Type, invoice.Amount, invoice.ClientName, invoice.Date.Format(c.app.dateFormat()))
	return nil
}

// List prints the invoices of a month, optionally for one client
func (c *InvoiceCommand) List(ctx context.Context, monthArg, clientFilter string) error {
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

	invoices, err := c.app.api.SearchInvoices(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("list invoices", err)
	}

	if len(invoices) == 0 {
		fmt.Printf("No invoices for %s\n", month.Format("January 2006"))
		return nil
	}

	fmt.Println(c.styles.Header.Render(fmt.Sprintf("%4s  %-10s  %-30s %10s  %-12s %s", "ID", "DATE", "CLIENT", "AMOUNT", "TYPE", "DESCRIPTION")))
	total := 0.0
	for _, inv := range invoices {
		fmt.Printf("%4d  %-10s  %-30s %10.2f  %-12s %s\n", inv.ID, inv.Date.Format(c.app.dateFormat()), inv.ClientName, inv.Amount, inv.Type, inv.Description)
		total += inv.Amount
	}
	fmt.Println(c.styles.Muted.Render(fmt.Sprintf("total: %.2f across %d invoices", total, len(invoices))))
	return nil
}

// Delete removes one invoice by ID
func (c *InvoiceCommand) Delete(ctx context.Context, id int64) error {
	if err := c.app.api.DeleteInvoice(ctx, id); err != nil {
		return c.errorHandler.Handle("delete invoice", err)
	}
	fmt.Printf("Deleted invoice %d\n", id)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/repository/csvfile"
)

// ClientCommand handles the client subcommands
type ClientCommand struct {
	app          *App
	errorHandler *ErrorHandler
	styles       Styles
}

// NewClientCommand creates a new client command handler
func NewClientCommand(app *App) *ClientCommand {
	return &ClientCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		styles:       stylesFor(app),
	}
}

// ClientAddOptions holds the flags for client add
type ClientAddOptions struct {
	Rate          float64
	Retainer      bool
	HourLimit     float64
	LimitType     string
	ContractStart string
}

// Add creates a new client
func (c *ClientCommand) Add(ctx context.Context, name string, opts ClientAddOptions) error {
	billingType := domain.BillingHourly
	if opts.Retainer {
		billingType = domain.BillingRetainer
	}

	client := domain.NewClient(name, opts.Rate, billingType)
	if opts.HourLimit > 0 {
		client.HasHourLimit = true
		client.HourLimit = opts.HourLimit
		client.LimitType = domain.LimitType(opts.LimitType)
		if client.LimitType == "" {
			client.LimitType = domain.LimitMonthly
		}
	}
	if opts.ContractStart != "" {
		start, err := parseDate(opts.ContractStart)
		if err != nil {
			return err
		}
		client.ContractStart = &start
	}

	created, err := c.app.api.CreateClient(ctx, client)
	if err != nil {
		return c.errorHandler.Handle("add client", err)
	}

	fmt.Printf("Added client: %s\n", created.String())
	return nil
}

// List prints all clients, or only the active ones
func (c *ClientCommand) List(ctx context.Context, all bool) error {
	clients, err := c.app.api.ListClients(ctx, !all)
	if err != nil {
		return c.errorHandler.Handle("list clients", err)
	}

	if len(clients) == 0 {
		fmt.Println("No clients found")
		return nil
	}

	fmt.Println(c.styles.Header.Render(fmt.Sprintf("%-30s %10s  %-18s %-8s %s", "NAME", "RATE", "BILLING", "ACTIVE", "LIMIT")))
	for _, client := range clients {
		limit := "-"
		if client.HasHourLimit {
			limit = fmt.Sprintf("%.1fh (%s)", client.HourLimit, client.EffectiveLimitType())
		}
		active := "yes"
		if !client.Active {
			active = "no"
		}
		fmt.Printf("%-30s %10.2f  %-18s %-8s %s\n", client.Name, client.HourlyRate, client.BillingType, active, limit)
	}
	return nil
}

// ClientSetOptions holds the optional flags for client set
type ClientSetOptions struct {
	Rate          *float64
	Retainer      *bool
	HourLimit     *float64
	LimitType     *string
	ContractStart *string
}

// Set updates fields on an existing client
func (c *ClientCommand) Set(ctx context.Context, name string, opts ClientSetOptions) error {
	client, err := c.app.api.GetClient(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("update client", err)
	}

	if opts.Rate != nil {
		client.HourlyRate = *opts.Rate
	}
	if opts.Retainer != nil {
		if *opts.Retainer {
			client.BillingType = domain.BillingRetainer
		} else {
			client.BillingType = domain.BillingHourly
		}
	}
	if opts.HourLimit != nil {
		if *opts.HourLimit > 0 {
			client.HasHourLimit = true
			client.HourLimit = *opts.HourLimit
			if client.LimitType == "" || client.LimitType == domain.LimitNone {
				client.LimitType = domain.LimitMonthly
			}
		} else {
			client.HasHourLimit = false
			client.HourLimit = 0
			client.LimitType = domain.LimitNone
		}
	}
	if opts.LimitType != nil {
		client.LimitType = domain.LimitType(*opts.LimitType)
	}
	if opts.ContractStart != nil {
		start, err := parseDate(*opts.ContractStart)
		if err != nil {
			return err
		}
		client.ContractStart = &start
	}

	if err := c.app.api.UpdateClient(ctx, *client); err != nil {
		return c.errorHandler.Handle("update client", err)
	}
	fmt.Printf("Updated client: %s\n", client.String())
	return nil
}

// SetActive activates or deactivates a client
func (c *ClientCommand) SetActive(ctx context.Context, name string, active bool) error {
	if err := c.app.api.SetClientActive(ctx, name, active); err != nil {
		if active {
			return c.errorHandler.Handle("activate client", err)
		}
		return c.errorHandler.Handle("deactivate client", err)
	}
	if active {
		fmt.Printf("Activated client: %s\n", name)
	} else {
		fmt.Printf("Deactivated client: %s\n", name)
	}
	return nil
}

// printWarnings reports skipped data rows on stderr
func printWarnings(warnings []csvfile.ParseWarning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s line %d skipped: %s\n", w.File, w.Line, w.Reason)
	}
}

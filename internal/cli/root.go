package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"freelance-tracker/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    app,
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "ft",
		Short: "A command-line freelance time and income tracker",
		Long: `Freelance Tracker (ft) tracks clients, billable hours, invoiced income
and monthly targets, stored as plain comma-delimited files you can edit by hand.

FEATURES:
  • Manage clients with hourly or retainer billing and optional hour limits
  • Log hours per client and day, with limit warnings at 75% and 90%
  • Record invoiced income for retainer and flat-fee work
  • Monthly dashboard: income vs target, per-client and weekly breakdowns
  • Work day calendar with days off and configurable work weeks
  • Scenario planning for hypothetical extra hours
  • Interactive terminal UI

EXAMPLES:
  ft client add "Acme Corp" --rate 95          # Add an hourly client
  ft log "Acme Corp" 3.5 --notes "API work"    # Log 3.5 hours today
  ft entries                                   # List this month's entries
  ft invoice add "Initech" 2500                # Record an invoiced amount
  ft dashboard                                 # Monthly overview
  ft calendar off 2026-01-02 "public holiday"  # Mark a day off
  ft plan "Acme Corp=12"                       # Project 12 extra hours
  ft export format=csv > entries.csv           # Export to CSV

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults
  The config file lives at the platform config dir under ft/config.toml.

    FT_DATA_DIR                      Data directory (default: ~/.ft)
    FT_VALIDATION_MAX_HOURS_PER_DAY  Max hours per entry (default: 24)
    FT_APP_TIMEOUT                   Application timeout (default: 30s)
    FT_APP_VERBOSE                   Enable verbose output (default: false)
    FT_DEBUG                         Enable debug logging

GETTING HELP:
  ft [command] --help                # Help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if root.config.Application.Verbose {
				printWarnings(root.app.api.Warnings())
			}
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Command returns the underlying cobra command, for tests
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("data-dir", "", "Data directory (overrides FT_DATA_DIR)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides FT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides FT_APP_VERBOSE)")
	flags.Bool("no-color", false, "Disable colored output")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.clientCommand(),
		r.logCommand(),
		r.entriesCommand(),
		r.invoiceCommand(),
		r.dashboardCommand(),
		r.calendarCommand(),
		r.settingsCommand(),
		r.planCommand(),
		r.exportCommand(),
		r.uiCommand(),
	)
}

func (r *RootCommand) clientCommand() *cobra.Command {
	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	var addOpts ClientAddOptions
	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new client",
		Long: `Add a new client with its billing setup.

Examples:
  ft client add "Acme Corp" --rate 95
  ft client add "Initech" --retainer
  ft client add "Globex" --rate 80 --limit 40 --limit-type Monthly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewClientCommand(r.app).Add(ctx, args[0], addOpts)
		},
	}
	addCmd.Flags().Float64Var(&addOpts.Rate, "rate", 0, "Hourly rate")
	addCmd.Flags().BoolVar(&addOpts.Retainer, "retainer", false, "Bill by retainer or flat fee instead of hours")
	addCmd.Flags().Float64Var(&addOpts.HourLimit, "limit", 0, "Hour limit")
	addCmd.Flags().StringVar(&addOpts.LimitType, "limit-type", "", "Limit type: Monthly or \"Contract Total\"")
	addCmd.Flags().StringVar(&addOpts.ContractStart, "contract-start", "", "Contract start date (YYYY-MM-DD)")

	var listAll bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewClientCommand(r.app).List(ctx, listAll)
		},
	}
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include inactive clients")

	setCmd := &cobra.Command{
		Use:   "set [name]",
		Short: "Update a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			var opts ClientSetOptions
			flags := cmd.Flags()
			if flags.Changed("rate") {
				v, _ := flags.GetFloat64("rate")
				opts.Rate = &v
			}
			if flags.Changed("retainer") {
				v, _ := flags.GetBool("retainer")
				opts.Retainer = &v
			}
			if flags.Changed("limit") {
				v, _ := flags.GetFloat64("limit")
				opts.HourLimit = &v
			}
			if flags.Changed("limit-type") {
				v, _ := flags.GetString("limit-type")
				opts.LimitType = &v
			}
			if flags.Changed("contract-start") {
				v, _ := flags.GetString("contract-start")
				opts.ContractStart = &v
			}
			return NewClientCommand(r.app).Set(ctx, args[0], opts)
		},
	}
	setCmd.Flags().Float64("rate", 0, "Hourly rate")
	setCmd.Flags().Bool("retainer", false, "Bill by retainer or flat fee instead of hours")
	setCmd.Flags().Float64("limit", 0, "Hour limit (0 removes the limit)")
	setCmd.Flags().String("limit-type", "", "Limit type: Monthly or \"Contract Total\"")
	setCmd.Flags().String("contract-start", "", "Contract start date (YYYY-MM-DD)")

	activateCmd := &cobra.Command{
		Use:   "activate [name]",
		Short: "Reactivate a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewClientCommand(r.app).SetActive(ctx, args[0], true)
		},
	}

	deactivateCmd := &cobra.Command{
		Use:   "deactivate [name]",
		Short: "Deactivate a client",
		Long:  "Deactivate a client. Its history is kept but no new hours can be logged against it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewClientCommand(r.app).SetActive(ctx, args[0], false)
		},
	}

	clientCmd.AddCommand(addCmd, listCmd, setCmd, activateCmd, deactivateCmd)
	return clientCmd
}

func (r *RootCommand) logCommand() *cobra.Command {
	var dateArg, notes string
	logCmd := &cobra.Command{
		Use:   "log [client] [hours]",
		Short: "Log hours against a client",
		Long: `Log billable hours against an active client.

Examples:
  ft log "Acme Corp" 3.5
  ft log "Acme Corp" 2 --date yesterday --notes "code review"
  ft log "Acme Corp" 8 --date 2026-01-15`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid hours %q, expected a number", args[1])
			}
			return NewLogCommand(r.app).Execute(ctx, args[0], hours, dateArg, notes)
		},
	}
	logCmd.Flags().StringVar(&dateArg, "date", "", "Entry date: YYYY-MM-DD, today or yesterday (default: today)")
	logCmd.Flags().StringVar(&notes, "notes", "", "Notes for the entry")
	return logCmd
}

func (r *RootCommand) entriesCommand() *cobra.Command {
	var monthArg, clientFilter string
	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "List and manage time entries",
		Long: `List the time entries of a month. Entry IDs are positional and
renumber when entries are deleted; list first, then edit or delete.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewEntriesCommand(r.app).List(ctx, monthArg, clientFilter)
		},
	}
	entriesCmd.PersistentFlags().StringVar(&monthArg, "month", "", "Month to show (YYYY-MM, default: current)")
	entriesCmd.Flags().StringVar(&clientFilter, "client", "", "Only show entries for this client")

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			var opts EntryEditOptions
			flags := cmd.Flags()
			if flags.Changed("date") {
				v, _ := flags.GetString("date")
				opts.Date = &v
			}
			if flags.Changed("client") {
				v, _ := flags.GetString("client")
				opts.Client = &v
			}
			if flags.Changed("hours") {
				v, _ := flags.GetFloat64("hours")
				opts.Hours = &v
			}
			if flags.Changed("notes") {
				v, _ := flags.GetString("notes")
				opts.Notes = &v
			}
			return NewEntriesCommand(r.app).Edit(ctx, id, opts)
		},
	}
	editCmd.Flags().String("date", "", "New date (YYYY-MM-DD)")
	editCmd.Flags().String("client", "", "New client name")
	editCmd.Flags().Float64("hours", 0, "New hours")
	editCmd.Flags().String("notes", "", "New notes")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			return NewEntriesCommand(r.app).Delete(ctx, id)
		},
	}

	entriesCmd.AddCommand(editCmd, deleteCmd)
	return entriesCmd
}

func (r *RootCommand) invoiceCommand() *cobra.Command {
	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage invoiced income",
	}

	var incomeType, dateArg, description string
	addCmd := &cobra.Command{
		Use:   "add [client] [amount]",
		Short: "Record an invoiced amount",
		Long: `Record income invoiced to a client.

Types: Retainer (default), "Flat Fee", Bonus, Other

Examples:
  ft invoice add "Initech" 2500
  ft invoice add "Initech" 500 --type Bonus --date 2026-01-31`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q, expected a number", args[1])
			}
			return NewInvoiceCommand(r.app).Add(ctx, args[0], amount, incomeType, dateArg, description)
		},
	}
	addCmd.Flags().StringVar(&incomeType, "type", "", "Income type (default: Retainer)")
	addCmd.Flags().StringVar(&dateArg, "date", "", "Invoice date (default: today)")
	addCmd.Flags().StringVar(&description, "description", "", "Description")

	var monthArg, clientFilter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewInvoiceCommand(r.app).List(ctx, monthArg, clientFilter)
		},
	}
	listCmd.Flags().StringVar(&monthArg, "month", "", "Month to show (YYYY-MM, default: current)")
	listCmd.Flags().StringVar(&clientFilter, "client", "", "Only show invoices for this client")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid invoice id %q", args[0])
			}
			return NewInvoiceCommand(r.app).Delete(ctx, id)
		},
	}

	invoiceCmd.AddCommand(addCmd, listCmd, deleteCmd)
	return invoiceCmd
}

func (r *RootCommand) dashboardCommand() *cobra.Command {
	var monthArg string
	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the monthly overview",
		Long:  "Show income against target, hour limit usage and the per-client breakdown for a month.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewDashboardCommand(r.app).Execute(ctx, monthArg)
		},
	}
	dashboardCmd.Flags().StringVar(&monthArg, "month", "", "Month to show (YYYY-MM, default: current)")
	return dashboardCmd
}

func (r *RootCommand) calendarCommand() *cobra.Command {
	var monthArg string
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the work day calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewCalendarCommand(r.app).Show(ctx, monthArg)
		},
	}
	calendarCmd.Flags().StringVar(&monthArg, "month", "", "Month to show (YYYY-MM, default: current)")

	offCmd := &cobra.Command{
		Use:   "off [date] [reason]",
		Short: "Mark a day as non-working",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			reason := ""
			if len(args) > 1 {
				reason = args[1]
			}
			return NewCalendarCommand(r.app).MarkOff(ctx, args[0], reason)
		},
	}

	onCmd := &cobra.Command{
		Use:   "on [date]",
		Short: "Make a marked day a working day again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewCalendarCommand(r.app).MarkOn(ctx, args[0])
		},
	}

	calendarCmd.AddCommand(offCmd, onCmd)
	return calendarCmd
}

func (r *RootCommand) settingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewSettingsCommand(r.app).Show(ctx)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change the settings",
		Long: `Change the monthly income target or the work week.

Examples:
  ft settings set --target 10000
  ft settings set --workdays mon,tue,wed,thu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			var opts SettingsSetOptions
			flags := cmd.Flags()
			if flags.Changed("target") {
				v, _ := flags.GetFloat64("target")
				opts.MonthlyTarget = &v
			}
			if flags.Changed("workdays") {
				v, _ := flags.GetString("workdays")
				opts.WorkDays = &v
			}
			return NewSettingsCommand(r.app).Set(ctx, opts)
		},
	}
	setCmd.Flags().Float64("target", 0, "Monthly income target")
	setCmd.Flags().String("workdays", "", "Comma-separated work weekdays, e.g. mon,tue,wed,thu,fri")

	settingsCmd.AddCommand(setCmd)
	return settingsCmd
}

func (r *RootCommand) planCommand() *cobra.Command {
	var monthArg string
	planCmd := &cobra.Command{
		Use:   "plan [Client=hours]...",
		Short: "Project the month with hypothetical hours",
		Long: `Combine the month's actuals with hypothetical extra hours and show
the projected outcome. Nothing is saved.

Examples:
  ft plan "Acme Corp=12"
  ft plan --month 2026-02 "Acme Corp=12" "Globex=8"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewPlanCommand(r.app).Execute(ctx, monthArg, args)
		},
	}
	planCmd.Flags().StringVar(&monthArg, "month", "", "Month to project (YYYY-MM, default: current)")
	return planCmd
}

func (r *RootCommand) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export format=csv [dataset]",
		Short: "Export data in the specified format",
		Long: `Export data in the specified format.

Datasets: entries (default), clients, invoices

Example:
  ft export format=csv > entries.csv`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewExportCommand(r.app).Execute(ctx, args)
		},
	}
}

func (r *RootCommand) uiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewUICommand(r.app).Execute()
		},
	}
}

// commandContext builds the context for one command run
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 30 * time.Second // Default timeout
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if dataDir, _ := flags.GetString("data-dir"); dataDir != "" {
		r.config.Storage.Dir = dataDir
	}
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		r.config.Display.Color = false
	}

	return nil
}

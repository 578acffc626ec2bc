package api

import (
	"context"
	"time"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/errors"
	"freelance-tracker/internal/repository/csvfile"
	"freelance-tracker/internal/validation"
)

// API defines the interface for all client, time entry, invoice and
// calendar operations.
type API interface {
	// Client operations
	CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error)
	GetClient(ctx context.Context, name string) (*domain.Client, error)
	ListClients(ctx context.Context, activeOnly bool) ([]*domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
	SetClientActive(ctx context.Context, name string, active bool) error

	// Time entry operations
	CreateTimeEntry(ctx context.Context, date time.Time, clientName string, hours float64, notes string) (*domain.TimeEntry, error)
	GetTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	SearchTimeEntries(ctx context.Context, opts domain.SearchOptions) ([]*domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, id int64, date time.Time, clientName string, hours float64, notes string) error
	DeleteTimeEntry(ctx context.Context, id int64) error

	// Invoice operations
	CreateInvoice(ctx context.Context, date time.Time, clientName string, amount float64, incomeType domain.IncomeType, description string) (*domain.Invoice, error)
	SearchInvoices(ctx context.Context, opts domain.SearchOptions) ([]*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, id int64) error

	// Calendar operations
	MarkNonWorkDay(ctx context.Context, date time.Time, reason string) error
	UnmarkNonWorkDay(ctx context.Context, date time.Time) error
	ListNonWorkDays(ctx context.Context) ([]*domain.NonWorkDay, error)

	// Settings operations
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, settings domain.Settings) error

	// Warnings reports data rows skipped during loads
	Warnings() []csvfile.ParseWarning
}

type apiImpl struct {
	repo               csvfile.Repository
	clientValidator    *validation.ClientValidator
	timeEntryValidator *validation.TimeEntryValidator
	invoiceValidator   *validation.InvoiceValidator
}

// New creates a new API instance.
func New(repo csvfile.Repository) API {
	return &apiImpl{
		repo:               repo,
		clientValidator:    validation.NewClientValidator(),
		timeEntryValidator: validation.NewTimeEntryValidator(),
		invoiceValidator:   validation.NewInvoiceValidator(),
	}
}

// NewWithValidators creates a new API instance with configured validators.
func NewWithValidators(repo csvfile.Repository, cv *validation.ClientValidator, tv *validation.TimeEntryValidator, iv *validation.InvoiceValidator) API {
	return &apiImpl{
		repo:               repo,
		clientValidator:    cv,
		timeEntryValidator: tv,
		invoiceValidator:   iv,
	}
}

// Client operations

func (a *apiImpl) CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	if err := a.clientValidator.ValidateClient(client); err != nil {
		return nil, err
	}

	cleanedName, err := a.clientValidator.GetValidClientName(client.Name)
	if err != nil {
		return nil, err
	}
	client.Name = cleanedName

	if err := a.repo.CreateClient(ctx, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (a *apiImpl) GetClient(ctx context.Context, name string) (*domain.Client, error) {
	if err := a.clientValidator.ValidateClientName(name); err != nil {
		return nil, err
	}
	return a.repo.GetClient(ctx, name)
}

func (a *apiImpl) ListClients(ctx context.Context, activeOnly bool) ([]*domain.Client, error) {
	clients, err := a.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return clients, nil
	}
	active := make([]*domain.Client, 0, len(clients))
	for _, c := range clients {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

func (a *apiImpl) UpdateClient(ctx context.Context, client domain.Client) error {
	if err := a.clientValidator.ValidateClient(client); err != nil {
		return err
	}
	return a.repo.UpdateClient(ctx, &client)
}

func (a *apiImpl) SetClientActive(ctx context.Context, name string, active bool) error {
	client, err := a.GetClient(ctx, name)
	if err != nil {
		return err
	}
	client.Active = active
	return a.repo.UpdateClient(ctx, client)
}

// Time entry operations

func (a *apiImpl) CreateTimeEntry(ctx context.Context, date time.Time, clientName string, hours float64, notes string) (*domain.TimeEntry, error) {
	entry := domain.NewTimeEntry(date, clientName, hours)
	entry.Notes = notes
	if err := a.timeEntryValidator.ValidateTimeEntry(entry); err != nil {
		return nil, err
	}

	// Entries may only be logged against known, active clients
	client, err := a.repo.GetClient(ctx, clientName)
	if err != nil {
		return nil, err
	}
	if !client.Active {
		return nil, errors.NewInvalidInputError("client_name", clientName, "client is inactive")
	}

	if err := a.repo.CreateTimeEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (a *apiImpl) GetTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateEntryID(id); err != nil {
		return nil, err
	}
	return a.repo.GetTimeEntry(ctx, id)
}

func (a *apiImpl) SearchTimeEntries(ctx context.Context, opts domain.SearchOptions) ([]*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateDateRange(opts.From, opts.To); err != nil {
		return nil, err
	}
	return a.repo.SearchTimeEntries(ctx, opts)
}

func (a *apiImpl) UpdateTimeEntry(ctx context.Context, id int64, date time.Time, clientName string, hours float64, notes string) error {
	if err := a.timeEntryValidator.ValidateEntryID(id); err != nil {
		return err
	}
	entry := domain.NewTimeEntry(date, clientName, hours)
	entry.ID = id
	entry.Notes = notes
	if err := a.timeEntryValidator.ValidateTimeEntry(entry); err != nil {
		return err
	}
	if _, err := a.repo.GetClient(ctx, clientName); err != nil {
		return err
	}
	return a.repo.UpdateTimeEntry(ctx, &entry)
}

func (a *apiImpl) DeleteTimeEntry(ctx context.Context, id int64) error {
	if err := a.timeEntryValidator.ValidateEntryID(id); err != nil {
		return err
	}
	return a.repo.DeleteTimeEntry(ctx, id)
}

// Invoice operations

func (a *apiImpl) CreateInvoice(ctx context.Context, date time.Time, clientName string, amount float64, incomeType domain.IncomeType, description string) (*domain.Invoice, error) {
	invoice := domain.NewInvoice(date, clientName, amount, incomeType)
	invoice.Description = description
	if err := a.invoiceValidator.ValidateInvoice(invoice); err != nil {
		return nil, err
	}

	if _, err := a.repo.GetClient(ctx, clientName); err != nil {
		return nil, err
	}

	if err := a.repo.CreateInvoice(ctx, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (a *apiImpl) SearchInvoices(ctx context.Context, opts domain.SearchOptions) ([]*domain.Invoice, error) {
	if err := a.timeEntryValidator.ValidateDateRange(opts.From, opts.To); err != nil {
		return nil, err
	}
	return a.repo.SearchInvoices(ctx, opts)
}

func (a *apiImpl) DeleteInvoice(ctx context.Context, id int64) error {
	if err := a.invoiceValidator.ValidateInvoiceID(id); err != nil {
		return err
	}
	return a.repo.DeleteInvoice(ctx, id)
}

// Calendar operations

func (a *apiImpl) MarkNonWorkDay(ctx context.Context, date time.Time, reason string) error {
	if date.IsZero() {
		return errors.NewInvalidInputError("date", date, "date is required")
	}
	day := &domain.NonWorkDay{Date: domain.DateOnly(date), Reason: reason}
	return a.repo.CreateNonWorkDay(ctx, day)
}

func (a *apiImpl) UnmarkNonWorkDay(ctx context.Context, date time.Time) error {
	if date.IsZero() {
		return errors.NewInvalidInputError("date", date, "date is required")
	}
	return a.repo.DeleteNonWorkDay(ctx, date)
}

func (a *apiImpl) ListNonWorkDays(ctx context.Context) ([]*domain.NonWorkDay, error) {
	return a.repo.ListNonWorkDays(ctx)
}

// Settings operations

func (a *apiImpl) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return a.repo.GetSettings(ctx)
}

func (a *apiImpl) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	if !settings.IsValid() {
		return errors.NewInvalidInputError("settings", settings, "monthly target must be positive and at least one work day is required")
	}
	return a.repo.SaveSettings(ctx, &settings)
}

func (a *apiImpl) Warnings() []csvfile.ParseWarning {
	return a.repo.Warnings()
}

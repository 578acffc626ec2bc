package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/errors"
)

// Repository defines the interface for storage operations
type Repository interface {
	// Client operations
	CreateClient(ctx context.Context, client *domain.Client) error
	GetClient(ctx context.Context, name string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	UpdateClient(ctx context.Context, client *domain.Client) error

	// Time entry operations
	CreateTimeEntry(ctx context.Context, entry *domain.TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	ListTimeEntries(ctx context.Context) ([]*domain.TimeEntry, error)
	SearchTimeEntries(ctx context.Context, opts domain.SearchOptions) ([]*domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *domain.TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id int64) error

	// Invoice operations
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) error
	ListInvoices(ctx context.Context) ([]*domain.Invoice, error)
	SearchInvoices(ctx context.Context, opts domain.SearchOptions) ([]*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, id int64) error

	// Non-work day operations
	CreateNonWorkDay(ctx context.Context, day *domain.NonWorkDay) error
	ListNonWorkDays(ctx context.Context) ([]*domain.NonWorkDay, error)
	DeleteNonWorkDay(ctx context.Context, date time.Time) error

	// Settings operations
	GetSettings(ctx context.Context) (*domain.Settings, error)
	SaveSettings(ctx context.Context, settings *domain.Settings) error

	// Warnings reports rows skipped during the most recent loads
	Warnings() []ParseWarning

	// Utility
	Close() error
}

// CSVRepository implements the Repository interface over a directory
// of per-entity comma-delimited files. The files stay hand-editable:
// loads tolerate broken rows, and every destructive rewrite takes a
// rotating backup first.
type CSVRepository struct {
	dir      string
	mu       sync.Mutex
	warnings map[string][]ParseWarning
}

// New creates a new CSV repository rooted at dir. Missing files are
// created with their header rows; the settings file also gets its
// default row.
func New(dir string) (*CSVRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewStorageError("create data directory", err)
	}
	r := &CSVRepository{
		dir:      dir,
		warnings: make(map[string][]ParseWarning),
	}
	if err := r.initializeFiles(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close closes the repository. File handles are not held open between
// operations, so this only exists for interface symmetry.
func (r *CSVRepository) Close() error {
	return nil
}

// Dir returns the directory holding the data files.
func (r *CSVRepository) Dir() string {
	return r.dir
}

// Warnings returns the rows skipped during the most recent load of
// each file.
func (r *CSVRepository) Warnings() []ParseWarning {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []ParseWarning
	for _, file := range []string{ClientsFile, TimeEntriesFile, InvoicesFile, SettingsFile, NonWorkDaysFile} {
		all = append(all, r.warnings[file]...)
	}
	return all
}

// initializeFiles creates any missing data files on first run.
func (r *CSVRepository) initializeFiles() error {
	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{ClientsFile, clientsHeader, nil},
		{TimeEntriesFile, timeEntriesHeader, nil},
		{InvoicesFile, invoicesHeader, nil},
		{SettingsFile, settingsHeader, [][]string{encodeSettings(domain.DefaultSettings())}},
		{NonWorkDaysFile, nonWorkDaysHeader, nil},
	}
	for _, f := range files {
		path := r.path(f.name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return errors.NewStorageError("stat "+f.name, err)
		}
		if err := writeFile(path, f.header, f.rows); err != nil {
			return errors.NewStorageError("initialize "+f.name, err)
		}
	}
	return nil
}

func (r *CSVRepository) path(name string) string {
	return filepath.Join(r.dir, name)
}

// rawRow is a data row with its line number for warning reports.
type rawRow struct {
	line   int
	fields []string
}

// readRows reads all data rows from a file, skipping the header.
// Unparseable lines are recorded as warnings and skipped.
func (r *CSVRepository) readRows(name string) ([]rawRow, error) {
	path := r.path(name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.warnings[name] = nil
			return nil, nil
		}
		return nil, errors.NewStorageError("open "+name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []rawRow
	var warns []ParseWarning
	line := 0
	header := true
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			if pe, ok := err.(*csv.ParseError); ok {
				warns = append(warns, ParseWarning{File: name, Line: pe.Line, Reason: pe.Err.Error()})
				continue
			}
			return nil, errors.NewStorageError("read "+name, err)
		}
		if header {
			header = false
			continue
		}
		rows = append(rows, rawRow{line: line, fields: record})
	}
	r.warnings[name] = warns
	return rows, nil
}

// writeFile writes a header and rows, replacing the file contents.
func writeFile(path string, header []string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// rewrite backs the file up and replaces its contents.
func (r *CSVRepository) rewrite(name string, header []string, rows [][]string) error {
	path := r.path(name)
	if err := createBackup(path); err != nil {
		return errors.NewStorageError("back up "+name, err)
	}
	if err := writeFile(path, header, rows); err != nil {
		return errors.NewStorageError("write "+name, err)
	}
	return nil
}

// appendRow appends a single row to a data file.
func (r *CSVRepository) appendRow(name string, row []string) error {
	f, err := os.OpenFile(r.path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.NewStorageError("open "+name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return errors.NewStorageError("append to "+name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewStorageError("append to "+name, err)
	}
	return nil
}

func (r *CSVRepository) addWarning(name string, line int, err error) {
	r.warnings[name] = append(r.warnings[name], ParseWarning{File: name, Line: line, Reason: err.Error()})
}

// ========== Client operations ==========

// loadClients decodes all clients, skipping broken rows.
// Caller must hold the mutex.
func (r *CSVRepository) loadClients() ([]*domain.Client, error) {
	rows, err := r.readRows(ClientsFile)
	if err != nil {
		return nil, err
	}
	clients := make([]*domain.Client, 0, len(rows))
	for _, row := range rows {
		c, err := decodeClient(row.fields)
		if err != nil {
			r.addWarning(ClientsFile, row.line, err)
			continue
		}
		clients = append(clients, &c)
	}
	return clients, nil
}

// CreateClient appends a new client row. The client name must be unique.
func (r *CSVRepository) CreateClient(ctx context.Context, client *domain.Client) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("create client", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadClients()
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.Name == client.Name {
			return errors.NewConflictError("client", client.Name)
		}
	}
	return r.appendRow(ClientsFile, encodeClient(*client))
}

// GetClient retrieves a client by name.
func (r *CSVRepository) GetClient(ctx context.Context, name string) (*domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("get client", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clients, err := r.loadClients()
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("client", name)
}

// ListClients retrieves all clients sorted by name.
func (r *CSVRepository) ListClients(ctx context.Context) ([]*domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("list clients", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clients, err := r.loadClients()
	if err != nil {
		return nil, err
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients, nil
}

// UpdateClient replaces the stored row for the client with the same name.
func (r *CSVRepository) UpdateClient(ctx context.Context, client *domain.Client) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("update client", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clients, err := r.loadClients()
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		if c.Name == client.Name {
			rows = append(rows, encodeClient(*client))
			found = true
			continue
		}
		rows = append(rows, encodeClient(*c))
	}
	if !found {
		return errors.NewNotFoundError("client", client.Name)
	}
	return r.rewrite(ClientsFile, clientsHeader, rows)
}

// ========== Time entry operations ==========

// loadTimeEntries decodes all entries in file order and assigns
// 1-based positional IDs. Caller must hold the mutex.
func (r *CSVRepository) loadTimeEntries() ([]*domain.TimeEntry, error) {
	rows, err := r.readRows(TimeEntriesFile)
	if err != nil {
		return nil, err
	}
	entries := make([]*domain.TimeEntry, 0, len(rows))
	for _, row := range rows {
		e, err := decodeTimeEntry(row.fields)
		if err != nil {
			r.addWarning(TimeEntriesFile, row.line, err)
			continue
		}
		e.ID = int64(len(entries) + 1)
		entries = append(entries, &e)
	}
	return entries, nil
}

// CreateTimeEntry appends a new time entry row and assigns its ID.
func (r *CSVRepository) CreateTimeEntry(ctx context.Context, entry *domain.TimeEntry) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("create time entry", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadTimeEntries()
	if err != nil {
		return err
	}
	if err := r.appendRow(TimeEntriesFile, encodeTimeEntry(*entry)); err != nil {
		return err
	}
	entry.ID = int64(len(existing) + 1)
	return nil
}

// GetTimeEntry retrieves a time entry by its positional ID.
func (r *CSVRepository) GetTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("get time entry", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.loadTimeEntries()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.NewNotFoundError("time entry", fmt.Sprintf("%d", id))
}

// ListTimeEntries retrieves all time entries sorted by date ascending.
func (r *CSVRepository) ListTimeEntries(ctx context.Context) ([]*domain.TimeEntry, error) {
	return r.SearchTimeEntries(ctx, domain.SearchOptions{})
}

// SearchTimeEntries retrieves time entries matching the options,
// sorted by date ascending.
func (r *CSVRepository) SearchTimeEntries(ctx context.Context, opts domain.SearchOptions) ([]*domain.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("search time entries", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.loadTimeEntries()
	if err != nil {
		return nil, err
	}
	matched := make([]*domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if opts.Matches(e.Date, e.ClientName) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	return matched, nil
}

// UpdateTimeEntry replaces the stored row at the entry's ID.
func (r *CSVRepository) UpdateTimeEntry(ctx context.Context, entry *domain.TimeEntry) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("update time entry", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.loadTimeEntries()
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if e.ID == entry.ID {
			rows = append(rows, encodeTimeEntry(*entry))
			found = true
			continue
		}
		rows = append(rows, encodeTimeEntry(*e))
	}
	if !found {
		return errors.NewNotFoundError("time entry", fmt.Sprintf("%d", entry.ID))
	}
	return r.rewrite(TimeEntriesFile, timeEntriesHeader, rows)
}

// DeleteTimeEntry deletes a time entry by its positional ID.
// Remaining entries are renumbered on the next load.
func (r *CSVRepository) DeleteTimeEntry(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("delete time entry", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.loadTimeEntries()
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if e.ID == id {
			found = true
			continue
		}
		rows = append(rows, encodeTimeEntry(*e))
	}
	if !found {
		return errors.NewNotFoundError("time entry", fmt.Sprintf("%d", id))
	}
	return r.rewrite(TimeEntriesFile, timeEntriesHeader, rows)
}

// ========== Invoice operations ==========

// loadInvoices decodes all invoices in file order and assigns
// 1-based positional IDs. Caller must hold the mutex.
func (r *CSVRepository) loadInvoices() ([]*domain.Invoice, error) {
	rows, err := r.readRows(InvoicesFile)
	if err != nil {
		return nil, err
	}
	invoices := make([]*domain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := decodeInvoice(row.fields)
		if err != nil {
			r.addWarning(InvoicesFile, row.line, err)
			continue
		}
		inv.ID = int64(len(invoices) + 1)
		invoices = append(invoices, &inv)
	}
	return invoices, nil
}

// CreateInvoice appends a new invoice row and assigns its ID.
func (r *CSVRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("create invoice", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadInvoices()
	if err != nil {
		return err
	}
	if err := r.appendRow(InvoicesFile, encodeInvoice(*invoice)); err != nil {
		return err
	}
	invoice.ID = int64(len(existing) + 1)
	return nil
}

// ListInvoices retrieves all invoices sorted by date ascending.
func (r *CSVRepository) ListInvoices(ctx context.Context) ([]*domain.Invoice, error) {
	return r.SearchInvoices(ctx, domain.SearchOptions{})
}

// SearchInvoices retrieves invoices matching the options, sorted by
// date ascending.
func (r *CSVRepository) SearchInvoices(ctx context.Context, opts domain.SearchOptions) ([]*domain.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("search invoices", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	invoices, err := r.loadInvoices()
	if err != nil {
		return nil, err
	}
	matched := make([]*domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if opts.Matches(inv.Date, inv.ClientName) {
			matched = append(matched, inv)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	return matched, nil
}

// DeleteInvoice deletes an invoice by its positional ID.
func (r *CSVRepository) DeleteInvoice(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("delete invoice", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	invoices, err := r.loadInvoices()
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		if inv.ID == id {
			found = true
			continue
		}
		rows = append(rows, encodeInvoice(*inv))
	}
	if !found {
		return errors.NewNotFoundError("invoice", fmt.Sprintf("%d", id))
	}
	return r.rewrite(InvoicesFile, invoicesHeader, rows)
}

// ========== Non-work day operations ==========

// loadNonWorkDays decodes all non-work days, skipping broken rows.
// Caller must hold the mutex.
func (r *CSVRepository) loadNonWorkDays() ([]*domain.NonWorkDay, error) {
	rows, err := r.readRows(NonWorkDaysFile)
	if err != nil {
		return nil, err
	}
	days := make([]*domain.NonWorkDay, 0, len(rows))
	for _, row := range rows {
		d, err := decodeNonWorkDay(row.fields)
		if err != nil {
			r.addWarning(NonWorkDaysFile, row.line, err)
			continue
		}
		days = append(days, &d)
	}
	return days, nil
}

// CreateNonWorkDay appends a non-work day row. A date can only be
// marked once.
func (r *CSVRepository) CreateNonWorkDay(ctx context.Context, day *domain.NonWorkDay) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("create non-work day", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	days, err := r.loadNonWorkDays()
	if err != nil {
		return err
	}
	for _, d := range days {
		if sameDay(d.Date, day.Date) {
			return errors.NewConflictError("non-work day", FormatDate(day.Date))
		}
	}
	return r.appendRow(NonWorkDaysFile, encodeNonWorkDay(*day))
}

// ListNonWorkDays retrieves all non-work days sorted by date.
func (r *CSVRepository) ListNonWorkDays(ctx context.Context) ([]*domain.NonWorkDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("list non-work days", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	days, err := r.loadNonWorkDays()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

// DeleteNonWorkDay removes the row for the given date.
func (r *CSVRepository) DeleteNonWorkDay(ctx context.Context, date time.Time) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("delete non-work day", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	days, err := r.loadNonWorkDays()
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		if sameDay(d.Date, date) {
			found = true
			continue
		}
		rows = append(rows, encodeNonWorkDay(*d))
	}
	if !found {
		return errors.NewNotFoundError("non-work day", FormatDate(date))
	}
	return r.rewrite(NonWorkDaysFile, nonWorkDaysHeader, rows)
}

// ========== Settings operations ==========

// GetSettings retrieves the settings row. A missing or empty file
// yields the defaults; a broken row is reported as a warning and the
// defaults are returned.
func (r *CSVRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("get settings", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.readRows(SettingsFile)
	if err != nil {
		return nil, err
	}
	defaults := domain.DefaultSettings()
	if len(rows) == 0 {
		return &defaults, nil
	}
	s, err := decodeSettings(rows[0].fields)
	if err != nil {
		r.addWarning(SettingsFile, rows[0].line, err)
		return &defaults, nil
	}
	return &s, nil
}

// SaveSettings replaces the settings row.
func (r *CSVRepository) SaveSettings(ctx context.Context, settings *domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("save settings", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rewrite(SettingsFile, settingsHeader, [][]string{encodeSettings(*settings)})
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

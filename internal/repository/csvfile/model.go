package csvfile

// File names for the per-entity delimited files, matching the layout
// users may already have on disk.
const (
	ClientsFile     = "clients.csv"
	TimeEntriesFile = "time_entries.csv"
	InvoicesFile    = "invoices.csv"
	SettingsFile    = "settings.csv"
	NonWorkDaysFile = "non_work_days.csv"
)

// Header rows written when a file is created on first run. Column
// order is part of the on-disk format: rows are decoded by position.
var (
	clientsHeader = []string{
		"client_name", "hourly_rate", "billing_type", "active",
		"has_hour_limit", "limit_type", "hour_limit", "contract_start_date",
	}
	timeEntriesHeader = []string{"date", "client_name", "hours", "notes"}
	invoicesHeader    = []string{"date", "client_name", "amount", "type", "description"}
	settingsHeader    = []string{"monthly_target", "work_days"}
	nonWorkDaysHeader = []string{"date", "reason"}
)

// ParseWarning describes a row that could not be decoded. The row is
// skipped; the file is never rejected wholesale, so a botched manual
// edit can always be fixed by hand without losing the rest.
type ParseWarning struct {
	File   string
	Line   int
	Reason string
}

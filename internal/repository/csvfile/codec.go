package csvfile

import (
	"fmt"

	"freelance-tracker/internal/domain"
)

// encodeClient converts a domain Client to a storage row.
func encodeClient(c domain.Client) []string {
	return []string{
		c.Name,
		FormatFloat(c.HourlyRate),
		string(c.BillingType),
		FormatBool(c.Active),
		FormatBool(c.HasHourLimit),
		string(c.LimitType),
		FormatFloat(c.HourLimit),
		FormatOptionalDate(c.ContractStart),
	}
}

// decodeClient converts a storage row to a domain Client. Missing
// trailing columns default, so files written before the limit columns
// existed still load.
func decodeClient(row []string) (domain.Client, error) {
	if len(row) < 4 {
		return domain.Client{}, fmt.Errorf("expected at least 4 fields, got %d", len(row))
	}
	var c domain.Client
	var err error

	c.Name = row[0]
	if c.Name == "" {
		return domain.Client{}, fmt.Errorf("empty client name")
	}
	if c.HourlyRate, err = ParseFloat(row[1]); err != nil {
		return domain.Client{}, fmt.Errorf("hourly_rate: %w", err)
	}
	c.BillingType = domain.BillingType(row[2])
	if c.BillingType == "" {
		c.BillingType = domain.BillingHourly
	}
	if c.Active, err = ParseBool(row[3]); err != nil {
		return domain.Client{}, fmt.Errorf("active: %w", err)
	}

	c.LimitType = domain.LimitNone
	if len(row) > 4 {
		if c.HasHourLimit, err = ParseBool(row[4]); err != nil {
			return domain.Client{}, fmt.Errorf("has_hour_limit: %w", err)
		}
	}
	if len(row) > 5 && row[5] != "" {
		c.LimitType = domain.LimitType(row[5])
	}
	if len(row) > 6 {
		if c.HourLimit, err = ParseFloat(row[6]); err != nil {
			return domain.Client{}, fmt.Errorf("hour_limit: %w", err)
		}
	}
	if len(row) > 7 {
		if c.ContractStart, err = ParseOptionalDate(row[7]); err != nil {
			return domain.Client{}, fmt.Errorf("contract_start_date: %w", err)
		}
	}
	return c, nil
}

// encodeTimeEntry converts a domain TimeEntry to a storage row. The
// ID is positional and never written.
func encodeTimeEntry(e domain.TimeEntry) []string {
	return []string{
		FormatDate(e.Date),
		e.ClientName,
		FormatFloat(e.Hours),
		e.Notes,
	}
}

// decodeTimeEntry converts a storage row to a domain TimeEntry.
func decodeTimeEntry(row []string) (domain.TimeEntry, error) {
	if len(row) < 3 {
		return domain.TimeEntry{}, fmt.Errorf("expected at least 3 fields, got %d", len(row))
	}
	var e domain.TimeEntry
	var err error

	if e.Date, err = ParseDate(row[0]); err != nil {
		return domain.TimeEntry{}, fmt.Errorf("date: %w", err)
	}
	e.ClientName = row[1]
	if e.ClientName == "" {
		return domain.TimeEntry{}, fmt.Errorf("empty client name")
	}
	if e.Hours, err = ParseFloat(row[2]); err != nil {
		return domain.TimeEntry{}, fmt.Errorf("hours: %w", err)
	}
	if len(row) > 3 {
		e.Notes = row[3]
	}
	return e, nil
}

// encodeInvoice converts a domain Invoice to a storage row.
func encodeInvoice(inv domain.Invoice) []string {
	return []string{
		FormatDate(inv.Date),
		inv.ClientName,
		FormatFloat(inv.Amount),
		string(inv.Type),
		inv.Description,
	}
}

// decodeInvoice converts a storage row to a domain Invoice.
func decodeInvoice(row []string) (domain.Invoice, error) {
	if len(row) < 4 {
		return domain.Invoice{}, fmt.Errorf("expected at least 4 fields, got %d", len(row))
	}
	var inv domain.Invoice
	var err error

	if inv.Date, err = ParseDate(row[0]); err != nil {
		return domain.Invoice{}, fmt.Errorf("date: %w", err)
	}
	inv.ClientName = row[1]
	if inv.ClientName == "" {
		return domain.Invoice{}, fmt.Errorf("empty client name")
	}
	if inv.Amount, err = ParseFloat(row[2]); err != nil {
		return domain.Invoice{}, fmt.Errorf("amount: %w", err)
	}
	inv.Type = domain.IncomeType(row[3])
	if inv.Type == "" {
		inv.Type = domain.IncomeOther
	}
	if len(row) > 4 {
		inv.Description = row[4]
	}
	return inv, nil
}

// encodeNonWorkDay converts a domain NonWorkDay to a storage row.
func encodeNonWorkDay(n domain.NonWorkDay) []string {
	return []string{FormatDate(n.Date), n.Reason}
}

// decodeNonWorkDay converts a storage row to a domain NonWorkDay.
func decodeNonWorkDay(row []string) (domain.NonWorkDay, error) {
	if len(row) < 1 {
		return domain.NonWorkDay{}, fmt.Errorf("expected at least 1 field, got %d", len(row))
	}
	var n domain.NonWorkDay
	var err error

	if n.Date, err = ParseDate(row[0]); err != nil {
		return domain.NonWorkDay{}, fmt.Errorf("date: %w", err)
	}
	if len(row) > 1 {
		n.Reason = row[1]
	}
	return n, nil
}

// encodeSettings converts domain Settings to its single storage row.
func encodeSettings(s domain.Settings) []string {
	return []string{FormatFloat(s.MonthlyTarget), FormatWorkDays(s.WorkDays)}
}

// decodeSettings converts the settings row to domain Settings. A
// broken work-day list falls back to the default week rather than
// failing, so a bad manual edit never locks the tool out.
func decodeSettings(row []string) (domain.Settings, error) {
	if len(row) < 2 {
		return domain.Settings{}, fmt.Errorf("expected 2 fields, got %d", len(row))
	}
	s := domain.DefaultSettings()
	target, err := ParseFloat(row[0])
	if err != nil {
		return domain.Settings{}, fmt.Errorf("monthly_target: %w", err)
	}
	s.MonthlyTarget = target
	if days, err := ParseWorkDays(row[1]); err == nil {
		s.WorkDays = days
	}
	return s, nil
}

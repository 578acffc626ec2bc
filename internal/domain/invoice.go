package domain

import "time"

// IncomeType describes the kind of non-hourly income an invoice records.
type IncomeType string

const (
	IncomeRetainer IncomeType = "Retainer"
	IncomeFlatFee  IncomeType = "Flat Fee"
	IncomeBonus    IncomeType = "Bonus"
	IncomeOther    IncomeType = "Other"
)

// IsValid checks if the income type is one of the known values.
func (it IncomeType) IsValid() bool {
	switch it {
	case IncomeRetainer, IncomeFlatFee, IncomeBonus, IncomeOther:
		return true
	}
	return false
}

// Invoice represents a retainer or flat-fee payment recorded against a
// client. Hourly income is derived from time entries and never stored
// as an invoice. The ID is assigned on load and not persisted.
type Invoice struct {
	ID          int64
	Date        time.Time
	ClientName  string
	Amount      float64
	Type        IncomeType
	Description string
}

// NewInvoice creates a new Invoice for the given client and date.
func NewInvoice(date time.Time, clientName string, amount float64, incomeType IncomeType) Invoice {
	return Invoice{
		Date:       DateOnly(date),
		ClientName: clientName,
		Amount:     amount,
		Type:       incomeType,
	}
}

// IsValid checks if the invoice has valid data.
func (inv Invoice) IsValid() bool {
	if inv.ClientName == "" {
		return false
	}
	if inv.Date.IsZero() {
		return false
	}
	if inv.Amount <= 0 {
		return false
	}
	return inv.Type.IsValid()
}

// InMonth returns true if the invoice falls in the given month.
func (inv Invoice) InMonth(year int, month time.Month) bool {
	return inv.Date.Year() == year && inv.Date.Month() == month
}

// OnDay returns true if the invoice falls on the given calendar day.
func (inv Invoice) OnDay(day time.Time) bool {
	y1, m1, d1 := inv.Date.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package domain

import "time"

// SearchOptions represents search criteria for time entries and
// invoices. Nil fields match everything. From and To are inclusive
// calendar-date bounds.
type SearchOptions struct {
	From       *time.Time
	To         *time.Time
	ClientName *string
}

// Matches reports whether a date and client name satisfy the options.
func (o SearchOptions) Matches(date time.Time, clientName string) bool {
	if o.From != nil && date.Before(DateOnly(*o.From)) {
		return false
	}
	if o.To != nil && date.After(DateOnly(*o.To)) {
		return false
	}
	if o.ClientName != nil && *o.ClientName != clientName {
		return false
	}
	return true
}

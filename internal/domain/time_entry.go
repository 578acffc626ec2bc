package domain

import "time"

// MaxHoursPerDay is the largest number of hours a single entry can hold.
const MaxHoursPerDay = 24.0

// TimeEntry represents a block of work logged against a client.
// This is a pure domain model without storage-specific concerns.
// The ID is the entry's position in storage and is assigned on load;
// it is not persisted.
type TimeEntry struct {
	ID         int64
	Date       time.Time
	ClientName string
	Hours      float64
	Notes      string
}

// NewTimeEntry creates a new TimeEntry for the given client and date.
func NewTimeEntry(date time.Time, clientName string, hours float64) TimeEntry {
	return TimeEntry{
		Date:       DateOnly(date),
		ClientName: clientName,
		Hours:      hours,
	}
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.ClientName == "" {
		return false
	}
	if te.Date.IsZero() {
		return false
	}
	if te.Hours <= 0 || te.Hours > MaxHoursPerDay {
		return false
	}
	return true
}

// InMonth returns true if the entry falls in the given month.
func (te TimeEntry) InMonth(year int, month time.Month) bool {
	return te.Date.Year() == year && te.Date.Month() == month
}

// OnDay returns true if the entry falls on the given calendar day.
func (te TimeEntry) OnDay(day time.Time) bool {
	y1, m1, d1 := te.Date.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates a time to midnight in its location. All dates in
// the data model are calendar dates; times of day are never stored.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

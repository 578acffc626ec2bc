package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"freelance-tracker/internal/domain"
)

func TestEntryExportRows(t *testing.T) {
	clients := []*domain.Client{
		{Name: "Acme Corp", HourlyRate: 100, BillingType: domain.BillingHourly, Active: true},
		{Name: "Retainer Client", HourlyRate: 0, BillingType: domain.BillingRetainer, Active: true},
	}
	date := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.Local)

	t.Run("should carry the billed amount for hourly entries", func(t *testing.T) {
		entries := []*domain.TimeEntry{
			{Date: date, ClientName: "Acme Corp", Hours: 4.5, Notes: "API work"},
		}

		rows := entryExportRows(entries, clients)

		assert.Len(t, rows, 1)
		assert.Equal(t, []string{"2026-03-03", "Acme Corp", "4.5", "Hourly", "100", "450.00", "API work"}, rows[0])
	})

	t.Run("should mark retainer entries as not billed", func(t *testing.T) {
		entries := []*domain.TimeEntry{
			{Date: date, ClientName: "Retainer Client", Hours: 3},
		}

		rows := entryExportRows(entries, clients)

		assert.Len(t, rows, 1)
		assert.Equal(t, "Retainer/Flat Fee", rows[0][3])
		assert.Equal(t, "not billed", rows[0][5])
	})

	t.Run("should leave billing columns blank for unknown clients", func(t *testing.T) {
		entries := []*domain.TimeEntry{
			{Date: date, ClientName: "Gone LLC", Hours: 2},
		}

		rows := entryExportRows(entries, clients)

		assert.Len(t, rows, 1)
		assert.Equal(t, "", rows[0][3])
		assert.Equal(t, "", rows[0][4])
		assert.Equal(t, "", rows[0][5])
	})
}

package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/errors"
	"freelance-tracker/internal/repository/csvfile"
	"freelance-tracker/internal/validation"
)

func setupAPI(t *testing.T) API {
	repo, err := csvfile.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return New(repo)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func createTestClient(t *testing.T, a API, name string) *domain.Client {
	client, err := a.CreateClient(context.Background(), domain.NewClient(name, 100, domain.BillingHourly))
	require.NoError(t, err)
	return client
}

func TestAPI_CreateClient(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	t.Run("should create and return client", func(t *testing.T) {
		client, err := a.CreateClient(ctx, domain.NewClient("Acme Corp", 85.5, domain.BillingHourly))
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", client.Name)
		assert.True(t, client.Active)
	})

	t.Run("should trim client name before storing", func(t *testing.T) {
		client, err := a.CreateClient(ctx, domain.NewClient("  Padded Name  ", 50, domain.BillingHourly))
		require.NoError(t, err)
		assert.Equal(t, "Padded Name", client.Name)

		got, err := a.GetClient(ctx, "Padded Name")
		require.NoError(t, err)
		assert.Equal(t, 50.0, got.HourlyRate)
	})

	t.Run("should reject duplicate name with conflict error", func(t *testing.T) {
		_, err := a.CreateClient(ctx, domain.NewClient("Acme Corp", 70, domain.BillingHourly))
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
	})

	t.Run("should reject invalid client with validation error", func(t *testing.T) {
		_, err := a.CreateClient(ctx, domain.NewClient("", 70, domain.BillingHourly))
		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err))
	})
}

func TestAPI_ListClients(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	createTestClient(t, a, "Active One")
	createTestClient(t, a, "Active Two")
	createTestClient(t, a, "Former Client")
	require.NoError(t, a.SetClientActive(ctx, "Former Client", false))

	t.Run("should list everyone by default", func(t *testing.T) {
		clients, err := a.ListClients(ctx, false)
		require.NoError(t, err)
		assert.Len(t, clients, 3)
	})

	t.Run("should filter to active clients", func(t *testing.T) {
		clients, err := a.ListClients(ctx, true)
		require.NoError(t, err)
		require.Len(t, clients, 2)
		for _, c := range clients {
			assert.True(t, c.Active)
		}
	})
}

func TestAPI_SetClientActive(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	createTestClient(t, a, "Toggle Client")

	require.NoError(t, a.SetClientActive(ctx, "Toggle Client", false))
	client, err := a.GetClient(ctx, "Toggle Client")
	require.NoError(t, err)
	assert.False(t, client.Active)

	require.NoError(t, a.SetClientActive(ctx, "Toggle Client", true))
	client, err = a.GetClient(ctx, "Toggle Client")
	require.NoError(t, err)
	assert.True(t, client.Active)
}

func TestAPI_CreateTimeEntry(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	createTestClient(t, a, "Acme Corp")

	t.Run("should create entry against active client", func(t *testing.T) {
		entry, err := a.CreateTimeEntry(ctx, day(2026, 3, 10), "Acme Corp", 3.5, "sprint work")
		require.NoError(t, err)
		assert.Equal(t, int64(1), entry.ID)
		assert.Equal(t, "sprint work", entry.Notes)
	})

	t.Run("should reject entry for unknown client", func(t *testing.T) {
		_, err := a.CreateTimeEntry(ctx, day(2026, 3, 10), "Nobody", 3.5, "")
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
	})

	t.Run("should reject entry for inactive client", func(t *testing.T) {
		createTestClient(t, a, "Former Client")
		require.NoError(t, a.SetClientActive(ctx, "Former Client", false))

		_, err := a.CreateTimeEntry(ctx, day(2026, 3, 10), "Former Client", 2, "")
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeInvalidInput))
	})

	t.Run("should reject invalid hours with validation error", func(t *testing.T) {
		_, err := a.CreateTimeEntry(ctx, day(2026, 3, 10), "Acme Corp", 0, "")
		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err))
	})
}

func TestAPI_UpdateTimeEntry(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	createTestClient(t, a, "Acme Corp")
	entry, err := a.CreateTimeEntry(ctx, day(2026, 3, 10), "Acme Corp", 3, "")
	require.NoError(t, err)

	t.Run("should update entry fields", func(t *testing.T) {
		err := a.UpdateTimeEntry(ctx, entry.ID, day(2026, 3, 11), "Acme Corp", 4.5, "moved a day")
		require.NoError(t, err)

		got, err := a.GetTimeEntry(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.5, got.Hours)
		assert.Equal(t, "moved a day", got.Notes)
	})

	t.Run("should reject unknown client on update", func(t *testing.T) {
		err := a.UpdateTimeEntry(ctx, entry.ID, day(2026, 3, 11), "Nobody", 2, "")
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
	})

	t.Run("should reject non-positive ID", func(t *testing.T) {
		err := a.UpdateTimeEntry(ctx, 0, day(2026, 3, 11), "Acme Corp", 2, "")
		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err))
	})
}

func TestAPI_SearchTimeEntries(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	createTestClient(t, a, "Acme Corp")
	_, err := a.CreateTimeEntry(ctx, day(2026, 3, 10), "Acme Corp", 2, "")
	require.NoError(t, err)
	_, err = a.CreateTimeEntry(ctx, day(2026, 4, 10), "Acme Corp", 3, "")
	require.NoError(t, err)

	t.Run("should filter by range", func(t *testing.T) {
		from, to := day(2026, 3, 1), day(2026, 3, 31)
		entries, err := a.SearchTimeEntries(ctx, domain.SearchOptions{From: &from, To: &to})
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("should reject inverted range", func(t *testing.T) {
		from, to := day(2026, 3, 31), day(2026, 3, 1)
		_, err := a.SearchTimeEntries(ctx, domain.SearchOptions{From: &from, To: &to})
		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err))
	})
}

func TestAPI_Invoices(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	createTestClient(t, a, "Retainer Client")

	t.Run("should create invoice for known client", func(t *testing.T) {
		invoice, err := a.CreateInvoice(ctx, day(2026, 3, 1), "Retainer Client", 2000, domain.IncomeRetainer, "March retainer")
		require.NoError(t, err)
		assert.Equal(t, int64(1), invoice.ID)
		assert.Equal(t, "March retainer", invoice.Description)
	})

	t.Run("should reject invoice for unknown client", func(t *testing.T) {
		_, err := a.CreateInvoice(ctx, day(2026, 3, 1), "Nobody", 2000, domain.IncomeRetainer, "")
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
	})

	t.Run("should reject zero amount", func(t *testing.T) {
		_, err := a.CreateInvoice(ctx, day(2026, 3, 1), "Retainer Client", 0, domain.IncomeRetainer, "")
		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err))
	})

	t.Run("should delete invoice by ID", func(t *testing.T) {
		require.NoError(t, a.DeleteInvoice(ctx, 1))
		invoices, err := a.SearchInvoices(ctx, domain.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, invoices)
	})
}

func TestAPI_NonWorkDays(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	t.Run("should mark a day off", func(t *testing.T) {
		require.NoError(t, a.MarkNonWorkDay(ctx, day(2026, 5, 1), "public holiday"))

		days, err := a.ListNonWorkDays(ctx)
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, "public holiday", days[0].Reason)
	})

	t.Run("should reject marking the same day twice", func(t *testing.T) {
		err := a.MarkNonWorkDay(ctx, day(2026, 5, 1), "again")
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
	})

	t.Run("should reject zero date", func(t *testing.T) {
		err := a.MarkNonWorkDay(ctx, time.Time{}, "")
		require.Error(t, err)
	})

	t.Run("should unmark a day", func(t *testing.T) {
		require.NoError(t, a.UnmarkNonWorkDay(ctx, day(2026, 5, 1)))
		days, err := a.ListNonWorkDays(ctx)
		require.NoError(t, err)
		assert.Empty(t, days)
	})
}

func TestAPI_Settings(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	t.Run("should return defaults on first run", func(t *testing.T) {
		settings, err := a.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 8000.0, settings.MonthlyTarget)
	})

	t.Run("should persist updated settings", func(t *testing.T) {
		updated := domain.Settings{
			MonthlyTarget: 9500,
			WorkDays:      []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		}
		require.NoError(t, a.UpdateSettings(ctx, updated))

		settings, err := a.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 9500.0, settings.MonthlyTarget)
		assert.Len(t, settings.WorkDays, 3)
	})

	t.Run("should reject settings without work days", func(t *testing.T) {
		err := a.UpdateSettings(ctx, domain.Settings{MonthlyTarget: 9500})
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeInvalidInput))
	})
}

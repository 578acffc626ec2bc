package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/errors"
)

func setupRepository(t *testing.T) *CSVRepository {
	repo, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNew_FirstRun(t *testing.T) {
	dir := t.TempDir()
	repo, err := New(dir)
	require.NoError(t, err)
	defer repo.Close()

	t.Run("should create all data files with headers", func(t *testing.T) {
		for _, name := range []string{ClientsFile, TimeEntriesFile, InvoicesFile, SettingsFile, NonWorkDaysFile} {
			data, err := os.ReadFile(filepath.Join(dir, name))
			require.NoError(t, err)
			assert.NotEmpty(t, data, "%s should have a header row", name)
		}
	})

	t.Run("should write default settings row", func(t *testing.T) {
		settings, err := repo.GetSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 8000.0, settings.MonthlyTarget)
		assert.Len(t, settings.WorkDays, 5)
	})

	t.Run("should not overwrite existing files on reopen", func(t *testing.T) {
		ctx := context.Background()
		client := domain.NewClient("Keep Me", 80, domain.BillingHourly)
		require.NoError(t, repo.CreateClient(ctx, &client))

		reopened, err := New(dir)
		require.NoError(t, err)
		defer reopened.Close()

		got, err := reopened.GetClient(ctx, "Keep Me")
		require.NoError(t, err)
		assert.Equal(t, 80.0, got.HourlyRate)
	})
}

func TestCSVRepository_ClientCRUD(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	client := domain.NewClient("Acme Corp", 85.5, domain.BillingHourly)
	require.NoError(t, repo.CreateClient(ctx, &client))

	t.Run("should retrieve created client", func(t *testing.T) {
		got, err := repo.GetClient(ctx, "Acme Corp")
		require.NoError(t, err)
		assert.Equal(t, 85.5, got.HourlyRate)
		assert.True(t, got.Active)
	})

	t.Run("should reject duplicate client name", func(t *testing.T) {
		dup := domain.NewClient("Acme Corp", 90, domain.BillingHourly)
		err := repo.CreateClient(ctx, &dup)
		assert.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
	})

	t.Run("should return not found for unknown client", func(t *testing.T) {
		_, err := repo.GetClient(ctx, "Nobody")
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
	})

	t.Run("should update client in place", func(t *testing.T) {
		updated := client
		updated.HourlyRate = 95
		updated.HasHourLimit = true
		updated.LimitType = domain.LimitMonthly
		updated.HourLimit = 60
		require.NoError(t, repo.UpdateClient(ctx, &updated))

		got, err := repo.GetClient(ctx, "Acme Corp")
		require.NoError(t, err)
		assert.Equal(t, 95.0, got.HourlyRate)
		assert.True(t, got.HasHourLimit)
		assert.Equal(t, 60.0, got.HourLimit)
	})

	t.Run("should list clients sorted by name", func(t *testing.T) {
		zeta := domain.NewClient("Zeta LLC", 70, domain.BillingRetainer)
		require.NoError(t, repo.CreateClient(ctx, &zeta))
		alpha := domain.NewClient("Alpha Studio", 60, domain.BillingHourly)
		require.NoError(t, repo.CreateClient(ctx, &alpha))

		clients, err := repo.ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, clients, 3)
		assert.Equal(t, "Acme Corp", clients[0].Name)
		assert.Equal(t, "Alpha Studio", clients[1].Name)
		assert.Equal(t, "Zeta LLC", clients[2].Name)
	})
}

func TestCSVRepository_TimeEntryCRUD(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	first := domain.NewTimeEntry(day(2026, 3, 10), "Acme Corp", 3.5)
	require.NoError(t, repo.CreateTimeEntry(ctx, &first))
	second := domain.NewTimeEntry(day(2026, 3, 11), "Acme Corp", 2)
	second.Notes = "code review"
	require.NoError(t, repo.CreateTimeEntry(ctx, &second))

	t.Run("should assign positional IDs on create", func(t *testing.T) {
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("should retrieve entry by ID", func(t *testing.T) {
		got, err := repo.GetTimeEntry(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 2.0, got.Hours)
		assert.Equal(t, "code review", got.Notes)
	})

	t.Run("should update entry by ID", func(t *testing.T) {
		updated := second
		updated.Hours = 4
		require.NoError(t, repo.UpdateTimeEntry(ctx, &updated))

		got, err := repo.GetTimeEntry(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 4.0, got.Hours)
	})

	t.Run("should renumber entries after delete", func(t *testing.T) {
		third := domain.NewTimeEntry(day(2026, 3, 12), "Acme Corp", 1)
		require.NoError(t, repo.CreateTimeEntry(ctx, &third))
		require.NoError(t, repo.DeleteTimeEntry(ctx, 1))

		entries, err := repo.ListTimeEntries(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, int64(1), entries[0].ID)
		assert.Equal(t, int64(2), entries[1].ID)
	})

	t.Run("should return not found for missing ID", func(t *testing.T) {
		err := repo.DeleteTimeEntry(ctx, 99)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
	})
}

func TestCSVRepository_SearchTimeEntries(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	entries := []domain.TimeEntry{
		domain.NewTimeEntry(day(2026, 3, 20), "Acme Corp", 2),
		domain.NewTimeEntry(day(2026, 3, 5), "Beta Ltd", 3),
		domain.NewTimeEntry(day(2026, 4, 1), "Acme Corp", 1),
	}
	for i := range entries {
		require.NoError(t, repo.CreateTimeEntry(ctx, &entries[i]))
	}

	t.Run("should filter by date range and sort ascending", func(t *testing.T) {
		from := day(2026, 3, 1)
		to := day(2026, 3, 31)
		result, err := repo.SearchTimeEntries(ctx, domain.SearchOptions{From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "Beta Ltd", result[0].ClientName)
		assert.Equal(t, "Acme Corp", result[1].ClientName)
	})

	t.Run("should filter by client name", func(t *testing.T) {
		name := "Acme Corp"
		result, err := repo.SearchTimeEntries(ctx, domain.SearchOptions{ClientName: &name})
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("should return everything with empty options", func(t *testing.T) {
		result, err := repo.SearchTimeEntries(ctx, domain.SearchOptions{})
		require.NoError(t, err)
		assert.Len(t, result, 3)
	})
}

func TestCSVRepository_InvoiceCRUD(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	inv := domain.NewInvoice(day(2026, 3, 1), "Retainer Client", 2000, domain.IncomeRetainer)
	require.NoError(t, repo.CreateInvoice(ctx, &inv))
	assert.Equal(t, int64(1), inv.ID)

	t.Run("should list created invoice", func(t *testing.T) {
		invoices, err := repo.ListInvoices(ctx)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, 2000.0, invoices[0].Amount)
	})

	t.Run("should delete invoice by ID", func(t *testing.T) {
		require.NoError(t, repo.DeleteInvoice(ctx, 1))
		invoices, err := repo.ListInvoices(ctx)
		require.NoError(t, err)
		assert.Empty(t, invoices)
	})
}

func TestCSVRepository_NonWorkDays(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	holiday := domain.NonWorkDay{Date: day(2026, 5, 1), Reason: "public holiday"}
	require.NoError(t, repo.CreateNonWorkDay(ctx, &holiday))

	t.Run("should reject marking the same date twice", func(t *testing.T) {
		again := domain.NonWorkDay{Date: day(2026, 5, 1), Reason: "still a holiday"}
		err := repo.CreateNonWorkDay(ctx, &again)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
	})

	t.Run("should list days sorted by date", func(t *testing.T) {
		earlier := domain.NonWorkDay{Date: day(2026, 4, 10), Reason: "vacation"}
		require.NoError(t, repo.CreateNonWorkDay(ctx, &earlier))

		days, err := repo.ListNonWorkDays(ctx)
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "vacation", days[0].Reason)
	})

	t.Run("should unmark a date", func(t *testing.T) {
		require.NoError(t, repo.DeleteNonWorkDay(ctx, day(2026, 5, 1)))
		days, err := repo.ListNonWorkDays(ctx)
		require.NoError(t, err)
		assert.Len(t, days, 1)
	})
}

func TestCSVRepository_Settings(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	settings := &domain.Settings{
		MonthlyTarget: 9500,
		WorkDays:      []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday},
	}
	require.NoError(t, repo.SaveSettings(ctx, settings))

	got, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9500.0, got.MonthlyTarget)
	assert.Len(t, got.WorkDays, 4)
}

func TestCSVRepository_ManualEdits(t *testing.T) {
	dir := t.TempDir()
	repo, err := New(dir)
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	t.Run("should pick up rows added by hand", func(t *testing.T) {
		path := filepath.Join(dir, TimeEntriesFile)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("2026-03-15,Handwritten Client,2.5,added in a text editor\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		entries, err := repo.ListTimeEntries(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Handwritten Client", entries[0].ClientName)
		assert.Equal(t, 2.5, entries[0].Hours)
	})

	t.Run("should skip malformed rows and report warnings", func(t *testing.T) {
		path := filepath.Join(dir, TimeEntriesFile)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("not-a-date,Broken Client,oops\n2026-03-16,Good Client,1,\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		entries, err := repo.ListTimeEntries(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Good Client", entries[1].ClientName)

		warnings := repo.Warnings()
		require.NotEmpty(t, warnings)
		assert.Equal(t, TimeEntriesFile, warnings[0].File)
		assert.Contains(t, warnings[0].Reason, "date")
	})

	t.Run("should keep positional IDs contiguous despite skipped rows", func(t *testing.T) {
		entries, err := repo.ListTimeEntries(ctx)
		require.NoError(t, err)
		for i, e := range entries {
			assert.Equal(t, int64(i+1), e.ID)
		}
	})
}

func TestCSVRepository_Backups(t *testing.T) {
	dir := t.TempDir()
	repo, err := New(dir)
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	entry := domain.NewTimeEntry(day(2026, 3, 10), "Acme Corp", 2)
	require.NoError(t, repo.CreateTimeEntry(ctx, &entry))

	path := filepath.Join(dir, TimeEntriesFile)

	t.Run("should write a backup before a rewrite", func(t *testing.T) {
		updated := entry
		updated.Hours = 3
		require.NoError(t, repo.UpdateTimeEntry(ctx, &updated))

		backup, err := os.ReadFile(path + ".bak.1")
		require.NoError(t, err)
		assert.Contains(t, string(backup), "Acme Corp,2")
	})

	t.Run("should rotate backups on subsequent rewrites", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			updated := entry
			updated.Hours = float64(10 + i)
			require.NoError(t, repo.UpdateTimeEntry(ctx, &updated))
		}

		for i := 1; i <= 3; i++ {
			_, err := os.Stat(fmt.Sprintf("%s.bak.%d", path, i))
			assert.NoError(t, err, "backup slot %d should exist", i)
		}
		_, err := os.Stat(path + ".bak.4")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("should keep newest state in bak.1", func(t *testing.T) {
		backup, err := os.ReadFile(path + ".bak.1")
		require.NoError(t, err)
		current, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, strings.TrimSpace(string(current)), "")
		assert.Contains(t, string(backup), "Acme Corp,12")
	})
}

func TestCSVRepository_ContextCancellation(t *testing.T) {
	repo := setupRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListClients(ctx)
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsType(errors.ErrorTypeStorage))
}

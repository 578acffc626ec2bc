package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-tracker/internal/api"
	"freelance-tracker/internal/config"
	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/repository/csvfile"
	"freelance-tracker/internal/services"
)

func setupApp(t *testing.T) *App {
	t.Helper()
	repo, err := csvfile.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return NewApp(api.New(repo), services.NewServiceContainer(repo), config.NewConfig())
}

func TestClientCommand_Add(t *testing.T) {
	app := setupApp(t)
	cmd := NewClientCommand(app)
	ctx := context.Background()

	t.Run("should create an hourly client", func(t *testing.T) {
		require.NoError(t, cmd.Add(ctx, "Acme Corp", ClientAddOptions{Rate: 95}))

		client, err := app.api.GetClient(ctx, "Acme Corp")
		require.NoError(t, err)
		assert.Equal(t, 95.0, client.HourlyRate)
		assert.Equal(t, domain.BillingHourly, client.BillingType)
		assert.True(t, client.Active)
	})

	t.Run("should create a limited retainer client", func(t *testing.T) {
		opts := ClientAddOptions{Retainer: true, HourLimit: 40}
		require.NoError(t, cmd.Add(ctx, "Initech", opts))

		client, err := app.api.GetClient(ctx, "Initech")
		require.NoError(t, err)
		assert.Equal(t, domain.BillingRetainer, client.BillingType)
		assert.True(t, client.HasHourLimit)
		assert.Equal(t, 40.0, client.HourLimit)
		assert.Equal(t, domain.LimitMonthly, client.LimitType, "limit type defaults to monthly")
	})

	t.Run("should reject a duplicate name", func(t *testing.T) {
		err := cmd.Add(ctx, "Acme Corp", ClientAddOptions{Rate: 50})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

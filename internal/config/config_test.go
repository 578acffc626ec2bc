package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Contains(t, cfg.Storage.Dir, ".ft")
	assert.Equal(t, uint32(0755), cfg.Storage.DirPermissions)
	assert.Equal(t, 1, cfg.Validation.ClientNameMinLength)
	assert.Equal(t, 255, cfg.Validation.ClientNameMaxLength)
	assert.Equal(t, 24.0, cfg.Validation.MaxHoursPerDay)
	assert.Equal(t, "2006-01-02", cfg.Display.DateFormat)
	assert.Equal(t, 80, cfg.Display.TableWidth)
	assert.True(t, cfg.Display.Color)
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout)
	assert.False(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("FT_DATA_DIR", "/tmp/ft-test-data")
	t.Setenv("FT_VALIDATION_MAX_HOURS_PER_DAY", "12")
	t.Setenv("FT_DISPLAY_TABLE_WIDTH", "120")
	t.Setenv("FT_DISPLAY_COLOR", "false")
	t.Setenv("FT_APP_TIMEOUT", "45s")
	t.Setenv("FT_APP_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/ft-test-data", cfg.Storage.Dir)
	assert.Equal(t, 12.0, cfg.Validation.MaxHoursPerDay)
	assert.Equal(t, 120, cfg.Display.TableWidth)
	assert.False(t, cfg.Display.Color)
	assert.Equal(t, 45*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("FT_DISPLAY_TABLE_WIDTH", "wide")
	t.Setenv("FT_APP_TIMEOUT", "later")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 80, cfg.Display.TableWidth)
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout)
}

func TestConfig_LoadFromFile(t *testing.T) {
	t.Run("should overlay values from TOML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[storage]
dir = "/tmp/ft-from-file"

[display]
table_width = 100
color = false

[validation]
max_hours_per_day = 10.0
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg := NewConfig()
		require.NoError(t, cfg.LoadFromFile(path))

		assert.Equal(t, "/tmp/ft-from-file", cfg.Storage.Dir)
		assert.Equal(t, 100, cfg.Display.TableWidth)
		assert.False(t, cfg.Display.Color)
		assert.Equal(t, 10.0, cfg.Validation.MaxHoursPerDay)
		// Untouched sections keep their defaults
		assert.Equal(t, "2006-01-02", cfg.Display.DateFormat)
	})

	t.Run("should keep defaults when file is missing", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.toml")))
		assert.Equal(t, 80, cfg.Display.TableWidth)
	})

	t.Run("should reject invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("not [valid"), 0644))

		cfg := NewConfig()
		err := cfg.LoadFromFile(path)
		require.Error(t, err)
		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(cfg *Config)
		expectedField string
	}{
		{
			name:          "should reject empty data directory",
			modify:        func(cfg *Config) { cfg.Storage.Dir = "" },
			expectedField: "storage.dir",
		},
		{
			name:          "should reject zero minimum name length",
			modify:        func(cfg *Config) { cfg.Validation.ClientNameMinLength = 0 },
			expectedField: "validation.client_name_min_length",
		},
		{
			name:          "should reject maximum below minimum",
			modify:        func(cfg *Config) { cfg.Validation.ClientNameMaxLength = 0 },
			expectedField: "validation.client_name_max_length",
		},
		{
			name:          "should reject non-positive max hours",
			modify:        func(cfg *Config) { cfg.Validation.MaxHoursPerDay = 0 },
			expectedField: "validation.max_hours_per_day",
		},
		{
			name:          "should reject narrow table width",
			modify:        func(cfg *Config) { cfg.Display.TableWidth = 10 },
			expectedField: "display.table_width",
		},
		{
			name:          "should reject non-positive timeout",
			modify:        func(cfg *Config) { cfg.Application.Timeout = 0 },
			expectedField: "application.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.expectedField, cfgErr.Field)
		})
	}

	t.Run("should accept default configuration", func(t *testing.T) {
		assert.NoError(t, NewConfig().Validate())
	})
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	// Point the environment away from any real user config
	t.Setenv("FT_DATA_DIR", t.TempDir())

	dataDir := "/tmp/ft-override"
	width := 120
	verbose := true

	loader := NewLoader()
	cfg, err := loader.LoadWithOverrides(&ConfigOverrides{
		DataDir:    &dataDir,
		TableWidth: &width,
		Verbose:    &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ft-override", cfg.Storage.Dir)
	assert.Equal(t, 120, cfg.Display.TableWidth)
	assert.True(t, cfg.Application.Verbose)
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	settings, err := repo.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8000.0, settings.MonthlyTarget)
}

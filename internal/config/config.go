package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the freelance tracker application
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Validation  ValidationConfig  `toml:"validation"`
	Display     DisplayConfig     `toml:"display"`
	Application ApplicationConfig `toml:"application"`
}

// StorageConfig holds data file configuration
type StorageConfig struct {
	Dir            string `toml:"dir" env:"FT_DATA_DIR"`
	DirPermissions uint32 `toml:"dir_permissions" env:"FT_DATA_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ClientNameMinLength int     `toml:"client_name_min_length" env:"FT_VALIDATION_CLIENT_NAME_MIN"`
	ClientNameMaxLength int     `toml:"client_name_max_length" env:"FT_VALIDATION_CLIENT_NAME_MAX"`
	MaxHoursPerDay      float64 `toml:"max_hours_per_day" env:"FT_VALIDATION_MAX_HOURS_PER_DAY"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat  string `toml:"date_format" env:"FT_DISPLAY_DATE_FORMAT"`
	TableWidth  int    `toml:"table_width" env:"FT_DISPLAY_TABLE_WIDTH"`
	Color       bool   `toml:"color" env:"FT_DISPLAY_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"FT_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"FT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".ft")

	return &Config{
		Storage: StorageConfig{
			Dir:            defaultDataDir,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			ClientNameMinLength: 1,
			ClientNameMaxLength: 255,
			MaxHoursPerDay:      24,
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
			TableWidth: 80,
			Color:      true,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetDataDir returns the directory holding the data files
func (c *Config) GetDataDir() string {
	return c.Storage.Dir
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("FT_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if perms := os.Getenv("FT_DATA_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Storage.DirPermissions = uint32(p)
		}
	}

	// Validation configuration
	if minLen := os.Getenv("FT_VALIDATION_CLIENT_NAME_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.ClientNameMinLength = n
		}
	}
	if maxLen := os.Getenv("FT_VALIDATION_CLIENT_NAME_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.ClientNameMaxLength = n
		}
	}
	if maxHours := os.Getenv("FT_VALIDATION_MAX_HOURS_PER_DAY"); maxHours != "" {
		if h, err := strconv.ParseFloat(maxHours, 64); err == nil {
			c.Validation.MaxHoursPerDay = h
		}
	}

	// Display configuration
	if format := os.Getenv("FT_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if width := os.Getenv("FT_DISPLAY_TABLE_WIDTH"); width != "" {
		if w, err := strconv.Atoi(width); err == nil {
			c.Display.TableWidth = w
		}
	}
	if color := os.Getenv("FT_DISPLAY_COLOR"); color != "" {
		if b, err := strconv.ParseBool(color); err == nil {
			c.Display.Color = b
		}
	}

	// Application configuration
	if timeout := os.Getenv("FT_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("FT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "data directory cannot be empty"}
	}

	// Validate validation configuration
	if c.Validation.ClientNameMinLength < 1 {
		return &ConfigError{Field: "validation.client_name_min_length", Message: "client name minimum length must be at least 1"}
	}
	if c.Validation.ClientNameMaxLength < c.Validation.ClientNameMinLength {
		return &ConfigError{Field: "validation.client_name_max_length", Message: "client name maximum length must be greater than minimum length"}
	}
	if c.Validation.MaxHoursPerDay <= 0 {
		return &ConfigError{Field: "validation.max_hours_per_day", Message: "max hours per day must be positive"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.TableWidth < 20 {
		return &ConfigError{Field: "display.table_width", Message: "table width must be at least 20"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

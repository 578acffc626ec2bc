package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Overlay the config file
	if path, err := GetConfigPath(); err == nil {
		if err := l.config.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	DataDir *string

	// Validation overrides
	ClientNameMinLength *int
	ClientNameMaxLength *int
	MaxHoursPerDay      *float64

	// Display overrides
	DateFormat *string
	TableWidth *int
	Color      *bool

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DataDir != nil {
		config.Storage.Dir = *overrides.DataDir
	}

	if overrides.ClientNameMinLength != nil {
		config.Validation.ClientNameMinLength = *overrides.ClientNameMinLength
	}
	if overrides.ClientNameMaxLength != nil {
		config.Validation.ClientNameMaxLength = *overrides.ClientNameMaxLength
	}
	if overrides.MaxHoursPerDay != nil {
		config.Validation.MaxHoursPerDay = *overrides.MaxHoursPerDay
	}

	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.TableWidth != nil {
		config.Display.TableWidth = *overrides.TableWidth
	}
	if overrides.Color != nil {
		config.Display.Color = *overrides.Color
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

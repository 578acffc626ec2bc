package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application name used for the config directory
	AppName = "ft"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for a cross-platform XDG-compliant location.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, ConfigFile), nil
}

// LoadFromFile overlays values from a TOML file onto the configuration.
// A missing file is not an error; the configuration stays at its
// current values. Invalid TOML is an error.
func (c *Config) LoadFromFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return &ConfigError{Field: "file", Message: "invalid config file " + path + ": " + err.Error()}
	}
	return nil
}

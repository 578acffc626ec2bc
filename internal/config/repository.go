package config

import (
	"fmt"
	"os"

	"freelance-tracker/internal/repository/csvfile"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (csvfile.Repository, error) {
	repo, err := csvfile.New(config.GetDataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data files: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates a repository backed by a throwaway
// temporary directory for testing
func CreateTestRepository() (csvfile.Repository, error) {
	dir, err := os.MkdirTemp("", "ft-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create test directory: %w", err)
	}

	repo, err := csvfile.New(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test data files: %w", err)
	}

	return repo, nil
}

package config

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/dsfetch/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if _, err := output.ParseMode(c.Output); err != nil {
		return err
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.Kaggle.Enabled && c.Kaggle.BaseURL == "" {
		return fmt.Errorf("kaggle.base_url is required when kaggle is enabled")
	}
	return nil
}

// ValidateCatalogFile checks that the configured catalog file exists.
func (c *Config) ValidateCatalogFile() error {
	if c.CatalogFile == "" {
		return nil
	}
	if _, err := os.Stat(c.CatalogFile); os.IsNotExist(err) {
		return fmt.Errorf("catalog file does not exist: %s\nHint: Create the file or use --catalog to specify a different path", c.CatalogFile)
	}
	return nil
}

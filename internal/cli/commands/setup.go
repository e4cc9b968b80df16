package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/cli/config"
	"github.com/leapstack-labs/dsfetch/internal/cli/output"
	"github.com/leapstack-labs/dsfetch/internal/fetch"
	"github.com/leapstack-labs/dsfetch/internal/kaggle"
)

// ErrMissingDatasets is returned in strict mode when verification found
// missing datasets.
var ErrMissingDatasets = errors.New("some datasets are missing")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Catalog  catalog.Catalog
	RunID    string
}

// NewCommandContext creates a CommandContext with the resolved catalog and a
// renderer for the configured output mode.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		return nil, err
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "datasets", len(cat), "root", cfg.Root, "catalog_file", cfg.CatalogFile)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Catalog:  cat,
		RunID:    config.GetRunID(cmd.Context()),
	}, nil
}

// Downloader builds the HTTP downloader for this command, drawing progress on
// the renderer's text stream.
func (c *CommandContext) Downloader() *fetch.Downloader {
	return fetch.NewDownloader(
		fetch.WithHTTPClient(&http.Client{Timeout: c.Cfg.HTTPTimeout}),
		fetch.WithProgress(c.Renderer.ProgressWriter()),
		fetch.WithLogger(c.Logger),
	)
}

// ProbeOptions returns the Kaggle probe settings derived from the config.
func (c *CommandContext) ProbeOptions(d *fetch.Downloader) kaggle.ProbeOptions {
	return kaggle.ProbeOptions{
		Enabled:    c.Cfg.Kaggle.Enabled,
		Source:     kaggle.CredentialSource{ConfigDir: c.Cfg.Kaggle.ConfigDir},
		BaseURL:    c.Cfg.Kaggle.BaseURL,
		Downloader: d,
		Logger:     c.Logger,
	}
}

// Helper functions shared across commands

// loadCatalog returns the default catalog extended by the configured
// catalog file, if any.
func loadCatalog(cfg *config.Config) (catalog.Catalog, error) {
	cat := catalog.Default(cfg.Root)
	if cfg.CatalogFile == "" {
		return cat, nil
	}

	if err := cfg.ValidateCatalogFile(); err != nil {
		return nil, err
	}
	extra, err := catalog.LoadFile(cfg.CatalogFile, cfg.Root)
	if err != nil {
		return nil, err
	}

	cat = cat.Merge(extra)
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dsfetch/internal/cli/output"
	"github.com/leapstack-labs/dsfetch/internal/setup"
)

// NewSetupCommand creates the setup command.
func NewSetupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Download, extract and verify all datasets",
		Long: `Download and extract every dataset in the catalog, then verify that each
one is present.

Datasets whose directory already has content are skipped, so running setup
again only fetches what is missing. Kaggle datasets are downloaded through the
Kaggle API when credentials are available; otherwise manual download
instructions are printed.

Running dsfetch without a subcommand is the same as dsfetch setup.`,
		Example: `  # Fetch everything into ./datasets
  dsfetch setup

  # Use another root and skip the Kaggle API
  dsfetch setup --root /data/recsys --no-kaggle

  # Fail with exit code 1 if anything is still missing
  dsfetch setup --strict`,
		Args: cobra.NoArgs,
		RunE: RunSetup,
	}

	return cmd
}

// RunSetup runs the full setup sequence. It is also the root command's
// default action.
func RunSetup(cmd *cobra.Command, _ []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	dl := cmdCtx.Downloader()
	runner := setup.NewRunner(setup.Options{
		RunID:      cmdCtx.RunID,
		Root:       cmdCtx.Cfg.Root,
		Catalog:    cmdCtx.Catalog,
		Downloader: dl,
		Probe:      cmdCtx.ProbeOptions(dl),
		Reporter:   r,
		Logger:     cmdCtx.Logger,
	})

	result := runner.Run(cmd.Context())

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(result); err != nil {
			return err
		}
	}

	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("setup interrupted: %w", err)
	}
	if cmdCtx.Cfg.Strict && !result.AllPresent {
		return ErrMissingDatasets
	}
	return nil
}

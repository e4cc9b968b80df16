package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dsfetch/internal/cli/output"
	"github.com/leapstack-labs/dsfetch/internal/setup"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check which datasets are present",
		Long: `Check the marker file of every dataset in the catalog and report which
ones are present. Nothing is downloaded or written.`,
		Example: `  # Report dataset presence
  dsfetch verify

  # Machine-readable report
  dsfetch verify --output json

  # Exit with code 1 when something is missing
  dsfetch verify --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd)
		},
	}

	return cmd
}

func runVerify(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	report := setup.Verify(cmdCtx.Catalog)
	cmdCtx.Logger.Debug("verification finished",
		"checks", len(report.Checks),
		"missing", len(report.Missing()))

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(report); err != nil {
			return err
		}
	} else {
		r.Header("Verification")
		setup.PrintReport(r, report)
		r.Println("")
		if report.AllPresent() {
			r.Success("All datasets are ready!")
		} else {
			r.Warning(fmt.Sprintf("%d of %d datasets are missing. Run dsfetch setup to fetch them.",
				len(report.Missing()), len(report.Checks)))
		}
	}

	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("verify interrupted: %w", err)
	}
	if cmdCtx.Cfg.Strict && !report.AllPresent() {
		return ErrMissingDatasets
	}
	return nil
}

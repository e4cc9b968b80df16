package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
)

// BuildInfo identifies a dsfetch binary.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display dsfetch version, build metadata and the size of the built-in catalog.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "dsfetch v%s\n", info.Version)
			_, _ = fmt.Fprintf(w, "  commit:   %s\n", info.GitCommit)
			_, _ = fmt.Fprintf(w, "  built:    %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(w, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(w, "  datasets: %d built in\n", len(catalog.Default(catalog.DefaultRoot)))
		},
	}
}

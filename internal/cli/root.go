// Package cli provides the command-line interface for dsfetch.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dsfetch/internal/cli/commands"
	"github.com/leapstack-labs/dsfetch/internal/cli/config"
	"github.com/leapstack-labs/dsfetch/internal/cli/output"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dsfetch",
		Short: "dsfetch - dataset fetch, extract and verify",
		Long: `dsfetch downloads the datasets used by the recommendation notebooks into a
fixed directory layout and verifies that every expected file is present.

Open datasets are downloaded directly. Kaggle datasets go through the Kaggle
API when credentials are configured (KAGGLE_USERNAME/KAGGLE_KEY or
~/.kaggle/kaggle.json); otherwise manual download steps are printed.

Running dsfetch without a subcommand performs a full setup.`,
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			logger := config.NewLogger(cmd.ErrOrStderr(), cfg, runID)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = config.WithConfig(ctx, cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			ctx = config.WithRunID(ctx, runID)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			logger.Debug("configuration loaded",
				"root", cfg.Root,
				"output", cfg.Output,
				"kaggle_enabled", cfg.Kaggle.Enabled,
				"http_timeout", cfg.HTTPTimeout)

			return nil
		},
		RunE:          commands.RunSetup,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}} (commit %s, built %s)\n", GitCommit, BuildDate))

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./dsfetch.yaml)")
	flags.String("root", "", "Directory datasets are installed under (default: ./datasets)")
	flags.String("catalog", "", "YAML file with additional or replacement datasets")
	flags.StringP("output", "o", "", "Output format (auto|text|plain|json)")
	flags.BoolP("verbose", "v", false, "Verbose output (debug logging)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.Bool("strict", false, "Exit with code 1 when any dataset is missing")
	flags.Bool("no-kaggle", false, "Do not use the Kaggle API; print manual instructions instead")
	flags.String("kaggle-config-dir", "", "Directory containing kaggle.json")
	flags.String("kaggle-base-url", "", "Kaggle API base URL")
	flags.Duration("http-timeout", config.DefaultHTTPTimeout, "Timeout for a single download")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, len(output.Modes))
		for i, m := range output.Modes {
			modes[i] = string(m)
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}))
	rootCmd.AddCommand(commands.NewSetupCommand())
	rootCmd.AddCommand(commands.NewVerifyCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dsfetch.

To load completions:

Bash:
  $ source <(dsfetch completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dsfetch completion bash > /etc/bash_completion.d/dsfetch
  # macOS:
  $ dsfetch completion bash > $(brew --prefix)/etc/bash_completion.d/dsfetch

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dsfetch completion zsh > "${fpath[1]}/_dsfetch"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dsfetch completion fish | source

  # To load completions for each session, execute once:
  $ dsfetch completion fish > ~/.config/fish/completions/dsfetch.fish

PowerShell:
  PS> dsfetch completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> dsfetch completion powershell > dsfetch.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qeforge/qeforge/pkg/telemetry"
)

var (
	// Global flags
	logLevel  string
	logFormat string
	noColor   bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qeforge",
		Short: "qeforge - Quantum ESPRESSO input file generator",
		Long: `qeforge renders input files for the Quantum ESPRESSO programs pw.x,
bands.x and pw2wannier90.x from job documents written in YAML, JSON or CUE.

Job documents are checked for shape when loaded, and pw.x inputs are
validated (positive cutoffs, thresholds, masses and smearing) before any
text is produced.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd, version)
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored console logs")

	// Add subcommands
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newKPointsCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}

// setupLogger builds the command logger from the defaults, the environment
// and the global flags, in increasing precedence, and stores it in the
// command context.
func setupLogger(cmd *cobra.Command, version string) error {
	cfg := telemetry.DefaultConfig()
	cfg.ServiceVersion = version
	cfg.ApplyEnv()

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	cfg.Logging.NoColor = noColor

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := telemetry.NewLoggerWithWriter(cfg.Logging, cmd.ErrOrStderr())
	logger.SetGlobal()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

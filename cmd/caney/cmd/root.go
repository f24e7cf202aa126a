// Package cmd provides the CLI commands for caney.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"caney/internal/logging"
	"caney/pkg/version"
)

var (
	logLevel  string
	logFormat string
)

// NewRootCmd creates the root command for the caney CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caney",
		Short: "Configuration, spectral index and optimizer tools for CNN remote sensing",
		Long: `caney validates the hyperparameter documents of a remote sensing CNN
pipeline, evaluates the spectral indices used to derive extra raster bands
and resolves optimizer expressions.`,
		Version:      version.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := logging.DefaultConfig()
			cfg.Level = logLevel
			cfg.Format = logFormat
			cfg.Output = cmd.ErrOrStderr()
			logging.Setup(cfg)
			return nil
		},
	}

	cmd.SetVersionTemplate("caney version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto", "Log format (auto, text, json)")

	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newIndicesCmd())
	cmd.AddCommand(newOptimizerCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

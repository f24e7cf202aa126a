package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"caney/pkg/config"
	"caney/pkg/indices"
	"caney/pkg/optimizers"
	"caney/pkg/raster"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hyperparameter documents",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	var dataDir string

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a document holding the default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.CreateDefaultConfigFile(path, dataDir); err != nil {
				return err
			}
			slog.Info("wrote default config", slog.String("path", path))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "Value written to data_dir")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var path string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "config.yaml", "Path to the YAML document")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Merge and validate a document",
		Long: `Merge a document over the defaults and validate it. Every output band
must be an input band or a registered spectral index, and the optimizer
expression must resolve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := checkOutputBands(cfg); err != nil {
				return err
			}

			opt, err := optimizers.Resolve(cfg.Optimizer)
			if err != nil {
				return err
			}
			slog.Debug("resolved optimizer", slog.String("name", opt.Name()))

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d input bands, %d output bands, optimizer %s)\n",
				path, len(cfg.InputBands), len(cfg.OutputBands), opt.Name())
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "config.yaml", "Path to the YAML document")

	return cmd
}

// checkOutputBands reports output bands that are neither input bands nor
// registered indices, then derives the indices on a single pixel so an index
// whose source bands are not among the input bands fails here rather than at
// prediction time.
func checkOutputBands(cfg config.Config) error {
	input := raster.Normalize(cfg.InputBands)

	var unknown []string
	for _, band := range raster.Normalize(cfg.OutputBands) {
		if contains(input, band) || indices.IsRegistered(band) {
			continue
		}
		unknown = append(unknown, band)
	}

	if len(unknown) > 0 {
		return fmt.Errorf("%w: output bands %s are neither input bands nor spectral indices",
			config.ErrInvalid, strings.Join(unknown, ", "))
	}

	pixel, err := raster.Constant(input, 1, 1, make([]float64, len(input)))
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	if _, err := indices.AddIndices(pixel, input, cfg.OutputBands); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// loadOptional loads path when it is set and otherwise returns the defaults.
func loadOptional(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

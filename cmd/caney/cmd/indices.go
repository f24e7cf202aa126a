package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"caney/pkg/indices"
	"caney/pkg/raster"
)

// newIndicesCmd creates the indices command group.
func newIndicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indices",
		Short: "List and evaluate spectral indices",
	}

	cmd.AddCommand(newIndicesListCmd())
	cmd.AddCommand(newIndicesEvalCmd())

	return cmd
}

func newIndicesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered spectral indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION\tBANDS\tFORMULA")
			for _, idx := range indices.Registered() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					idx.Name, idx.Description, strings.Join(idx.Bands, ","), idx.Formula)
			}
			return w.Flush()
		},
	}
}

func newIndicesEvalCmd() *cobra.Command {
	var path string
	var inputBands []string
	var outputBands []string
	var workers int
	var standardize bool

	cmd := &cobra.Command{
		Use:   "eval VALUE...",
		Short: "Evaluate the output bands for one pixel",
		Long: `Build a single pixel raster from one reflectance value per input band,
append the spectral indices named in the output bands and print the
output bands in order.

Bands default to the configuration document given with --config, or to
the built-in defaults. --input-bands and --output-bands override them.`,
		Example: `  caney indices eval --input-bands red,nir1 --output-bands red,nir1,ndvi 0.1 0.3`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadOptional(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("input-bands") {
				cfg.InputBands = inputBands
			}
			if cmd.Flags().Changed("output-bands") {
				cfg.OutputBands = outputBands
			}

			values := make([]float64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", arg, err)
				}
				values[i] = v
			}
			if len(values) != len(cfg.InputBands) {
				return fmt.Errorf("got %d values for %d input bands %v",
					len(values), len(cfg.InputBands), cfg.InputBands)
			}

			pixel, err := raster.Constant(cfg.InputBands, 1, 1, values)
			if err != nil {
				return err
			}
			augmented, err := indices.AddIndicesContext(cmd.Context(), pixel, cfg.InputBands, cfg.OutputBands, workers)
			if err != nil {
				return err
			}
			out, err := augmented.Select(cfg.OutputBands...)
			if err != nil {
				return err
			}

			if standardize {
				out, err = out.Standardize(cfg.Mean, cfg.Std)
				if err != nil {
					return fmt.Errorf("failed to standardize output bands: %w", err)
				}
			}

			coords := out.Coords()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BAND\tCOORD\tVALUE")
			for i, s := range out.Stats() {
				fmt.Fprintf(w, "%s\t%d\t%g\n", s.Name, coords[i], s.Mean)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "Path to a YAML document supplying the bands")
	cmd.Flags().StringSliceVar(&inputBands, "input-bands", nil, "Input band names, in value order")
	cmd.Flags().StringSliceVar(&outputBands, "output-bands", nil, "Output band names")
	cmd.Flags().IntVar(&workers, "workers", 1, "Indices computed concurrently")
	cmd.Flags().BoolVar(&standardize, "standardize", false, "Standardize output bands with the configured mean and std")

	return cmd
}

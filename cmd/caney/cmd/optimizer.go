package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"caney/pkg/optimizers"
)

// newOptimizerCmd creates the optimizer command group.
func newOptimizerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimizer",
		Short: "List and resolve optimizer expressions",
	}

	cmd.AddCommand(newOptimizerListCmd())
	cmd.AddCommand(newOptimizerResolveCmd())

	return cmd
}

func newOptimizerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the supported optimizers and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Namespaces: %s\n\n", strings.Join(optimizers.Namespaces(), ", "))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDEFAULTS")
			for _, name := range optimizers.Names() {
				defaults, _ := optimizers.Defaults(name)
				fmt.Fprintf(w, "%s\t%s\n", name, formatHyper(defaults))
			}
			return w.Flush()
		},
	}
}

func newOptimizerResolveCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "resolve EXPR",
		Short:   "Resolve an optimizer expression",
		Example: `  caney optimizer resolve "tf.keras.optimizers.Adam(learning_rate=1e-4)"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := optimizers.Resolve(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Name   string             `json:"name"`
					Config map[string]float64 `json:"config"`
				}{opt.Name(), opt.Config()})
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s(%s)\n", opt.Name(), formatHyper(opt.Config()))
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// formatHyper renders hyperparameters as sorted key=value pairs.
func formatHyper(hyper map[string]float64) string {
	keys := make([]string, 0, len(hyper))
	for k := range hyper {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, hyper[k])
	}
	return strings.Join(parts, ", ")
}

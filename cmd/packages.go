package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/deal-analyzer/internal/bundle"
)

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List available analysis packages",
	Long: `List every analysis package the engine can run via --package,
in registration order. Package IDs are prefixed by asset class
(office-, retail-, industrial-, mf-, mixeduse-) with a handful of
cross-asset deal packages.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg := bundle.NewRegistry(bundle.Defaults{})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDESCRIPTION")
		for _, p := range reg.Packages() {
			fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(packagesCmd)
}

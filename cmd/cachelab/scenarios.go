package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cachelab-ai/cachelab/pkg/scenario"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the benchmark scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tEXPECTATION")
			for _, def := range scenario.Definitions() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Title, def.Expectation)
			}
			return w.Flush()
		},
	}
}

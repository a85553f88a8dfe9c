package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var opts runOptions
	root := &cobra.Command{
		Use:     "cachelab",
		Short:   "cachelab — prompt-cache benchmark for Bedrock-hosted Anthropic models",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(&opts)
		},
	}
	addRunFlags(root, &opts)

	root.AddCommand(
		newRunCmd(),
		newScenariosCmd(),
		newStatsCmd(),
		newExportCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

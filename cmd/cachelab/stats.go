package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cachelab-ai/cachelab/pkg/config"
	"github.com/cachelab-ai/cachelab/pkg/history"
)

func newStatsCmd() *cobra.Command {
	var (
		configPath string
		runID      string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recorded benchmark runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			store, err := history.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()

			// Per-scenario breakdown for one run
			if runID != "" {
				stats, err := store.RunScenarios(ctx, runID)
				if err != nil {
					return err
				}
				if len(stats) == 0 {
					fmt.Println("No invocations found for run.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "SCENARIO\tREQUESTS\tAVG LATENCY\tINPUT\tWRITES\tREADS\tOUTPUT")
				for _, s := range stats {
					fmt.Fprintf(w, "%s\t%d\t%.2fs\t%d\t%d\t%d\t%d\n",
						s.Scenario, s.Requests, s.AvgLatencyMS/1000,
						s.InputTokens, s.CacheWrites, s.CacheReads, s.OutputTokens)
				}
				return w.Flush()
			}

			// Default: recent runs
			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN ID\tMODEL\tREGION\tSTARTED\tSCENARIOS\tREQUESTS")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
					r.ID, r.Model, r.Region, r.StartedAt.Format("2006-01-02T15:04:05"),
					r.ScenarioCount, r.InvocationCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to cachelab config file")
	cmd.Flags().StringVar(&runID, "run", "", "show per-scenario breakdown for a specific run")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}

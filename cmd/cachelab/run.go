package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cachelab-ai/cachelab/pkg/bedrock"
	"github.com/cachelab-ai/cachelab/pkg/config"
	"github.com/cachelab-ai/cachelab/pkg/history"
	"github.com/cachelab-ai/cachelab/pkg/models"
	"github.com/cachelab-ai/cachelab/pkg/payload"
	"github.com/cachelab-ai/cachelab/pkg/pricing"
	"github.com/cachelab-ai/cachelab/pkg/report"
	"github.com/cachelab-ai/cachelab/pkg/scenario"
)

type runOptions struct {
	configPath string
	scenarios  []string
	csvPath    string
	jsonPath   string
	noHistory  bool
}

func addRunFlags(cmd *cobra.Command, o *runOptions) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "path to cachelab config file")
	cmd.Flags().StringSliceVar(&o.scenarios, "scenario", nil, "run only the named scenarios (repeatable)")
	cmd.Flags().StringVar(&o.csvPath, "csv", "", "export per-request rows to a CSV file")
	cmd.Flags().StringVar(&o.jsonPath, "json", "", "export per-request rows to a JSON Lines file")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "skip recording the run to the history database")
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(&opts)
		},
	}
	addRunFlags(cmd, &opts)
	return cmd
}

// rowWriter is satisfied by report.CSVWriter and report.JSONWriter.
type rowWriter interface {
	Write(report.Row) error
	Close() error
}

func runSuite(opts *runOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return err
		}
	}

	builder := payload.New(cfg)
	if est := builder.EstimatedStaticTokens(); est < cfg.StaticPrompt.MinCacheTokens {
		log.Printf("warning: static prefix estimates %d tokens, below the %d-token cache minimum; the service may skip caching",
			est, cfg.StaticPrompt.MinCacheTokens)
	}

	ctx := context.Background()
	inv, err := bedrock.New(ctx, cfg, builder)
	if err != nil {
		return err
	}

	var writers []rowWriter
	if opts.csvPath != "" {
		w, err := report.NewCSVWriter(opts.csvPath)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}
	if opts.jsonPath != "" {
		w, err := report.NewJSONWriter(opts.jsonPath)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}
	defer func() {
		for _, w := range writers {
			if err := w.Close(); err != nil {
				log.Printf("close export file: %v", err)
			}
		}
	}()

	run := &models.Run{
		ID:        uuid.NewString(),
		Model:     cfg.ModelID,
		Region:    cfg.Region,
		StartedAt: time.Now().UTC(),
	}
	fmt.Printf("\n%s | Model: %s\n", run.StartedAt.Format(time.RFC3339), cfg.ModelID)

	runner := scenario.New(inv, cfg, os.Stdout)
	runner.OnScenario = func(res models.ScenarioResult) {
		report.Write(os.Stdout, res)
		run.Scenarios = append(run.Scenarios, res)

		one := models.Run{ID: run.ID, Scenarios: []models.ScenarioResult{res}}
		for _, row := range report.Rows(&one) {
			for _, w := range writers {
				if err := w.Write(row); err != nil {
					log.Printf("export row: %v", err)
				}
			}
		}
	}

	if _, err := runner.Run(ctx, opts.scenarios); err != nil {
		return err
	}

	report.WriteSummary(os.Stdout, run, pricing.New(cfg.Pricing))

	if !opts.noHistory {
		recordRun(ctx, cfg.DBPath, run)
	}
	return nil
}

// recordRun persists the run, logging instead of failing: history is an
// amenity around the measurement, not part of it.
func recordRun(ctx context.Context, dbPath string, run *models.Run) {
	store, err := history.Open(dbPath)
	if err != nil {
		log.Printf("history unavailable: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, run); err != nil {
		log.Printf("record run: %v", err)
		return
	}
	fmt.Printf("\nRun %s recorded to %s\n", run.ID, dbPath)
}

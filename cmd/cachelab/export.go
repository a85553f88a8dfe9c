package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cachelab-ai/cachelab/pkg/config"
	"github.com/cachelab-ai/cachelab/pkg/history"
	"github.com/cachelab-ai/cachelab/pkg/report"
)

func newExportCmd() *cobra.Command {
	var (
		configPath string
		runID      string
		csvPath    string
		jsonPath   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Re-export a recorded run to CSV or JSON Lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" && jsonPath == "" {
				return fmt.Errorf("nothing to do: pass --csv and/or --json")
			}

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

			run, err := store.RunDetail(context.Background(), runID)
			if err != nil {
				return err
			}
			rows := report.Rows(run)

			if csvPath != "" {
				if err := exportCSV(csvPath, rows); err != nil {
					return err
				}
				fmt.Printf("Wrote %d rows to %s\n", len(rows), csvPath)
			}
			if jsonPath != "" {
				if err := exportJSON(jsonPath, rows); err != nil {
					return err
				}
				fmt.Printf("Wrote %d rows to %s\n", len(rows), jsonPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to cachelab config file")
	cmd.Flags().StringVar(&runID, "run", "", "run id to export")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV output path")
	cmd.Flags().StringVar(&jsonPath, "json", "", "JSON Lines output path")
	_ = cmd.MarkFlagRequired("run")
	return cmd
}

func exportCSV(path string, rows []report.Row) error {
	w, err := report.NewCSVWriter(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func exportJSON(path string, rows []report.Row) error {
	w, err := report.NewJSONWriter(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

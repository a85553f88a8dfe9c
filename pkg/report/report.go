// Package report renders benchmark results as text and exports them to
// CSV and JSON Lines files.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/cachelab-ai/cachelab/pkg/models"
	"github.com/cachelab-ai/cachelab/pkg/pricing"
)

const rule = 70

// Write renders one scenario: a per-request line for each invocation
// followed by cache totals and mean latency.
func Write(w io.Writer, res models.ScenarioResult) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", strings.Repeat("=", rule), res.Title, strings.Repeat("=", rule))

	for _, inv := range res.Invocations {
		fmt.Fprintf(w, "Request %d: latency=%.2fs | input=%d | write=%d | read=%d\n",
			inv.ID, inv.Latency.Seconds(), inv.Usage.InputTokens,
			inv.Usage.CacheCreationInputTokens, inv.Usage.CacheReadInputTokens)
	}

	totals := res.Totals()
	fmt.Fprintf(w, "\nTotal cache writes: %s\n", humanize.Comma(int64(totals.CacheCreationInputTokens)))
	fmt.Fprintf(w, "Total cache reads: %s\n", humanize.Comma(int64(totals.CacheReadInputTokens)))
	fmt.Fprintf(w, "Average latency: %.2fs\n", res.AvgLatency().Seconds())
}

// WriteSummary renders the trailing suite summary: one expectation line
// per scenario, then a totals table. Estimated costs appear when the
// run's model has a price card.
func WriteSummary(w io.Writer, run *models.Run, table *pricing.Table) {
	fmt.Fprintf(w, "\n%s\nSUMMARY\n%s\n", strings.Repeat("=", rule), strings.Repeat("=", rule))
	for i, res := range run.Scenarios {
		fmt.Fprintf(w, "Test %d (%s): %s\n", i+1, res.Name, res.Expectation)
	}

	priced := false
	if table != nil {
		_, priced = table.Lookup(run.Model)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "SCENARIO\tREQUESTS\tAVG LATENCY\tINPUT\tWRITES\tREADS\tOUTPUT"
	if priced {
		header += "\tEST. COST\tSAVINGS"
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, header)
	for _, res := range run.Scenarios {
		totals := res.Totals()
		fmt.Fprintf(tw, "%s\t%d\t%.2fs\t%s\t%s\t%s\t%s",
			res.Name, len(res.Invocations), res.AvgLatency().Seconds(),
			humanize.Comma(int64(totals.InputTokens)),
			humanize.Comma(int64(totals.CacheCreationInputTokens)),
			humanize.Comma(int64(totals.CacheReadInputTokens)),
			humanize.Comma(int64(totals.OutputTokens)))
		if priced {
			est, _ := table.Estimate(run.Model, totals)
			fmt.Fprintf(tw, "\t$%.4f\t$%+.4f", est.Cost, est.Savings)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

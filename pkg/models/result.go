package models

import "time"

// Invocation is the measured outcome of one model call. ID is the
// submission id assigned by the scenario, not a completion rank.
type Invocation struct {
	ID      int           `json:"id"`
	Latency time.Duration `json:"latency"`
	Usage   Usage         `json:"usage"`
}

// ScenarioResult collects one scenario's invocations in submission-id
// order.
type ScenarioResult struct {
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Expectation string       `json:"expectation"`
	Invocations []Invocation `json:"invocations"`
}

// Totals sums usage across the scenario's invocations.
func (r *ScenarioResult) Totals() Usage {
	var total Usage
	for _, inv := range r.Invocations {
		total.Add(inv.Usage)
	}
	return total
}

// AvgLatency returns the mean wall-clock latency, zero when empty.
func (r *ScenarioResult) AvgLatency() time.Duration {
	if len(r.Invocations) == 0 {
		return 0
	}
	var sum time.Duration
	for _, inv := range r.Invocations {
		sum += inv.Latency
	}
	return sum / time.Duration(len(r.Invocations))
}

// Run is one full benchmark execution.
type Run struct {
	ID        string           `json:"id"`
	Model     string           `json:"model"`
	Region    string           `json:"region"`
	StartedAt time.Time        `json:"started_at"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// InvocationCount returns the number of calls across all scenarios.
func (r *Run) InvocationCount() int {
	n := 0
	for _, s := range r.Scenarios {
		n += len(s.Invocations)
	}
	return n
}

// RunSummary is a stored run with rollup counts, for listings.
type RunSummary struct {
	ID              string    `json:"id"`
	Model           string    `json:"model"`
	Region          string    `json:"region"`
	StartedAt       time.Time `json:"started_at"`
	ScenarioCount   int       `json:"scenario_count"`
	InvocationCount int       `json:"invocation_count"`
}

// ScenarioStats aggregates one scenario's stored invocations.
type ScenarioStats struct {
	Scenario     string  `json:"scenario"`
	Requests     int     `json:"requests"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	InputTokens  int     `json:"input_tokens"`
	CacheWrites  int     `json:"cache_writes"`
	CacheReads   int     `json:"cache_reads"`
	OutputTokens int     `json:"output_tokens"`
}

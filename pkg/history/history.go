// Package history persists benchmark runs to SQLite so past cache
// behavior can be compared across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cachelab-ai/cachelab/pkg/models"
)

// Store records and queries benchmark runs.
type Store interface {
	// Record stores a completed run and all of its invocations.
	Record(ctx context.Context, run *models.Run) error
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]models.RunSummary, error)
	// RunScenarios returns per-scenario aggregates for one run.
	RunScenarios(ctx context.Context, runID string) ([]models.ScenarioStats, error)
	// RunDetail reconstructs a stored run with its invocations.
	RunDetail(ctx context.Context, runID string) (*models.Run, error)
	// Close releases resources.
	Close() error
}

// SQLiteStore implements Store with a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	model TEXT NOT NULL,
	region TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	scenario_count INTEGER NOT NULL,
	invocation_count INTEGER NOT NULL
);
`

const createInvocationsTable = `
CREATE TABLE IF NOT EXISTS invocations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	scenario TEXT NOT NULL,
	request_id INTEGER NOT NULL,
	latency_ms REAL NOT NULL,
	input_tokens INTEGER NOT NULL,
	cache_write_tokens INTEGER NOT NULL,
	cache_read_tokens INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invocations_run_scenario ON invocations(run_id, scenario);
`

// Open creates a SQLiteStore and runs auto-migration.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate runs table: %w", err)
	}
	if _, err := db.Exec(createInvocationsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate invocations table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record stores the run row and every invocation in one transaction.
func (s *SQLiteStore) Record(ctx context.Context, run *models.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, model, region, started_at, scenario_count, invocation_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Model, run.Region, run.StartedAt, len(run.Scenarios), run.InvocationCount(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	for _, res := range run.Scenarios {
		for _, inv := range res.Invocations {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO invocations (run_id, scenario, request_id, latency_ms,
				 input_tokens, cache_write_tokens, cache_read_tokens, output_tokens)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID, res.Name, inv.ID, float64(inv.Latency)/float64(time.Millisecond),
				inv.Usage.InputTokens, inv.Usage.CacheCreationInputTokens,
				inv.Usage.CacheReadInputTokens, inv.Usage.OutputTokens,
			)
			if err != nil {
				return fmt.Errorf("record invocation %s/%d: %w", res.Name, inv.ID, err)
			}
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]models.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, model, region, started_at, scenario_count, invocation_count
		 FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var summaries []models.RunSummary
	for rows.Next() {
		var r models.RunSummary
		if err := rows.Scan(&r.ID, &r.Model, &r.Region, &r.StartedAt, &r.ScenarioCount, &r.InvocationCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summaries = append(summaries, r)
	}
	return summaries, rows.Err()
}

// RunScenarios aggregates one run's invocations per scenario, in the
// order the scenarios first ran.
func (s *SQLiteStore) RunScenarios(ctx context.Context, runID string) ([]models.ScenarioStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT scenario, COUNT(*), AVG(latency_ms),
		 SUM(input_tokens), SUM(cache_write_tokens), SUM(cache_read_tokens), SUM(output_tokens)
		 FROM invocations WHERE run_id = ? GROUP BY scenario ORDER BY MIN(id)`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("run scenarios: %w", err)
	}
	defer rows.Close()

	var stats []models.ScenarioStats
	for rows.Next() {
		var st models.ScenarioStats
		if err := rows.Scan(&st.Scenario, &st.Requests, &st.AvgLatencyMS,
			&st.InputTokens, &st.CacheWrites, &st.CacheReads, &st.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan scenario stats: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// RunDetail reconstructs a stored run. Returns sql.ErrNoRows wrapped
// when the run id is unknown.
func (s *SQLiteStore) RunDetail(ctx context.Context, runID string) (*models.Run, error) {
	run := &models.Run{ID: runID}
	err := s.db.QueryRowContext(ctx,
		`SELECT model, region, started_at FROM runs WHERE id = ?`, runID,
	).Scan(&run.Model, &run.Region, &run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT scenario, request_id, latency_ms,
		 input_tokens, cache_write_tokens, cache_read_tokens, output_tokens
		 FROM invocations WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load invocations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var scenario string
		var inv models.Invocation
		var latencyMS float64
		if err := rows.Scan(&scenario, &inv.ID, &latencyMS,
			&inv.Usage.InputTokens, &inv.Usage.CacheCreationInputTokens,
			&inv.Usage.CacheReadInputTokens, &inv.Usage.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		inv.Latency = time.Duration(latencyMS * float64(time.Millisecond))

		if n := len(run.Scenarios); n == 0 || run.Scenarios[n-1].Name != scenario {
			run.Scenarios = append(run.Scenarios, models.ScenarioResult{Name: scenario})
		}
		last := &run.Scenarios[len(run.Scenarios)-1]
		last.Invocations = append(last.Invocations, inv)
	}
	return run, rows.Err()
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

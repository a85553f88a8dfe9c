package scenario

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cachelab-ai/cachelab/pkg/config"
	"github.com/cachelab-ai/cachelab/pkg/models"
)

const (
	burstRequests    = 5
	baselineRequests = 3
)

// Invoker performs one timed model call. *bedrock.Invoker satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, id int, query string, cached bool) (models.Invocation, error)
}

// Runner executes scenarios against an invoker. OnScenario, when set,
// fires after each scenario completes so callers can report
// incrementally instead of waiting for the whole suite.
type Runner struct {
	inv      Invoker
	cfg      *config.Config
	progress io.Writer

	OnScenario func(models.ScenarioResult)
}

// New returns a Runner that writes progress lines to progress.
func New(inv Invoker, cfg *config.Config, progress io.Writer) *Runner {
	return &Runner{inv: inv, cfg: cfg, progress: progress}
}

// RunAll executes the full suite in registered order.
func (r *Runner) RunAll(ctx context.Context) ([]models.ScenarioResult, error) {
	return r.Run(ctx, nil)
}

// Run executes the named scenarios in suite order. Any invocation error
// aborts the run immediately; partially collected scenarios are
// discarded.
func (r *Runner) Run(ctx context.Context, names []string) ([]models.ScenarioResult, error) {
	defs, err := Resolve(names)
	if err != nil {
		return nil, err
	}

	results := make([]models.ScenarioResult, 0, len(defs))
	for _, def := range defs {
		fmt.Fprintf(r.progress, "\n%s\n", def.Banner)

		invs, err := def.run(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", def.Name, err)
		}

		res := models.ScenarioResult{
			Name:        def.Name,
			Title:       def.Title,
			Expectation: def.Expectation,
			Invocations: invs,
		}
		results = append(results, res)
		if r.OnScenario != nil {
			r.OnScenario(res)
		}
	}
	return results, nil
}

func (r *Runner) query(id int) string {
	return fmt.Sprintf(r.cfg.QueryTemplate, id)
}

// burst submits n requests (ids 1..n) to a pool of cfg.Workers workers
// and waits for all of them. Each result lands in the slot of its
// submission id, so completion order never shows. On failure the first
// error in id order wins, after the pool has drained.
func (r *Runner) burst(ctx context.Context, n int, cached bool) ([]models.Invocation, error) {
	jobs := make(chan int)
	results := make([]models.Invocation, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				id := idx + 1
				results[idx], errs[idx] = r.inv.Invoke(ctx, id, r.query(id), cached)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// sequential issues n requests (ids 1..n) one at a time with the
// configured pause after each call.
func (r *Runner) sequential(ctx context.Context, n int, cached bool) ([]models.Invocation, error) {
	results := make([]models.Invocation, 0, n)
	for id := 1; id <= n; id++ {
		inv, err := r.inv.Invoke(ctx, id, r.query(id), cached)
		if err != nil {
			return nil, err
		}
		results = append(results, inv)
		time.Sleep(r.cfg.Pauses.BetweenRequests)
	}
	return results, nil
}

// concurrentInitial fires the burst against a cold cache. With no prior
// cache entry every request independently attempts a cache write.
func (r *Runner) concurrentInitial(ctx context.Context) ([]models.Invocation, error) {
	return r.burst(ctx, burstRequests, true)
}

// sequentialAfterCache waits for the cache written by earlier traffic
// to settle, then issues the requests one at a time.
func (r *Runner) sequentialAfterCache(ctx context.Context) ([]models.Invocation, error) {
	time.Sleep(r.cfg.Pauses.CacheSettle)
	return r.sequential(ctx, burstRequests, true)
}

// prewarmConcurrent seeds the cache with a single throwaway call, lets
// it settle, then fires the burst. The warm-up call is reported on the
// progress stream but excluded from the scenario's results.
func (r *Runner) prewarmConcurrent(ctx context.Context) ([]models.Invocation, error) {
	fmt.Fprintln(r.progress, "Pre-warming...")
	warm, err := r.inv.Invoke(ctx, 0, r.cfg.WarmupQuery, true)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(r.progress, "Pre-warm: write=%d, read=%d\n",
		warm.Usage.CacheCreationInputTokens, warm.Usage.CacheReadInputTokens)

	time.Sleep(r.cfg.Pauses.CacheSettle)

	fmt.Fprintln(r.progress, "Concurrent after pre-warm...")
	return r.burst(ctx, burstRequests, true)
}

// noCacheBaseline measures cost and latency with caching off entirely.
func (r *Runner) noCacheBaseline(ctx context.Context) ([]models.Invocation, error) {
	return r.sequential(ctx, baselineRequests, false)
}

// concurrentRepeat reruns the burst to check that cache reads stay
// stable once the prefix is cached.
func (r *Runner) concurrentRepeat(ctx context.Context) ([]models.Invocation, error) {
	return r.burst(ctx, burstRequests, true)
}

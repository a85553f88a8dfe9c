// Package scenario runs fixed request patterns against a model and
// collects per-call cache usage.
package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/cachelab-ai/cachelab/pkg/models"
)

// Definition is one registered benchmark scenario. Title and Banner are
// stable labels tied to the scenario, not to its position in a given
// run.
type Definition struct {
	Name        string
	Banner      string
	Title       string
	Expectation string

	run func(*Runner, context.Context) ([]models.Invocation, error)
}

var definitions = []Definition{
	{
		Name:        "concurrent-initial",
		Banner:      "[TEST 1] Initial concurrent requests (expect multiple cache writes)",
		Title:       "TEST 1: Concurrent Initial",
		Expectation: "Shows multiple cache writes",
		run:         (*Runner).concurrentInitial,
	},
	{
		Name:        "sequential-after-cache",
		Banner:      "[TEST 2] Sequential requests (expect cache reads)",
		Title:       "TEST 2: Sequential After Cache",
		Expectation: "Shows cache reads work",
		run:         (*Runner).sequentialAfterCache,
	},
	{
		Name:        "prewarm-concurrent",
		Banner:      "[TEST 3] Pre-warm strategy",
		Title:       "TEST 3: Concurrent After Pre-warm",
		Expectation: "Shows optimized pattern",
		run:         (*Runner).prewarmConcurrent,
	},
	{
		Name:        "no-cache-baseline",
		Banner:      "[TEST 4] Without caching (baseline)",
		Title:       "TEST 4: No Caching",
		Expectation: "Shows baseline cost/latency",
		run:         (*Runner).noCacheBaseline,
	},
	{
		Name:        "concurrent-repeat",
		Banner:      "[TEST 5] Repeat concurrent (verify cache behavior)",
		Title:       "TEST 5: Concurrent Repeat",
		Expectation: "Shows stable cache behavior",
		run:         (*Runner).concurrentRepeat,
	},
}

// Definitions returns every scenario in suite order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Names returns the registered scenario names in suite order.
func Names() []string {
	names := make([]string, len(definitions))
	for i, def := range definitions {
		names[i] = def.Name
	}
	return names
}

// Resolve maps names to definitions, preserving suite order regardless
// of the order requested. An empty selection resolves to the full
// suite.
func Resolve(names []string) ([]Definition, error) {
	if len(names) == 0 {
		return Definitions(), nil
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		found := false
		for _, def := range definitions {
			if def.Name == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown scenario %q (known: %s)", name, strings.Join(Names(), ", "))
		}
		requested[name] = true
	}

	var out []Definition
	for _, def := range definitions {
		if requested[def.Name] {
			out = append(out, def)
		}
	}
	return out, nil
}

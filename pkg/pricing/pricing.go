// Package pricing turns usage counters into estimated dollar costs so
// the report can show what prompt caching actually saved.
package pricing

import "github.com/cachelab-ai/cachelab/pkg/models"

const tokensPerMTok = 1_000_000

// Table maps model ids to their price cards.
type Table struct {
	rows map[string]models.ModelPricing
}

// New builds a Table from configured price cards. Later duplicates win.
func New(rows []models.ModelPricing) *Table {
	m := make(map[string]models.ModelPricing, len(rows))
	for _, p := range rows {
		m[p.Model] = p
	}
	return &Table{rows: m}
}

// Lookup returns the price card for a model, if one is configured.
func (t *Table) Lookup(model string) (models.ModelPricing, bool) {
	p, ok := t.rows[model]
	return p, ok
}

// Estimate prices a usage reading. UncachedCost bills every prompt
// token at the plain input rate, which is what the same traffic would
// have cost with caching off. ok is false when the model has no price
// card.
func (t *Table) Estimate(model string, u models.Usage) (models.CostEstimate, bool) {
	p, ok := t.rows[model]
	if !ok {
		return models.CostEstimate{}, false
	}

	cost := mtok(u.InputTokens)*p.InputPerMTok +
		mtok(u.CacheCreationInputTokens)*p.CacheWritePerMTok +
		mtok(u.CacheReadInputTokens)*p.CacheReadPerMTok +
		mtok(u.OutputTokens)*p.OutputPerMTok

	uncached := mtok(u.PromptTokens())*p.InputPerMTok +
		mtok(u.OutputTokens)*p.OutputPerMTok

	return models.CostEstimate{
		Cost:         cost,
		UncachedCost: uncached,
		Savings:      uncached - cost,
	}, true
}

func mtok(tokens int) float64 {
	return float64(tokens) / tokensPerMTok
}

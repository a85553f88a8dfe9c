package models

// ModelPricing is the per-million-token price card for one model.
// Cache writes are typically billed at a premium over plain input and
// cache reads at a steep discount, which is the economics this harness
// exists to measure.
type ModelPricing struct {
	Model             string  `json:"model" yaml:"model"`
	InputPerMTok      float64 `json:"input_per_mtok" yaml:"input_per_mtok"`
	OutputPerMTok     float64 `json:"output_per_mtok" yaml:"output_per_mtok"`
	CacheWritePerMTok float64 `json:"cache_write_per_mtok" yaml:"cache_write_per_mtok"`
	CacheReadPerMTok  float64 `json:"cache_read_per_mtok" yaml:"cache_read_per_mtok"`
}

// CostEstimate compares the billed cost of a usage reading against what
// the same tokens would have cost with caching off.
type CostEstimate struct {
	Cost         float64 `json:"cost"`
	UncachedCost float64 `json:"uncached_cost"`
	Savings      float64 `json:"savings"`
}

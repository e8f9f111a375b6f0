package findmerge

import (
	"github.com/CertiKProject/findmerge/internal/similarity"
)

// Weights holds the per-term scorer contributions; see DefaultWeights.
type Weights = similarity.Weights

// DefaultWeights are the default per-term scorer contributions.
var DefaultWeights = similarity.DefaultWeights

// consolidateConfig holds the resolved configuration for a
// consolidation call.
type consolidateConfig struct {
	threshold  float64
	weights    Weights
	lineWindow int
	workers    int
}

// Option configures a consolidation call.
type Option func(*consolidateConfig)

// WithThreshold sets the pair-score cutoff at or above which two
// findings are judged equivalent (default 0.6).
func WithThreshold(t float64) Option {
	return func(c *consolidateConfig) {
		c.threshold = t
	}
}

// WithWeights overrides the per-term scorer weights.
func WithWeights(w Weights) Option {
	return func(c *consolidateConfig) {
		c.weights = w
	}
}

// WithLineWindow sets the line distance beyond which proximity credit
// decays to zero (default 25).
func WithLineWindow(n int) Option {
	return func(c *consolidateConfig) {
		c.lineWindow = n
	}
}

// WithWorkers sets the number of concurrent scoring workers
// (default: NumCPU).
func WithWorkers(n int) Option {
	return func(c *consolidateConfig) {
		c.workers = n
	}
}

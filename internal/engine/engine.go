// Package engine orchestrates scoring, clustering, and reduction into
// the consolidation pipeline. The engine is stateless across calls: a
// second call with the same input always yields byte-identical output.
package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/CertiKProject/findmerge/internal/cluster"
	"github.com/CertiKProject/findmerge/internal/merge"
	"github.com/CertiKProject/findmerge/internal/similarity"
	"github.com/CertiKProject/findmerge/internal/types"
)

// Config holds the engine tuning knobs. The zero value selects the
// defaults everywhere.
type Config struct {
	// Threshold is the pair-score cutoff for equivalence.
	Threshold float64
	// Weights are the per-term scorer contributions.
	Weights similarity.Weights
	// LineWindow is the line distance beyond which proximity credit is zero.
	LineWindow int
	// Workers bounds the parallel score-matrix computation.
	Workers int
}

// Engine consolidates findings. Construct with New; the zero value is
// not usable.
type Engine struct {
	scorer    *similarity.Scorer
	threshold float64
	workers   int
}

// New creates an Engine from cfg, filling unset fields with defaults.
func New(cfg Config) *Engine {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = cluster.DefaultThreshold
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		scorer:    similarity.NewScorer(cfg.Weights, cfg.LineWindow),
		threshold: threshold,
		workers:   workers,
	}
}

// Consolidate merges semantically equivalent findings into canonical
// findings, ordered by first appearance of any merged member. Empty
// input yields empty output. Malformed input fails the whole call; there
// is no partial output.
func (e *Engine) Consolidate(ctx context.Context, findings []types.Finding) ([]types.Finding, error) {
	if err := types.ValidateFindings(findings); err != nil {
		return nil, err
	}
	if len(findings) == 0 {
		return []types.Finding{}, nil
	}

	scores, err := e.scoreMatrix(ctx, findings)
	if err != nil {
		return nil, err
	}

	// Scores were computed in parallel, but unions are applied in fixed
	// (i, j) pair order, so the partition does not depend on scheduling.
	clusters := cluster.Partition(len(findings), scores.at, e.threshold)

	canonical := make([]types.Finding, 0, len(clusters))
	for _, members := range clusters {
		// Cancellation is honored between clusters only; a cluster's
		// reduction is never partially applied.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		group := make([]types.Finding, 0, len(members))
		for _, idx := range members {
			group = append(group, findings[idx])
		}
		canonical = append(canonical, merge.Reduce(group))
	}
	return canonical, nil
}

// Result runs Consolidate and wraps the outcome with the counters the
// human-readable formatters report.
func (e *Engine) Result(ctx context.Context, findings []types.Finding) (*types.Result, error) {
	canonical, err := e.Consolidate(ctx, findings)
	if err != nil {
		return nil, err
	}
	return &types.Result{
		Findings:   canonical,
		InputCount: len(findings),
		Clusters:   len(canonical),
	}, nil
}

// pairMatrix stores the upper triangle of the N×N score matrix in a
// flat slice.
type pairMatrix struct {
	n      int
	scores []float64
}

func (m *pairMatrix) index(i, j int) int {
	// Row-major upper triangle, j > i.
	return i*(2*m.n-i-1)/2 + (j - i - 1)
}

func (m *pairMatrix) at(i, j int) float64 {
	return m.scores[m.index(i, j)]
}

// scoreMatrix computes all pairwise scores. Pairs are independent and
// the scorer is pure, so the matrix is filled by parallel workers; each
// worker owns a disjoint stripe of rows.
func (e *Engine) scoreMatrix(ctx context.Context, findings []types.Finding) (*pairMatrix, error) {
	n := len(findings)
	m := &pairMatrix{n: n, scores: make([]float64, n*(n-1)/2)}

	workers := min(e.workers, n)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				for j := i + 1; j < n; j++ {
					m.scores[m.index(i, j)] = e.scorer.Score(findings[i], findings[j])
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

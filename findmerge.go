// Package findmerge consolidates findings emitted by multiple
// independent review passes over the same pull request into a single
// deduplicated list: semantically equivalent findings are clustered and
// merged, keeping the strictest severity and the best evidence.
//
// This is the library entry point. For the CLI tool, see cmd/findmerge/.
package findmerge

import (
	"context"
	"io"

	"github.com/CertiKProject/findmerge/internal/engine"
	"github.com/CertiKProject/findmerge/internal/types"
)

// Re-export core types from internal/types so consumers don't need to
// import internal packages.
type (
	Severity   = types.Severity
	Finding    = types.Finding
	StageList  = types.StageList
	FieldError = types.FieldError
	Result     = types.Result
)

const (
	SeverityInfo     = types.SeverityInfo
	SeverityLow      = types.SeverityLow
	SeverityMedium   = types.SeverityMedium
	SeverityHigh     = types.SeverityHigh
	SeverityCritical = types.SeverityCritical
)

// ParseSeverity converts a string to a Severity level.
var ParseSeverity = types.ParseSeverity

// NewStageList builds a deduplicated, order-preserving stage list.
var NewStageList = types.NewStageList

// Consolidate merges semantically equivalent findings into canonical
// findings, ordered by first appearance of any merged member. The call
// is a pure, total function over well-formed input: malformed findings
// fail the whole call, and the same input always yields the same output.
func Consolidate(ctx context.Context, findings []Finding, opts ...Option) ([]Finding, error) {
	return buildEngine(opts).Consolidate(ctx, findings)
}

// ConsolidateJSON reads a findings JSON array from r and consolidates
// it. Input records may carry `source` as a comma-joined string or an
// array of strings; output always uses the comma-joined convention.
func ConsolidateJSON(ctx context.Context, r io.Reader, opts ...Option) ([]Finding, error) {
	findings, err := types.DecodeFindings(r)
	if err != nil {
		return nil, err
	}
	return Consolidate(ctx, findings, opts...)
}

// ConsolidateResult runs Consolidate and reports the counters alongside
// the canonical findings, for callers rendering human-readable reports.
func ConsolidateResult(ctx context.Context, findings []Finding, opts ...Option) (*Result, error) {
	return buildEngine(opts).Result(ctx, findings)
}

func buildEngine(opts []Option) *engine.Engine {
	cfg := &consolidateConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return engine.New(engine.Config{
		Threshold:  cfg.threshold,
		Weights:    cfg.weights,
		LineWindow: cfg.lineWindow,
		Workers:    cfg.workers,
	})
}

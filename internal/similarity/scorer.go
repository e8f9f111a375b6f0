// Package similarity scores pairs of findings for semantic equivalence.
// Scores are pure functions of the two findings: no shared state, and
// Score(a, b) == Score(b, a) for all inputs.
package similarity

import (
	"strings"

	"github.com/CertiKProject/findmerge/internal/types"
)

// Weights holds the contribution of each term to the pair score. The
// terms sum to 1.0 under the defaults; the final score is clamped to
// [0, 1] regardless.
type Weights struct {
	Path       float64 `yaml:"path"`
	Line       float64 `yaml:"line"`
	Suggestion float64 `yaml:"suggestion"`
	SpecRef    float64 `yaml:"spec_ref"`
}

// DefaultWeights are a workable default, not a contract; callers tune
// them per pipeline via options or the config file.
var DefaultWeights = Weights{
	Path:       0.4,
	Line:       0.2,
	Suggestion: 0.3,
	SpecRef:    0.1,
}

// DefaultLineWindow is the line distance beyond which proximity credit
// decays to zero.
const DefaultLineWindow = 25

// Scorer computes semantic-equivalence scores between findings.
type Scorer struct {
	weights    Weights
	lineWindow int
}

// NewScorer creates a Scorer. Zero weights fall back to DefaultWeights
// and a non-positive window to DefaultLineWindow.
func NewScorer(w Weights, lineWindow int) *Scorer {
	if w == (Weights{}) {
		w = DefaultWeights
	}
	if lineWindow <= 0 {
		lineWindow = DefaultLineWindow
	}
	return &Scorer{weights: w, lineWindow: lineWindow}
}

// Score returns the semantic-equivalence confidence for a pair of
// findings in [0, 1]. Missing optional fields contribute zero to their
// term; they never fail the scorer.
func (s *Scorer) Score(a, b types.Finding) float64 {
	var score float64

	samePath := a.Path == b.Path
	if samePath {
		score += s.weights.Path
		// Line proximity only counts on the same file; findings on
		// different files never get proximity credit.
		score += s.weights.Line * s.lineProximity(a.Line, b.Line)
	}

	score += s.weights.Suggestion * Jaccard(Tokenize(a.Suggestion), Tokenize(b.Suggestion))

	if refA, refB := strings.TrimSpace(a.SpecRef), strings.TrimSpace(b.SpecRef); refA != "" && refA == refB {
		score += s.weights.SpecRef
	}

	return clamp01(score)
}

// lineProximity decays linearly from 1 at zero distance to 0 at the
// window boundary.
func (s *Scorer) lineProximity(a, b int) float64 {
	dist := a - b
	if dist < 0 {
		dist = -dist
	}
	if dist >= s.lineWindow {
		return 0
	}
	return 1 - float64(dist)/float64(s.lineWindow)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

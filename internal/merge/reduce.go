// Package merge collapses a cluster of equivalent findings into one
// canonical finding. Every "pick the best" rule is an explicit, total
// tie-break chain so consolidated reports reproduce byte-identically
// across runs.
package merge

import (
	"github.com/CertiKProject/findmerge/internal/types"
)

// Reduce collapses one cluster into its canonical finding. Members must
// be in input order. The rules, applied in order:
//
//  1. Severity: the maximum across the cluster.
//  2. Location: from the representative, the earliest max-severity
//     member carrying a spec_ref, else the earliest max-severity member.
//  3. Suggestion: the longest non-empty suggestion among max-severity
//     members, earliest on ties.
//  4. spec_ref: the representative's if non-empty, else the first
//     non-empty in input order, else absent.
//  5. source: ordered union of every member's stage labels.
//
// A single-member cluster is returned unchanged.
//
// An empty cluster indicates a clustering bug, not a runtime condition,
// and panics.
func Reduce(members []types.Finding) types.Finding {
	if len(members) == 0 {
		panic("merge: empty cluster")
	}
	if len(members) == 1 {
		return members[0]
	}

	maxSev := members[0].Severity
	for _, m := range members[1:] {
		if m.Severity > maxSev {
			maxSev = m.Severity
		}
	}

	rep := representative(members, maxSev)

	canonical := types.Finding{
		Path:       rep.Path,
		Line:       rep.Line,
		Severity:   maxSev,
		Suggestion: bestSuggestion(members, maxSev),
		SpecRef:    bestSpecRef(members, rep),
	}
	for _, m := range members {
		canonical.Source = canonical.Source.Union(m.Source)
	}
	return canonical
}

// representative picks the member supplying path and line: earliest
// max-severity member with a spec_ref, falling back to the earliest
// max-severity member.
func representative(members []types.Finding, maxSev types.Severity) types.Finding {
	var fallback *types.Finding
	for i := range members {
		m := &members[i]
		if m.Severity != maxSev {
			continue
		}
		if m.SpecRef != "" {
			return *m
		}
		if fallback == nil {
			fallback = m
		}
	}
	return *fallback
}

// bestSuggestion returns the longest non-empty suggestion among
// max-severity members, preferring the earliest on length ties.
func bestSuggestion(members []types.Finding, maxSev types.Severity) string {
	best := ""
	for _, m := range members {
		if m.Severity != maxSev {
			continue
		}
		if len(m.Suggestion) > len(best) {
			best = m.Suggestion
		}
	}
	return best
}

// bestSpecRef prefers the representative's spec_ref, then the first
// non-empty one in input order, then absent.
func bestSpecRef(members []types.Finding, rep types.Finding) string {
	if rep.SpecRef != "" {
		return rep.SpecRef
	}
	for _, m := range members {
		if m.SpecRef != "" {
			return m.SpecRef
		}
	}
	return ""
}

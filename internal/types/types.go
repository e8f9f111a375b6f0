// Package types defines the shared data structures (Finding, Severity,
// StageList) used across the similarity, cluster, merge, and engine
// packages to prevent import cycles.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity represents the severity level of a finding, ordered by
// ascending strictness.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a string to a Severity level.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return SeverityCritical, nil
	case "HIGH":
		return SeverityHigh, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "LOW":
		return SeverityLow, nil
	case "INFO":
		return SeverityInfo, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity: %q", s)
	}
}

// MarshalJSON serializes a Severity as its upper-case literal string.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the literal severity strings, case-insensitively.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("severity must be a string: %w", err)
	}
	sev, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// StageList is the ordered set of review-stage labels that produced a
// finding. Order of first appearance is preserved; duplicates and blank
// entries are dropped on construction and decoding.
type StageList []string

// NewStageList builds a StageList from raw labels, trimming whitespace
// and dropping empties and duplicates while preserving first-appearance
// order.
func NewStageList(labels ...string) StageList {
	var out StageList
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// Union appends the labels of other that are not already present,
// preserving first-appearance order across both lists.
func (sl StageList) Union(other StageList) StageList {
	return NewStageList(append(append([]string{}, sl...), other...)...)
}

// MarshalJSON serializes a StageList as a comma-joined string, the
// convention used by the upstream review pipeline.
func (sl StageList) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.Join(sl, ","))
}

// UnmarshalJSON accepts either a comma-joined string ("stage1,stage2")
// or a JSON array of strings; upstream stages emit both shapes.
func (sl *StageList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*sl = NewStageList(strings.Split(raw, ",")...)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("source must be a string or array of strings")
	}
	*sl = NewStageList(list...)
	return nil
}

// Finding represents a single review finding. The same shape is used
// for raw inputs and for canonical (consolidated) outputs.
type Finding struct {
	Path       string    `json:"path"`
	Line       int       `json:"line"`
	Severity   Severity  `json:"severity"`
	Suggestion string    `json:"suggestion"`
	SpecRef    string    `json:"spec_ref,omitempty"`
	Source     StageList `json:"source"`
}

// Result holds a consolidation outcome plus the counters the human
// formatters report. The canonical findings themselves are the only
// data the JSON output carries.
type Result struct {
	Findings   []Finding
	InputCount int
	Clusters   int
}

// Merged returns how many input findings were folded into another
// finding during consolidation.
func (r Result) Merged() int {
	return r.InputCount - len(r.Findings)
}

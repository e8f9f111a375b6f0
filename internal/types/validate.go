package types

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FieldError reports a malformed finding: which record, which field,
// and why it was rejected. A single FieldError fails the whole call;
// malformed records are never silently skipped.
type FieldError struct {
	Index  int
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("finding %d: field %q %s", e.Index, e.Field, e.Reason)
}

// Validate checks the Finding invariants: non-empty path, non-empty
// suggestion, a severity within the enumeration, a non-negative line,
// and at least one source stage.
func (f Finding) Validate(index int) error {
	if strings.TrimSpace(f.Path) == "" {
		return &FieldError{Index: index, Field: "path", Reason: "is empty"}
	}
	if f.Line < 0 {
		return &FieldError{Index: index, Field: "line", Reason: "is negative"}
	}
	if f.Severity < SeverityInfo || f.Severity > SeverityCritical {
		return &FieldError{Index: index, Field: "severity", Reason: "is outside the enumeration"}
	}
	if strings.TrimSpace(f.Suggestion) == "" {
		return &FieldError{Index: index, Field: "suggestion", Reason: "is empty"}
	}
	if len(f.Source) == 0 {
		return &FieldError{Index: index, Field: "source", Reason: "is empty"}
	}
	return nil
}

// ValidateFindings applies Validate to every finding, stopping at the
// first malformed record.
func ValidateFindings(findings []Finding) error {
	for i, f := range findings {
		if err := f.Validate(i); err != nil {
			return err
		}
	}
	return nil
}

// rawFinding mirrors Finding with severity kept as a string so that a
// missing severity can be told apart from a valid zero value (INFO).
type rawFinding struct {
	Path       string    `json:"path"`
	Line       int       `json:"line"`
	Severity   string    `json:"severity"`
	Suggestion string    `json:"suggestion"`
	SpecRef    string    `json:"spec_ref"`
	Source     StageList `json:"source"`
}

// DecodeFindings reads a JSON array of findings, reporting malformed
// records as *FieldError with the offending index and field.
func DecodeFindings(r io.Reader) ([]Finding, error) {
	var raw []rawFinding
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding findings: %w", err)
	}

	findings := make([]Finding, 0, len(raw))
	for i, rf := range raw {
		if strings.TrimSpace(rf.Severity) == "" {
			return nil, &FieldError{Index: i, Field: "severity", Reason: "is missing"}
		}
		sev, err := ParseSeverity(rf.Severity)
		if err != nil {
			return nil, &FieldError{Index: i, Field: "severity", Reason: "is outside the enumeration"}
		}
		f := Finding{
			Path:       rf.Path,
			Line:       rf.Line,
			Severity:   sev,
			Suggestion: rf.Suggestion,
			SpecRef:    strings.TrimSpace(rf.SpecRef),
			Source:     rf.Source,
		}
		if err := f.Validate(i); err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	return findings, nil
}

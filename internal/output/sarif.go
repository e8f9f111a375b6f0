package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/CertiKProject/findmerge/internal/types"
)

// SARIFFormatter outputs consolidated findings in SARIF 2.1.0 format
// for GitHub Code Scanning.
type SARIFFormatter struct{}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	InformationURI string `json:"informationUri"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func (f *SARIFFormatter) Format(w io.Writer, result *types.Result) error {
	results := make([]sarifResult, 0, len(result.Findings))
	for _, finding := range result.Findings {
		r := sarifResult{
			RuleID:  ruleID(finding),
			Level:   severityToLevel(finding.Severity),
			Message: sarifMessage{Text: strings.TrimSpace(finding.Suggestion)},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: finding.Path},
						Region:           sarifRegion{StartLine: max(finding.Line, 1)},
					},
				},
			},
			Properties: map[string]any{
				"severity": finding.Severity.String(),
				"stages":   strings.Join(finding.Source, ","),
			},
		}
		results = append(results, r)
	}

	log := sarifLog{
		Schema:  "https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "findmerge",
						Version:        ToolVersion,
						InformationURI: "https://github.com/CertiKProject/findmerge",
					},
				},
				Results: results,
				Properties: map[string]any{
					"raw_findings": result.InputCount,
					"merged":       result.Merged(),
				},
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

// ruleID groups SARIF results by the spec rule they violate when one is
// known, falling back to a generic bucket.
func ruleID(f types.Finding) string {
	if f.SpecRef != "" {
		return f.SpecRef
	}
	return "review-finding"
}

func severityToLevel(sev types.Severity) string {
	switch sev {
	case types.SeverityCritical:
		return "error"
	case types.SeverityHigh:
		return "warning"
	case types.SeverityMedium, types.SeverityLow:
		return "note"
	default:
		return "none"
	}
}

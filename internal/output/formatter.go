// Package output formats consolidated findings for terminal (ANSI),
// JSON, SARIF, and Markdown output.
package output

import (
	"io"

	"github.com/CertiKProject/findmerge/internal/types"
)

// ToolVersion is the findmerge version reported in SARIF and Markdown
// output.
var ToolVersion = "dev"

// Formatter is the interface for outputting consolidation results.
type Formatter interface {
	Format(w io.Writer, result *types.Result) error
}

func countBySeverity(findings []types.Finding) map[types.Severity]int {
	counts := map[types.Severity]int{}
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}

// severityOrder lists severities strictest first for report sections.
var severityOrder = []types.Severity{
	types.SeverityCritical,
	types.SeverityHigh,
	types.SeverityMedium,
	types.SeverityLow,
	types.SeverityInfo,
}

func filterBySeverity(findings []types.Finding, sev types.Severity) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/CertiKProject/findmerge/internal/types"
)

// MarkdownFormatter outputs consolidated findings as GitHub-flavored
// markdown, designed for GitHub Actions Job Summaries and PR comments.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, result *types.Result) error {
	if len(result.Findings) == 0 {
		fmt.Fprintf(w, "### :white_check_mark: Review Consolidation — No findings\n\n")
		fmt.Fprintf(w, "> %d raw findings reviewed\n", result.InputCount)
		return nil
	}

	f.printSummary(w, result)
	f.printFindings(w, result.Findings)
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "*Consolidated by findmerge %s*\n", ToolVersion)
	return nil
}

func (f *MarkdownFormatter) printSummary(w io.Writer, result *types.Result) {
	fmt.Fprintf(w, "### :mag: Review Consolidation — %d findings\n\n", len(result.Findings))
	fmt.Fprintf(w, "> %d raw · %d canonical · %d merged\n\n",
		result.InputCount, len(result.Findings), result.Merged())

	counts := countBySeverity(result.Findings)
	var badges []string
	for _, sev := range severityOrder {
		c := counts[sev]
		if c == 0 {
			continue
		}
		badges = append(badges, fmt.Sprintf("%s **%d %s**", severityEmoji(sev), c, sev.String()))
	}
	fmt.Fprintf(w, "%s\n\n", strings.Join(badges, " · "))
}

func (f *MarkdownFormatter) printFindings(w io.Writer, findings []types.Finding) {
	for _, sev := range severityOrder {
		filtered := filterBySeverity(findings, sev)
		if len(filtered) == 0 {
			continue
		}

		fmt.Fprintf(w, "<details%s>\n", openByDefault(sev))
		fmt.Fprintf(w, "<summary>%s <strong>%s (%d)</strong></summary>\n\n",
			severityEmoji(sev), sev.String(), len(filtered))

		fmt.Fprintf(w, "| Location | Suggestion | Spec | Stages |\n")
		fmt.Fprintf(w, "|----------|------------|------|--------|\n")
		for _, finding := range filtered {
			fmt.Fprintf(w, "| `%s:%d` | %s | %s | %s |\n",
				finding.Path, finding.Line,
				escapeMarkdown(truncate(flatten(finding.Suggestion), 120)),
				escapeMarkdown(finding.SpecRef),
				strings.Join(finding.Source, ", "))
		}

		fmt.Fprintf(w, "\n</details>\n\n")
	}
}

func severityEmoji(sev types.Severity) string {
	switch sev {
	case types.SeverityCritical:
		return ":red_circle:"
	case types.SeverityHigh:
		return ":orange_circle:"
	case types.SeverityMedium:
		return ":yellow_circle:"
	case types.SeverityLow:
		return ":blue_circle:"
	case types.SeverityInfo:
		return ":white_circle:"
	default:
		return ":black_circle:"
	}
}

func openByDefault(sev types.Severity) string {
	if sev == types.SeverityCritical || sev == types.SeverityHigh {
		return " open"
	}
	return ""
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/CertiKProject/findmerge/internal/types"
)

// ANSI color codes
const (
	reset     = "\033[0m"
	bold      = "\033[1m"
	dim       = "\033[2m"
	underline = "\033[4m"
	yellow    = "\033[33m"
	cyan      = "\033[36m"
)

const (
	barWidth        = 40
	lineWidth       = 72
	suggestionWidth = 100
)

// TerminalFormatter outputs consolidated findings in a triage-optimized
// format.
type TerminalFormatter struct {
	NoColor bool
	Verbose bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, result *types.Result) error {
	if os.Getenv("NO_COLOR") != "" {
		f.NoColor = true
	}

	f.printHeader(w, result)

	if len(result.Findings) == 0 {
		fmt.Fprintf(w, "\n  %s No findings to report.\n", f.color(cyan, "✔"))
	} else {
		counts := countBySeverity(result.Findings)
		f.printDashboard(w, counts)

		for _, sev := range severityOrder {
			filtered := filterBySeverity(result.Findings, sev)
			if len(filtered) > 0 {
				f.printSeveritySection(w, sev, filtered)
			}
		}
	}

	f.printFooter(w, result)
	return nil
}

func (f *TerminalFormatter) separator() string {
	return strings.Repeat("─", lineWidth)
}

func (f *TerminalFormatter) sectionHeader(title string) string {
	prefix := "── " + title + " "
	displayLen := utf8.RuneCountInString(prefix)
	remaining := max(lineWidth-displayLen, 0)
	return prefix + strings.Repeat("─", remaining)
}

func (f *TerminalFormatter) printHeader(w io.Writer, result *types.Result) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %s\n", f.color(bold, "FINDMERGE CONSOLIDATION"))

	parts := []string{
		fmt.Sprintf("%d raw findings", result.InputCount),
		fmt.Sprintf("%d canonical", len(result.Findings)),
		fmt.Sprintf("%d merged", result.Merged()),
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ·  "))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) printDashboard(w io.Writer, counts map[types.Severity]int) {
	highest := 0
	for _, c := range counts {
		if c > highest {
			highest = c
		}
	}
	if highest == 0 {
		return
	}

	fmt.Fprintln(w)
	for _, sev := range severityOrder {
		c := counts[sev]
		if c == 0 {
			continue
		}
		label := fmt.Sprintf("  %-10s", sev.String())
		bar := strings.Repeat("█", max(c*barWidth/highest, 1))
		fmt.Fprintf(w, "%s %s %4d\n", f.color(bold, label), bar, c)
	}
}

func (f *TerminalFormatter) printSeveritySection(w io.Writer, sev types.Severity, findings []types.Finding) {
	title := fmt.Sprintf("%s (%d)", sev.String(), len(findings))
	header := f.sectionHeader(title)
	fmt.Fprintf(w, "\n%s\n", f.color(bold, header))

	for _, finding := range findings {
		lineStr := fmt.Sprintf("%s:%d", finding.Path, finding.Line)
		fmt.Fprintf(w, "\n  %s\n", f.color(bold+underline, lineStr))
		fmt.Fprintf(w, "    %s\n", truncate(flatten(finding.Suggestion), suggestionWidth))
		if finding.SpecRef != "" {
			fmt.Fprintf(w, "    %s %s\n", f.color(dim, "spec:"), f.color(yellow, finding.SpecRef))
		}
		fmt.Fprintf(w, "    %s %s\n", f.color(dim, "from:"), strings.Join(finding.Source, ", "))
	}
}

func (f *TerminalFormatter) printFooter(w io.Writer, result *types.Result) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %d findings consolidated into %d\n", result.InputCount, len(result.Findings))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

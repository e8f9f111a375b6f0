package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/CertiKProject/findmerge/internal/output"
	"github.com/CertiKProject/findmerge/internal/types"
	"github.com/stretchr/testify/require"
)

func sampleResult() *types.Result {
	return &types.Result{
		Findings: []types.Finding{
			{
				Path:       "core/vm/evm.go",
				Line:       100,
				Severity:   types.SeverityHigh,
				Suggestion: "Enforce the per-transaction gas cap before execution.",
				SpecRef:    "EIP-7825 §2",
				Source:     types.NewStageList("stage1", "stage2"),
			},
			{
				Path:       "core/state_transition.go",
				Line:       42,
				Severity:   types.SeverityLow,
				Suggestion: "Rename the local for clarity.",
				Source:     types.NewStageList("stage2"),
			},
		},
		InputCount: 3,
		Clusters:   2,
	}
}

func TestJSONFormatterIsBareArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&output.JSONFormatter{}).Format(&buf, sampleResult()))

	var findings []types.Finding
	require.NoError(t, json.Unmarshal(buf.Bytes(), &findings))
	require.Len(t, findings, 2)
	require.Equal(t, types.SeverityHigh, findings[0].Severity)

	// The source field round-trips as a comma-joined string.
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Equal(t, "stage1,stage2", raw[0]["source"])
	require.Equal(t, "HIGH", raw[0]["severity"])
	// Absent spec_ref is omitted, not emitted empty.
	_, ok := raw[1]["spec_ref"]
	require.False(t, ok)
}

func TestJSONFormatterEmptyResultIsEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&output.JSONFormatter{}).Format(&buf, &types.Result{}))
	require.JSONEq(t, "[]", buf.String())
}

func TestTerminalFormatterNoFindings(t *testing.T) {
	var buf bytes.Buffer
	f := &output.TerminalFormatter{NoColor: true}
	require.NoError(t, f.Format(&buf, &types.Result{InputCount: 0}))
	out := buf.String()
	require.Contains(t, out, "No findings to report")
	require.Contains(t, out, "CONSOLIDATION")
}

func TestTerminalFormatterWithFindings(t *testing.T) {
	var buf bytes.Buffer
	f := &output.TerminalFormatter{NoColor: true}
	require.NoError(t, f.Format(&buf, sampleResult()))
	out := buf.String()
	require.Contains(t, out, "HIGH (1)")
	require.Contains(t, out, "LOW (1)")
	require.Contains(t, out, "core/vm/evm.go:100")
	require.Contains(t, out, "EIP-7825 §2")
	require.Contains(t, out, "stage1, stage2")
	require.Contains(t, out, "3 raw findings")
	require.Contains(t, out, "1 merged")
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&output.MarkdownFormatter{}).Format(&buf, sampleResult()))
	out := buf.String()
	require.Contains(t, out, "Review Consolidation — 2 findings")
	require.Contains(t, out, "`core/vm/evm.go:100`")
	require.Contains(t, out, "**1 HIGH**")
	require.Contains(t, out, "stage1, stage2")
}

func TestMarkdownFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&output.MarkdownFormatter{}).Format(&buf, &types.Result{InputCount: 2}))
	require.Contains(t, buf.String(), "No findings")
}

func TestSARIFFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&output.SARIFFormatter{}).Format(&buf, sampleResult()))

	var log map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	require.Equal(t, "2.1.0", log["version"])

	runs := log["runs"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)
	results := run["results"].([]any)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	require.Equal(t, "EIP-7825 §2", first["ruleId"])
	require.Equal(t, "warning", first["level"])

	second := results[1].(map[string]any)
	require.Equal(t, "review-finding", second["ruleId"])
	require.Equal(t, "note", second["level"])
}

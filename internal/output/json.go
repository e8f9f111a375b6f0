package output

import (
	"encoding/json"
	"io"

	"github.com/CertiKProject/findmerge/internal/types"
)

// JSONFormatter outputs the canonical findings as a bare JSON array:
// data only, no wrapper object, no prose, an empty list (never null)
// when nothing remains.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, result *types.Result) error {
	findings := result.Findings
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

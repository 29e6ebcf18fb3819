package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/ccqe/internal/analyzer"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// Report outputs findings as JSON
func (r *JSONReporter) Report(results []analyzer.FileResult) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildOutput(results))
}

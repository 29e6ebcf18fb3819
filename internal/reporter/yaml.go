package reporter

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pthm/ccqe/internal/analyzer"
)

// YAMLReporter outputs results as YAML
type YAMLReporter struct {
	w io.Writer
}

// NewYAMLReporter creates a new YAML reporter
func NewYAMLReporter(w io.Writer) *YAMLReporter {
	return &YAMLReporter{w: w}
}

// Report outputs findings as a YAML document
func (r *YAMLReporter) Report(results []analyzer.FileResult) error {
	encoder := yaml.NewEncoder(r.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildOutput(results)); err != nil {
		return err
	}
	return encoder.Close()
}

package reporter

import (
	"github.com/google/uuid"

	"github.com/pthm/ccqe/internal/analyzer"
	"github.com/pthm/ccqe/internal/classifier"
	"github.com/pthm/ccqe/internal/feedback"
	"github.com/pthm/ccqe/internal/version"
)

// Output is the document written by the structured reporters
type Output struct {
	RunID    string            `json:"run_id" yaml:"run_id"`
	Version  string            `json:"version" yaml:"version"`
	Findings []OutputFinding   `json:"findings" yaml:"findings"`
	Problems []OutputProblem   `json:"problems,omitempty" yaml:"problems,omitempty"`
	Summary  Summary           `json:"summary" yaml:"summary"`
	Metrics  *analyzer.Metrics `json:"metrics" yaml:"metrics"`
}

// OutputFinding represents a finding in structured output
type OutputFinding struct {
	File          string             `json:"file" yaml:"file"`
	Line          int                `json:"line" yaml:"line"`
	Kind          string             `json:"kind" yaml:"kind"`
	Function      string             `json:"function,omitempty" yaml:"function,omitempty"`
	Class         string             `json:"class,omitempty" yaml:"class,omitempty"`
	Text          string             `json:"text" yaml:"text"`
	Label         classifier.Label   `json:"label" yaml:"label"`
	Score         float64            `json:"score" yaml:"score"`
	Signals       classifier.Signals `json:"signals" yaml:"signals"`
	Rule          string             `json:"rule" yaml:"rule"`
	Suggestion    string             `json:"suggestion" yaml:"suggestion"`
	AsksForIntent bool               `json:"asks_for_intent" yaml:"asks_for_intent"`
}

// OutputProblem records a file whose analysis degraded
type OutputProblem struct {
	File    string `json:"file" yaml:"file"`
	Stage   string `json:"stage" yaml:"stage"` // read, lex or parse
	Message string `json:"message" yaml:"message"`
}

// BuildOutput assembles the structured document for results. Each call
// gets a fresh run ID.
func BuildOutput(results []analyzer.FileResult) Output {
	out := Output{
		RunID:    uuid.New().String(),
		Version:  version.Short(),
		Findings: make([]OutputFinding, 0, countFindings(results)),
		Summary:  ComputeSummary(results),
		Metrics:  analyzer.ComputeMetrics(results),
	}

	for _, res := range results {
		if res.Err != nil {
			out.Problems = append(out.Problems, OutputProblem{File: res.Path, Stage: "read", Message: res.Err.Error()})
			continue
		}
		if res.LexErr != nil {
			out.Problems = append(out.Problems, OutputProblem{File: res.Path, Stage: "lex", Message: res.LexErr.Error()})
		}
		if res.ParseErr != nil {
			out.Problems = append(out.Problems, OutputProblem{File: res.Path, Stage: "parse", Message: res.ParseErr.Error()})
		}

		for _, f := range res.Findings {
			out.Findings = append(out.Findings, OutputFinding{
				File:          f.Span.File,
				Line:          f.Span.Line,
				Kind:          f.Span.Kind.String(),
				Function:      f.Span.Func,
				Class:         f.Span.Class,
				Text:          f.Span.Text,
				Label:         f.Score.Label,
				Score:         f.Score.Score,
				Signals:       f.Score.Signals,
				Rule:          f.Rule,
				Suggestion:    f.Suggestion,
				AsksForIntent: feedback.AsksForIntent(f.Rule),
			})
		}
	}

	return out
}

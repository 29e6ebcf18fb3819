package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/pthm/ccqe/internal/analyzer"
	"github.com/pthm/ccqe/internal/classifier"
	"github.com/pthm/ccqe/internal/feedback"
	"github.com/pthm/ccqe/internal/ui"
)

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report outputs the findings of every file
	Report(results []analyzer.FileResult) error
}

// Formats lists the accepted output formats
var Formats = []string{"terminal", "text", "json", "yaml", "markdown", "html"}

// New returns the reporter for format writing to w.
func New(format string, w io.Writer, u *ui.UI) (Reporter, error) {
	switch format {
	case "terminal":
		return NewTerminalReporter(w, u), nil
	case "text":
		return NewTextReporter(w), nil
	case "json":
		return NewJSONReporter(w), nil
	case "yaml":
		return NewYAMLReporter(w), nil
	case "markdown":
		return NewMarkdownReporter(w), nil
	case "html":
		return NewHTMLReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
	}
}

// Summary holds summary statistics for an analysis run
type Summary struct {
	Files          int     `json:"files" yaml:"files"`
	Comments       int     `json:"comments" yaml:"comments"`
	High           int     `json:"high" yaml:"high"`
	Medium         int     `json:"medium" yaml:"medium"`
	Low            int     `json:"low" yaml:"low"`
	AvgRedundancy  float64 `json:"avg_redundancy" yaml:"avg_redundancy"`
	IntentRequests int     `json:"intent_requests" yaml:"intent_requests"`
	IntentPercent  float64 `json:"intent_percent" yaml:"intent_percent"` // 0-100
}

// ComputeSummary folds the findings of every readable file into counts.
func ComputeSummary(results []analyzer.FileResult) Summary {
	var s Summary
	var redundancy float64

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		s.Files++

		for _, f := range res.Findings {
			s.Comments++
			redundancy += f.Score.Signals.Redundancy
			switch f.Score.Label {
			case classifier.High:
				s.High++
			case classifier.Medium:
				s.Medium++
			case classifier.Low:
				s.Low++
			}
			if feedback.AsksForIntent(f.Rule) {
				s.IntentRequests++
			}
		}
	}

	if s.Comments > 0 {
		s.AvgRedundancy = redundancy / float64(s.Comments)
		s.IntentPercent = 100 * float64(s.IntentRequests) / float64(s.Comments)
	}
	return s
}

// Filter keeps only the findings whose label is in labels. An empty label
// list keeps everything. Files are kept even when all findings are dropped.
func Filter(results []analyzer.FileResult, labels []classifier.Label) []analyzer.FileResult {
	if len(labels) == 0 {
		return results
	}

	out := make([]analyzer.FileResult, len(results))
	for i, res := range results {
		kept := make([]analyzer.Finding, 0, len(res.Findings))
		for _, f := range res.Findings {
			if slices.Contains(labels, f.Score.Label) {
				kept = append(kept, f)
			}
		}
		res.Findings = kept
		out[i] = res
	}
	return out
}

// HasLow reports whether any finding is labelled Low.
func HasLow(results []analyzer.FileResult) bool {
	for _, res := range results {
		for _, f := range res.Findings {
			if f.Score.Label == classifier.Low {
				return true
			}
		}
	}
	return false
}

// contextName names where a finding lives: its function, its class or
// else the file.
func contextName(f analyzer.Finding) string {
	if owner := f.Span.Owner(); owner != "" {
		return owner
	}
	return filepath.Base(f.Span.File)
}

func countFindings(results []analyzer.FileResult) int {
	n := 0
	for _, res := range results {
		n += len(res.Findings)
	}
	return n
}

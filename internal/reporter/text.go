package reporter

import (
	"fmt"
	"io"

	"github.com/pthm/ccqe/internal/analyzer"
)

// TextReporter writes one line per finding followed by a summary block.
// The line layout is stable so other tools can split it on " | ".
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a new text reporter
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Report outputs findings as plain text lines
func (r *TextReporter) Report(results []analyzer.FileResult) error {
	if countFindings(results) == 0 {
		_, err := fmt.Fprintln(r.w, "No comments or docstrings found.")
		return err
	}

	fmt.Fprintln(r.w, "Report:")
	for _, res := range results {
		for _, f := range res.Findings {
			fmt.Fprintln(r.w, FormatLine(f))
		}
	}

	s := ComputeSummary(results)
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Summary:")
	fmt.Fprintf(r.w, "  Files processed: %d\n", s.Files)
	fmt.Fprintf(r.w, "  Comments analyzed: %d\n", s.Comments)
	fmt.Fprintf(r.w, "  High: %d\n", s.High)
	fmt.Fprintf(r.w, "  Medium: %d\n", s.Medium)
	fmt.Fprintf(r.w, "  Low: %d\n", s.Low)
	fmt.Fprintf(r.w, "  Avg redundancy: %.2f\n", s.AvgRedundancy)
	_, err := fmt.Fprintf(r.w, "  Suggestions asking for intent: %d (%.0f%%)\n", s.IntentRequests, s.IntentPercent)
	return err
}

// FormatLine renders a finding as
// "path:line | context | label | score=0.00 | suggestion".
func FormatLine(f analyzer.Finding) string {
	return fmt.Sprintf("%s:%4d | %-15s | %-6s | score=%.2f | %s",
		f.Span.File, f.Span.Line, contextName(f), f.Score.Label, f.Score.Score, f.Suggestion)
}

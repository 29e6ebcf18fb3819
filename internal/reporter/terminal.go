package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pthm/ccqe/internal/analyzer"
	"github.com/pthm/ccqe/internal/ui"
)

// quoteLimit caps how much comment text is echoed under a finding
const quoteLimit = 120

// TerminalReporter outputs results to the terminal with colors
type TerminalReporter struct {
	w  io.Writer
	ui *ui.UI
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, u *ui.UI) *TerminalReporter {
	if u == nil {
		u = ui.New(w, io.Discard, "terminal")
	}
	return &TerminalReporter{w: w, ui: u}
}

// Report outputs findings grouped by file
func (r *TerminalReporter) Report(results []analyzer.FileResult) error {
	s := r.ui.Styles

	if countFindings(results) == 0 {
		fmt.Fprintln(r.w, s.Success.Render(s.IconSuccess+" No comments or docstrings found"))
		return nil
	}

	for _, res := range results {
		if len(res.Findings) == 0 {
			continue
		}

		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Header.Render(filepath.Base(res.Path)))
		fmt.Fprintln(r.w, s.Path.Render("  "+res.Path))

		for _, f := range res.Findings {
			r.printFinding(f)
		}
	}

	r.printSummary(results)
	return nil
}

func (r *TerminalReporter) printFinding(f analyzer.Finding) {
	s := r.ui.Styles
	style, icon := s.Label(f.Score.Label)

	fmt.Fprintf(r.w, "  %s %s:%d %s %s\n",
		style.Render(icon),
		filepath.Base(f.Span.File), f.Span.Line,
		style.Render(fmt.Sprintf("%s %.2f", f.Score.Label, f.Score.Score)),
		s.Rule.Render(fmt.Sprintf("[%s %s, %s]", f.Span.Kind, contextName(f), f.Rule)),
	)
	fmt.Fprintf(r.w, "    %s\n", f.Suggestion)
	fmt.Fprintln(r.w, s.Quote.Render("    > "+quote(f.Span.Text)))
}

func (r *TerminalReporter) printSummary(results []analyzer.FileResult) {
	s := r.ui.Styles
	summary := ComputeSummary(results)
	metrics := analyzer.ComputeMetrics(results)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))

	fmt.Fprintf(r.w, "Analyzed %s comments in %s files (%s): ",
		humanize.Comma(int64(summary.Comments)),
		humanize.Comma(int64(summary.Files)),
		humanize.Bytes(uint64(metrics.TotalBytes)),
	)
	fmt.Fprintf(r.w, "%s, %s, %s\n",
		s.High.Render(fmt.Sprintf("%s high", humanize.Comma(int64(summary.High)))),
		s.Medium.Render(fmt.Sprintf("%s medium", humanize.Comma(int64(summary.Medium)))),
		s.Low.Render(fmt.Sprintf("%s low", humanize.Comma(int64(summary.Low)))),
	)
	fmt.Fprintf(r.w, "Average redundancy %.2f, %d suggestions asking for intent (%.0f%%)\n",
		summary.AvgRedundancy, summary.IntentRequests, summary.IntentPercent)

	if metrics.LexFailures > 0 || metrics.ParseFailures > 0 || metrics.ReadFailures > 0 {
		fmt.Fprintln(r.w, s.Warning.Render(fmt.Sprintf(
			"%s %d files could not be tokenized, %d could not be parsed, %d could not be read",
			s.IconWarning, metrics.LexFailures, metrics.ParseFailures, metrics.ReadFailures,
		)))
	}
}

// quote flattens text to one line and truncates it.
func quote(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > quoteLimit {
		return string(r[:quoteLimit-3]) + "..."
	}
	return text
}

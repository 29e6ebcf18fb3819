package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/ccqe/internal/analyzer"
)

// MarkdownReporter outputs results as a Markdown document with one table
// per file
type MarkdownReporter struct {
	w io.Writer
}

// NewMarkdownReporter creates a new Markdown reporter
func NewMarkdownReporter(w io.Writer) *MarkdownReporter {
	return &MarkdownReporter{w: w}
}

// Report outputs findings as Markdown
func (r *MarkdownReporter) Report(results []analyzer.FileResult) error {
	_, err := io.WriteString(r.w, RenderMarkdown(results))
	return err
}

// RenderMarkdown builds the Markdown report for results.
func RenderMarkdown(results []analyzer.FileResult) string {
	var sb strings.Builder
	s := ComputeSummary(results)

	sb.WriteString("# Comment quality report\n\n")
	sb.WriteString("| Files | Comments | High | Medium | Low | Avg redundancy | Asking for intent |\n")
	sb.WriteString("|---:|---:|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d | %d | %.2f | %d (%.0f%%) |\n\n",
		s.Files, s.Comments, s.High, s.Medium, s.Low, s.AvgRedundancy, s.IntentRequests, s.IntentPercent)

	if s.Comments == 0 {
		sb.WriteString("No comments or docstrings found.\n")
		return sb.String()
	}

	for _, res := range results {
		if len(res.Findings) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## `%s`\n\n", res.Path)
		sb.WriteString("| Line | Context | Kind | Label | Score | Comment | Suggestion |\n")
		sb.WriteString("|---:|---|---|---|---:|---|---|\n")
		for _, f := range res.Findings {
			fmt.Fprintf(&sb, "| %d | %s | %s | **%s** | %.2f | %s | %s |\n",
				f.Span.Line,
				cell(contextName(f)),
				f.Span.Kind,
				f.Score.Label,
				f.Score.Score,
				cell(quote(f.Span.Text)),
				cell(f.Suggestion),
			)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

var cellEscaper = strings.NewReplacer(
	"|", `\|`,
	"\n", " ",
	"\r", " ",
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"<", "&lt;",
	">", "&gt;",
)

// cell escapes text for use inside a Markdown table cell.
func cell(text string) string {
	return cellEscaper.Replace(text)
}

package reporter

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pthm/ccqe/internal/analyzer"
)

var (
	mdRenderer    = goldmark.New(goldmark.WithExtensions(extension.GFM))
	htmlSanitizer = bluemonday.UGCPolicy()
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; vertical-align: top; }
</style>
</head>
<body>
`

const htmlTail = `</body>
</html>
`

// HTMLReporter outputs results as a standalone HTML page rendered from the
// Markdown report
type HTMLReporter struct {
	w     io.Writer
	title string
}

// NewHTMLReporter creates a new HTML reporter
func NewHTMLReporter(w io.Writer) *HTMLReporter {
	return &HTMLReporter{w: w, title: "Comment quality report"}
}

// Report outputs findings as HTML
func (r *HTMLReporter) Report(results []analyzer.FileResult) error {
	var body bytes.Buffer
	if err := mdRenderer.Convert([]byte(RenderMarkdown(results)), &body); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if _, err := fmt.Fprintf(r.w, htmlHead, html.EscapeString(r.title)); err != nil {
		return err
	}
	if _, err := io.WriteString(r.w, htmlSanitizer.Sanitize(body.String())); err != nil {
		return err
	}
	_, err := io.WriteString(r.w, htmlTail)
	return err
}

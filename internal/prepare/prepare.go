// Package prepare pairs a comment span with the normalized source lines
// around it.
package prepare

import (
	"strings"

	"github.com/pthm/ccqe/internal/normalize"
	"github.com/pthm/ccqe/internal/parser"
)

// Lines of context kept before and after a comment's own line.
const (
	linesBefore = 1
	linesAfter  = 1
)

// PreparedComment is a span with the inputs the classifier needs.
type PreparedComment struct {
	Span        parser.CommentSpan
	Tokens      []string
	CodeContext string
}

// Build extracts the window of source lines around span, normalizes it and
// tokenizes the span text. The window is clamped to the source, so any line
// number is safe.
func Build(span parser.CommentSpan, source string) PreparedComment {
	return PreparedComment{
		Span:        span,
		Tokens:      normalize.Tokenize(span.Text),
		CodeContext: normalize.NormalizeCode(Window(source, span.Line)),
	}
}

// Window returns the raw source lines from the one before line through the
// one after it, joined with newlines. Line numbers are 1-based.
func Window(source string, line int) string {
	lines := splitLines(source)
	start := max(0, line-1-linesBefore)
	end := max(0, min(len(lines), line+linesAfter))
	if start > end {
		start = end
	}
	return strings.Join(lines[start:end], "\n")
}

// splitLines splits on \n, \r\n and lone \r without producing a trailing
// empty line for a final line terminator.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i])
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
		s = s[i+1:]
	}
	return lines
}

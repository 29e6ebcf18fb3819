package prepare

import (
	"reflect"
	"testing"

	"github.com/pthm/ccqe/internal/parser"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{name: "empty", src: "", expected: nil},
		{name: "trailing newline", src: "a\nb\n", expected: []string{"a", "b"}},
		{name: "no trailing newline", src: "a\nb", expected: []string{"a", "b"}},
		{name: "crlf", src: "a\r\nb\r\n", expected: []string{"a", "b"}},
		{name: "lone cr", src: "a\rb", expected: []string{"a", "b"}},
		{name: "blank lines kept", src: "a\n\n\nb", expected: []string{"a", "", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitLines(tt.src); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitLines(%q) = %q, want %q", tt.src, got, tt.expected)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	src := "l1\nl2\nl3\nl4\nl5\n"
	tests := []struct {
		name     string
		line     int
		expected string
	}{
		{name: "first line", line: 1, expected: "l1\nl2"},
		{name: "middle", line: 3, expected: "l2\nl3\nl4"},
		{name: "last line", line: 5, expected: "l4\nl5"},
		{name: "past the end", line: 9, expected: ""},
		{name: "one past the end", line: 6, expected: "l5"},
		{name: "zero", line: 0, expected: "l1"},
		{name: "negative", line: -3, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Window(src, tt.line); got != tt.expected {
				t.Errorf("Window(src, %d) = %q, want %q", tt.line, got, tt.expected)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	src := "def f(x):\n    # add one\n    return x + 1\n"
	span := parser.CommentSpan{
		Location: parser.Location{File: "f.py", Line: 2},
		Text:     "Add one",
		Kind:     parser.KindInline,
		Func:     "f",
	}

	pc := Build(span, src)
	if !reflect.DeepEqual(pc.Tokens, []string{"add", "one"}) {
		t.Errorf("Tokens = %v, want [add one]", pc.Tokens)
	}
	want := "def f(x):\n    # add one\n    return x +  one "
	if pc.CodeContext != want {
		t.Errorf("CodeContext = %q, want %q", pc.CodeContext, want)
	}
	if pc.Span != span {
		t.Errorf("Span = %+v, want %+v", pc.Span, span)
	}
}

func TestBuildEmptySource(t *testing.T) {
	pc := Build(parser.CommentSpan{Location: parser.Location{Line: 1}, Text: "orphan"}, "")
	if pc.CodeContext != "" {
		t.Errorf("CodeContext = %q, want empty", pc.CodeContext)
	}
}

package parser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func parsePython(t *testing.T, src string) *ParsedFile {
	t.Helper()
	parsed, err := (&PythonParser{}).Parse(context.Background(), "sample.py", []byte(src))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	return parsed
}

func docstrings(spans []CommentSpan) []CommentSpan {
	var out []CommentSpan
	for _, s := range spans {
		if s.Kind == KindDocstring {
			out = append(out, s)
		}
	}
	return out
}

func TestModuleClassMethodAndFunctionDocstrings(t *testing.T) {
	src := `"""Module docstring about configuration."""
class C:
    """Class docstring explaining why this wrapper exists."""
    def m(self):
        """Method docstring describing side effects."""
        return 1

def f():
    """Function docstring explaining constraints."""
    return 2
`
	parsed := parsePython(t, src)
	if parsed.ParseErr != nil {
		t.Fatalf("unexpected parse error: %v", parsed.ParseErr)
	}

	docs := docstrings(parsed.Spans)
	if len(docs) != 4 {
		t.Fatalf("got %d docstrings, want 4: %+v", len(docs), docs)
	}

	// Module docstring always comes first
	if docs[0].Text != "Module docstring about configuration." || docs[0].Owner() != "" || docs[0].Line != 1 {
		t.Errorf("module docstring = %+v", docs[0])
	}

	byMarker := map[string]CommentSpan{}
	for _, d := range docs {
		for _, marker := range []string{"Module", "Class", "Method", "Function"} {
			if strings.HasPrefix(d.Text, marker) {
				if _, dup := byMarker[marker]; dup {
					t.Errorf("duplicate docstring for %s", marker)
				}
				byMarker[marker] = d
			}
		}
	}

	tests := []struct {
		marker string
		class  string
		fn     string
		line   int
	}{
		{"Class", "C", "", 2},
		{"Method", "", "m", 4},
		{"Function", "", "f", 8},
	}
	for _, tt := range tests {
		d, ok := byMarker[tt.marker]
		if !ok {
			t.Errorf("missing %s docstring", tt.marker)
			continue
		}
		if d.Class != tt.class || d.Func != tt.fn {
			t.Errorf("%s docstring owner = (class %q, func %q), want (class %q, func %q)", tt.marker, d.Class, d.Func, tt.class, tt.fn)
		}
		if d.Line != tt.line {
			t.Errorf("%s docstring line = %d, want %d", tt.marker, d.Line, tt.line)
		}
	}
}

func TestInlineBeforeDocstrings(t *testing.T) {
	src := `"""Module docstring about intent and assumptions."""
# top inline
def f(x):
    """Explain why we clamp x to avoid overflow."""
    # add one
    return x + 1
`
	parsed := parsePython(t, src)
	if len(parsed.Spans) != 4 {
		t.Fatalf("got %d spans, want 4: %+v", len(parsed.Spans), parsed.Spans)
	}
	kinds := []Kind{KindInline, KindInline, KindDocstring, KindDocstring}
	for i, k := range kinds {
		if parsed.Spans[i].Kind != k {
			t.Errorf("span[%d].Kind = %v, want %v", i, parsed.Spans[i].Kind, k)
		}
	}
	if parsed.Spans[1].Text != "add one" || parsed.Spans[1].Line != 5 {
		t.Errorf("second inline span = %+v", parsed.Spans[1])
	}
}

func TestAsyncAndDecoratedFunctions(t *testing.T) {
	src := `import functools

@functools.lru_cache(maxsize=1)
def load():
    """Read config once because disk access is slow."""
    return {}

async def fetch():
    """Fetch lazily to avoid blocking startup."""
    return None
`
	parsed := parsePython(t, src)
	docs := docstrings(parsed.Spans)
	if len(docs) != 2 {
		t.Fatalf("got %d docstrings, want 2: %+v", len(docs), docs)
	}

	got := map[string]int{}
	for _, d := range docs {
		got[d.Func] = d.Line
	}
	if got["load"] != 4 {
		t.Errorf("load docstring line = %d, want 4 (the def line)", got["load"])
	}
	if got["fetch"] != 8 {
		t.Errorf("fetch docstring line = %d, want 8", got["fetch"])
	}
}

func TestModernSyntaxKeepsDocstrings(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		owner string
		line  int
	}{
		{
			name:  "function type parameters",
			src:   "def first[T](items: list[T]) -> T:\n    \"\"\"Return the head so callers avoid indexing.\"\"\"\n    return items[0]\n",
			owner: "first",
			line:  1,
		},
		{
			name:  "generic class",
			src:   "class Box[T]:\n    \"\"\"Holds one value of any type.\"\"\"\n    value: T\n",
			owner: "Box",
			line:  1,
		},
		{
			name:  "type alias statement",
			src:   "type Vector = list[float]\n\ndef norm(v: Vector) -> float:\n    \"\"\"Euclidean length, assumed finite.\"\"\"\n    return 0.0\n",
			owner: "norm",
			line:  3,
		},
		{
			name:  "exception groups",
			src:   "def run(tasks):\n    \"\"\"Run tasks and report grouped failures.\"\"\"\n    try:\n        start(tasks)\n    except* ValueError:\n        pass\n",
			owner: "run",
			line:  1,
		},
		{
			name:  "match statement",
			src:   "def route(cmd):\n    \"\"\"Dispatch a command name.\"\"\"\n    match cmd:\n        case \"go\":\n            return 1\n        case _:\n            return 0\n",
			owner: "route",
			line:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := parsePython(t, tt.src)
			if parsed.ParseErr != nil {
				t.Fatalf("ParseErr = %v, want nil", parsed.ParseErr)
			}
			docs := docstrings(parsed.Spans)
			if len(docs) != 1 {
				t.Fatalf("got %d docstrings, want 1: %+v", len(docs), docs)
			}
			if docs[0].Owner() != tt.owner || docs[0].Line != tt.line {
				t.Errorf("docstring = %+v, want owner %q at line %d", docs[0], tt.owner, tt.line)
			}
		})
	}
}

func TestNonDocstringLiterals(t *testing.T) {
	src := `x = 1
"""Not first, so not a docstring."""

def a():
    b"bytes are not docstrings"

def b():
    f"formatted {x} strings are not docstrings"

def c():
    """   """

def d():
    # leading comment is not a statement
    """Comment before the docstring is fine."""
`
	parsed := parsePython(t, src)
	docs := docstrings(parsed.Spans)
	if len(docs) != 1 {
		t.Fatalf("got %d docstrings, want 1: %+v", len(docs), docs)
	}
	if docs[0].Func != "d" {
		t.Errorf("docstring owner = %q, want d", docs[0].Func)
	}
}

func TestDocstringCleaning(t *testing.T) {
	src := "def f():\n    '''First line.\n\n        Indented detail\n    Body line.\n    '''\n"
	parsed := parsePython(t, src)
	docs := docstrings(parsed.Spans)
	if len(docs) != 1 {
		t.Fatalf("got %d docstrings, want 1", len(docs))
	}
	want := "First line.\n\n    Indented detail\nBody line."
	if docs[0].Text != want {
		t.Errorf("docstring = %q, want %q", docs[0].Text, want)
	}
}

func TestSyntaxErrorKeepsInlineComments(t *testing.T) {
	src := `"""Module doc."""
# keep me
def f(x)
    return x
`
	parsed := parsePython(t, src)

	var syntaxErr *SyntaxError
	if !errors.As(parsed.ParseErr, &syntaxErr) {
		t.Fatalf("ParseErr = %v, want *SyntaxError", parsed.ParseErr)
	}
	if !errors.Is(parsed.ParseErr, ErrSyntax) {
		t.Errorf("ParseErr should wrap ErrSyntax")
	}
	if parsed.LexErr != nil {
		t.Errorf("LexErr = %v, want nil", parsed.LexErr)
	}
	if len(parsed.Spans) != 1 || parsed.Spans[0].Text != "keep me" {
		t.Errorf("spans = %+v, want only the inline comment", parsed.Spans)
	}
}

func TestLexErrorDropsInlineComments(t *testing.T) {
	src := "# lost\nx = (1,\n"
	parsed := parsePython(t, src)
	if !errors.Is(parsed.LexErr, ErrEOFInStatement) {
		t.Errorf("LexErr = %v, want ErrEOFInStatement", parsed.LexErr)
	}
	for _, s := range parsed.Spans {
		if s.Kind == KindInline {
			t.Errorf("unexpected inline span after lex failure: %+v", s)
		}
	}
}

func TestEmptySource(t *testing.T) {
	parsed := parsePython(t, "")
	if len(parsed.Spans) != 0 {
		t.Errorf("got %d spans for empty source, want 0", len(parsed.Spans))
	}
	if parsed.LexErr != nil || parsed.ParseErr != nil {
		t.Errorf("unexpected errors: lex=%v parse=%v", parsed.LexErr, parsed.ParseErr)
	}
}

func TestCancelledParseKeepsInlineComments(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	src := "# still here\ndef f():\n    \"\"\"Doc.\"\"\"\n"
	parsed, err := (&PythonParser{}).Parse(ctx, "slow.py", []byte(src))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if parsed.ParseErr != nil && !errors.Is(parsed.ParseErr, ErrParseAborted) {
		t.Errorf("ParseErr = %v, want nil or ErrParseAborted", parsed.ParseErr)
	}
	if len(parsed.Spans) == 0 || parsed.Spans[0].Text != "still here" {
		t.Errorf("inline comment should survive a cancelled parse, got %+v", parsed.Spans)
	}
}

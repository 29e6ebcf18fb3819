package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/pthm/ccqe/internal/classifier"
	"github.com/pthm/ccqe/internal/parser"
	"github.com/pthm/ccqe/internal/profile"
)

func quietOptions() Options {
	return Options{Workers: 4, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"b.py",
		"a.py",
		"pkg/mod.py",
		"pkg/notes.txt",
		"pkg/api_pb2.py",
		".venv/lib/site.py",
		"__pycache__/a.cpython.py",
		"build/gen.py",
		"tests/test_a.py",
	} {
		writeFile(t, dir, rel, "# x\n")
	}

	p, err := profile.Load("python")
	if err != nil {
		t.Fatalf("Load(python) returned error: %v", err)
	}

	tests := []struct {
		name     string
		exclude  []string
		expected []string
	}{
		{
			name:     "profile only",
			expected: []string{"a.py", "b.py", "build/gen.py", "pkg/mod.py", "tests/test_a.py"},
		},
		{
			name:     "exclude directory by name",
			exclude:  []string{"build"},
			expected: []string{"a.py", "b.py", "pkg/mod.py", "tests/test_a.py"},
		},
		{
			name:     "exclude by relative path and base name",
			exclude:  []string{"pkg/*", "test_*.py"},
			expected: []string{"a.py", "b.py", "build/gen.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Discover(dir, p, tt.exclude)
			if err != nil {
				t.Fatalf("Discover() returned error: %v", err)
			}
			var rel []string
			for _, f := range files {
				r, _ := filepath.Rel(dir, f)
				rel = append(rel, filepath.ToSlash(r))
			}
			if !reflect.DeepEqual(rel, tt.expected) {
				t.Errorf("Discover() = %v, want %v", rel, tt.expected)
			}
		})
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "script", "# no extension\n")
	p, _ := profile.Load("python")

	files, err := Discover(path, p, nil)
	if err != nil {
		t.Fatalf("Discover() returned error: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("Discover(%q) = %v, want the file itself", path, files)
	}
}

func TestDiscoverErrors(t *testing.T) {
	p, _ := profile.Load("python")
	if _, err := Discover(filepath.Join(t.TempDir(), "missing"), p, nil); err == nil {
		t.Error("Discover() on a missing path should fail")
	}
	if _, err := Discover(t.TempDir(), p, []string{"["}); err == nil {
		t.Error("Discover() with a bad pattern should fail")
	}
}

func TestAnalyzeSource(t *testing.T) {
	src := `"""Cache settings.

Loaded once because reading disk on every request hurts performance
and we assume the file never changes while running.
"""
def f(x):
    # add one
    return x + 1
`
	a := New(quietOptions())
	res := a.AnalyzeSource(context.Background(), "ex.py", []byte(src))
	if res.Err != nil || res.LexErr != nil || res.ParseErr != nil {
		t.Fatalf("unexpected errors: %v %v %v", res.Err, res.LexErr, res.ParseErr)
	}
	if len(res.Findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(res.Findings))
	}

	inline := res.Findings[0]
	if inline.Span.Kind != parser.KindInline || inline.Span.Text != "add one" {
		t.Fatalf("first finding = %+v, want the inline comment", inline.Span)
	}
	if inline.Score.Label != classifier.Low || inline.Rule != "too-short" {
		t.Errorf("inline finding = %v/%s, want Low/too-short", inline.Score.Label, inline.Rule)
	}
	if inline.Span.Line != 7 || inline.Span.Func != "" {
		t.Errorf("inline span = %+v, want line 7 without an owner", inline.Span)
	}

	doc := res.Findings[1]
	if doc.Span.Kind != parser.KindDocstring || doc.Score.Label != classifier.High || doc.Rule != "keep" {
		t.Errorf("docstring finding = %+v", doc)
	}
	if res.Bytes != len(src) || res.FileType != parser.FileTypePython {
		t.Errorf("Bytes/FileType = %d/%v", res.Bytes, res.FileType)
	}
}

func TestAnalyzeSourceUnsupported(t *testing.T) {
	res := New(quietOptions()).AnalyzeSource(context.Background(), "notes.txt", []byte("# hi"))
	if res.Err == nil {
		t.Error("expected an error for an unsupported file")
	}
}

func TestMemoRelabelsPath(t *testing.T) {
	a := New(quietOptions())
	src := []byte("# add one\nreturn x + 1\n")

	first := a.AnalyzeSource(context.Background(), "one.py", src)
	second := a.AnalyzeSource(context.Background(), "two.py", src)

	if first.Findings[0].Rule != "restates-code" {
		t.Errorf("Rule = %q, want restates-code for a comment above the code it repeats", first.Findings[0].Rule)
	}
	if first.Cached {
		t.Error("first analysis should not be cached")
	}
	if !second.Cached {
		t.Error("second analysis of identical content should be cached")
	}
	if second.Path != "two.py" || second.Findings[0].Span.File != "two.py" {
		t.Errorf("cached result not relabelled: %+v", second)
	}
	if first.Findings[0].Span.File != "one.py" {
		t.Errorf("relabelling changed the original result: %+v", first.Findings[0].Span)
	}
	if first.Findings[0].Score != second.Findings[0].Score {
		t.Error("cached score differs from the original")
	}
	if a.memo.len() != 1 {
		t.Errorf("memo holds %d entries, want 1", a.memo.len())
	}
}

func TestAnalyzeFilesPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 40; i++ {
		src := fmt.Sprintf("# comment number %d explains why\nx = %d\n", i, i)
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f%02d.py", i), src))
	}
	paths = append(paths, filepath.Join(dir, "missing.py"))

	var mu sync.Mutex
	seen := 0
	opts := quietOptions()
	opts.OnFileDone = func(FileResult) {
		mu.Lock()
		seen++
		mu.Unlock()
	}

	results, err := New(opts).AnalyzeFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("AnalyzeFiles() returned error: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("results[%d].Path = %s, want %s", i, res.Path, paths[i])
		}
	}
	if results[len(results)-1].Err == nil {
		t.Error("missing file should carry a read error")
	}
	if seen != len(paths) {
		t.Errorf("OnFileDone ran %d times, want %d", seen, len(paths))
	}
}

func TestAnalyzeFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "# x\n")
	_, err := New(quietOptions()).AnalyzeFiles(ctx, []string{path})
	if err == nil {
		t.Error("AnalyzeFiles() with a cancelled context should return an error")
	}
}

func TestComputeMetrics(t *testing.T) {
	results := []FileResult{
		{
			Path:     "a.py",
			Bytes:    10,
			FileType: parser.FileTypePython,
			Findings: []Finding{
				{Span: parser.CommentSpan{Kind: parser.KindInline}},
				{Span: parser.CommentSpan{Kind: parser.KindDocstring}},
			},
			LexErr: fmt.Errorf("lex"),
		},
		{Path: "b.py", Bytes: 5, FileType: parser.FileTypePython, Cached: true, ParseErr: fmt.Errorf("parse")},
		{Path: "c.py", Err: os.ErrNotExist},
	}

	m := ComputeMetrics(results)
	if m.TotalFiles != 2 || m.TotalBytes != 15 || m.TotalSpans != 2 {
		t.Errorf("totals = %d files, %d bytes, %d spans", m.TotalFiles, m.TotalBytes, m.TotalSpans)
	}
	if m.SpansByKind["inline"] != 1 || m.SpansByKind["docstring"] != 1 {
		t.Errorf("SpansByKind = %v", m.SpansByKind)
	}
	if m.LexFailures != 1 || m.ParseFailures != 1 || m.ReadFailures != 1 || m.CachedFiles != 1 {
		t.Errorf("failures = %+v", m)
	}
	if m.FilesByType["python"] != 2 {
		t.Errorf("FilesByType = %v", m.FilesByType)
	}
}

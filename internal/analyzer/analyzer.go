// Package analyzer runs the comment quality pipeline over files.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/pthm/ccqe/internal/classifier"
	"github.com/pthm/ccqe/internal/feedback"
	"github.com/pthm/ccqe/internal/parser"
	"github.com/pthm/ccqe/internal/prepare"
	"github.com/pthm/ccqe/internal/worker"
)

// Finding is the verdict on one comment or docstring.
type Finding struct {
	Span       parser.CommentSpan
	Score      classifier.QualityScore
	Rule       string
	Suggestion string
}

// FileResult holds the findings for one file in scanner order.
type FileResult struct {
	Path     string
	Bytes    int
	FileType parser.FileType
	Findings []Finding

	// LexErr and ParseErr report degraded extraction; the file still has
	// whatever findings the other path produced.
	LexErr   error
	ParseErr error

	// Err is set when the file could not be read or parsed at all.
	Err error

	// Cached is true when an identical file earlier in the run supplied
	// the findings.
	Cached bool
}

// Options configures an Analyzer.
type Options struct {
	// Workers bounds how many files are analyzed at once. Zero means one.
	Workers int

	// FileTimeout bounds the syntax tree parse of each file. Zero means no
	// limit. Inline comments are kept when the parse times out.
	FileTimeout time.Duration

	// Logger receives per-file diagnostics. Nil uses slog.Default().
	Logger *slog.Logger

	// OnFileDone is called once per file as results arrive, from a single
	// goroutine.
	OnFileDone func(FileResult)
}

// Analyzer scores the comments of source files.
type Analyzer struct {
	opts       Options
	classifier classifier.Classifier
	memo       *memo
	logger     *slog.Logger
}

// New creates an analyzer using the heuristic classifier.
func New(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		opts:       opts,
		classifier: classifier.NewHeuristicClassifier(),
		memo:       newMemo(),
		logger:     logger,
	}
}

// Evaluate scores a single span against the source it was found in.
func (a *Analyzer) Evaluate(span parser.CommentSpan, source string) Finding {
	return Evaluate(a.classifier, span, source)
}

// Evaluate runs the context builder, classifier and feedback table for one
// span.
func Evaluate(c classifier.Classifier, span parser.CommentSpan, source string) Finding {
	q := c.Classify(prepare.Build(span, source))
	rule := feedback.Select(q)
	return Finding{
		Span:       span,
		Score:      q,
		Rule:       rule.ID,
		Suggestion: rule.Message,
	}
}

// AnalyzeFile reads and analyzes one file. Read errors are returned; all
// other problems are recorded on the result.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path}, err
	}
	return a.AnalyzeSource(ctx, path, content), nil
}

// AnalyzeSource analyzes already loaded content labelled with path.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, content []byte) FileResult {
	key := contentKey(path, content)
	if res, ok := a.memo.get(key, path); ok {
		a.logger.Debug("reusing findings for identical file", "file", path)
		return res
	}

	parseCtx := ctx
	if a.opts.FileTimeout > 0 {
		var cancel context.CancelFunc
		parseCtx, cancel = context.WithTimeout(ctx, a.opts.FileTimeout)
		defer cancel()
	}

	res := FileResult{
		Path:     path,
		Bytes:    len(content),
		FileType: parser.GetFileType(path),
	}

	parsed, err := parser.ParseContent(parseCtx, path, content)
	if err != nil {
		res.Err = err
		a.logger.Warn("skipping file", "file", path, "err", err)
		return res
	}

	res.LexErr = parsed.LexErr
	res.ParseErr = parsed.ParseErr
	if res.LexErr != nil {
		a.logger.Debug("lexing failed, inline comments skipped", "file", path, "err", res.LexErr)
	}
	if res.ParseErr != nil {
		a.logger.Debug("parsing failed, docstrings skipped", "file", path, "err", res.ParseErr)
	}

	src := parsed.Source()
	res.Findings = make([]Finding, 0, len(parsed.Spans))
	for _, span := range parsed.Spans {
		res.Findings = append(res.Findings, a.Evaluate(span, src))
	}

	// An aborted parse depends on timing, not content.
	if !errors.Is(res.ParseErr, parser.ErrParseAborted) {
		a.memo.put(key, res)
	}
	return res
}

// fileJob analyzes one file of a batch.
type fileJob struct {
	index    int
	path     string
	analyzer *Analyzer
}

// Execute implements worker.Job
func (j *fileJob) Execute(ctx context.Context) worker.Result {
	res, err := j.analyzer.AnalyzeFile(ctx, j.path)
	if err != nil {
		res.Err = err
		j.analyzer.logger.Warn("cannot read file", "file", j.path, "err", err)
	}
	return &fileJobResult{index: j.index, FileResult: res}
}

type fileJobResult struct {
	index int
	FileResult
}

// GetError implements worker.Result
func (r *fileJobResult) GetError() error {
	return r.Err
}

// AnalyzeFiles analyzes paths on the worker pool and returns the results in
// the order of paths. If ctx is cancelled the results gathered so far are
// returned, still in input order, together with the context's error.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	jobs := make([]worker.Job, len(paths))
	for i, path := range paths {
		jobs[i] = &fileJob{index: i, path: path, analyzer: a}
	}

	pool := worker.NewPool(ctx, a.opts.Workers)
	raw := pool.Run(jobs, func(r worker.Result) {
		if a.opts.OnFileDone != nil {
			a.opts.OnFileDone(r.(*fileJobResult).FileResult)
		}
	})

	done := make([]*fileJobResult, 0, len(raw))
	for _, r := range raw {
		done = append(done, r.(*fileJobResult))
	}
	sort.Slice(done, func(i, j int) bool {
		return done[i].index < done[j].index
	})

	results := make([]FileResult, len(done))
	for i, r := range done {
		results[i] = r.FileResult
	}
	return results, ctx.Err()
}

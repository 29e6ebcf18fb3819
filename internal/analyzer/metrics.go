package analyzer

import "github.com/pthm/ccqe/internal/parser"

// Metrics contains computed metrics about an analysis run
type Metrics struct {
	TotalFiles    int            `json:"total_files" yaml:"total_files"`
	TotalBytes    int            `json:"total_bytes" yaml:"total_bytes"`
	TotalSpans    int            `json:"total_spans" yaml:"total_spans"`
	SpansByKind   map[string]int `json:"spans_by_kind" yaml:"spans_by_kind"`
	FilesByType   map[string]int `json:"files_by_type" yaml:"files_by_type"`
	LexFailures   int            `json:"lex_failures" yaml:"lex_failures"`
	ParseFailures int            `json:"parse_failures" yaml:"parse_failures"`
	ReadFailures  int            `json:"read_failures" yaml:"read_failures"`
	CachedFiles   int            `json:"cached_files" yaml:"cached_files"`
}

// ComputeMetrics computes metrics for a set of file results
func ComputeMetrics(results []FileResult) *Metrics {
	m := &Metrics{
		SpansByKind: make(map[string]int),
		FilesByType: make(map[string]int),
	}

	for _, res := range results {
		if res.Err != nil {
			m.ReadFailures++
			continue
		}

		m.TotalFiles++
		m.TotalBytes += res.Bytes
		m.FilesByType[res.FileType.String()]++

		if res.Cached {
			m.CachedFiles++
		}
		if res.LexErr != nil {
			m.LexFailures++
		}
		if res.ParseErr != nil {
			m.ParseFailures++
		}

		for _, f := range res.Findings {
			m.TotalSpans++
			m.SpansByKind[f.Span.Kind.String()]++
		}
	}

	// Report both kinds even when one is absent
	for _, k := range []parser.Kind{parser.KindInline, parser.KindDocstring} {
		m.SpansByKind[k.String()] += 0
	}

	return m
}

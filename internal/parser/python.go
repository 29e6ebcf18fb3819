package parser

import (
	"bytes"
	"context"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PythonParser extracts comments and docstrings from Python source.
// Comments come from a lexer pass and docstrings from a tree-sitter parse.
// The two passes fail independently.
type PythonParser struct{}

// CanParse returns true if this parser can handle the file
func (p *PythonParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypePython
}

// Parse never fails: lexing and parsing problems are recorded on the
// returned ParsedFile and only reduce the number of spans.
func (p *PythonParser) Parse(ctx context.Context, path string, content []byte) (*ParsedFile, error) {
	src := bytes.TrimPrefix(content, utf8BOM)

	inline, lexErr := lexComments(path, src)
	docs, parseErr := extractDocstrings(ctx, path, src)

	spans := make([]CommentSpan, 0, len(inline)+len(docs))
	spans = append(spans, inline...)
	spans = append(spans, docs...)

	return &ParsedFile{
		Path:     path,
		Content:  content,
		FileType: FileTypePython,
		Spans:    spans,
		LexErr:   lexErr,
		ParseErr: parseErr,
	}, nil
}

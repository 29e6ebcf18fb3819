package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned when no parser handles a file's type
var ErrUnsupported = errors.New("unsupported file type")

// Kind distinguishes line comments from docstrings
type Kind int

const (
	KindInline Kind = iota
	KindDocstring
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindDocstring:
		return "docstring"
	default:
		return "unknown"
	}
}

// Location represents a position in a file
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// CommentSpan is one comment or docstring discovered in a source file.
// At most one of Func and Class is set; neither means module level or detached.
type CommentSpan struct {
	Location
	Text  string
	Kind  Kind
	Func  string
	Class string
}

// Owner returns the enclosing function or class name, or "" at module level.
func (s CommentSpan) Owner() string {
	if s.Func != "" {
		return s.Func
	}
	return s.Class
}

// FileType represents the source language of a file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypePython
)

func (ft FileType) String() string {
	switch ft {
	case FileTypePython:
		return "python"
	default:
		return "unknown"
	}
}

// ParsedFile holds the spans found in one file together with the unmodified
// source, which the context builder needs for its line window.
type ParsedFile struct {
	Path     string
	Content  []byte
	FileType FileType
	Spans    []CommentSpan

	// LexErr and ParseErr record which extraction path degraded. Neither
	// prevents the other path from producing spans.
	LexErr   error
	ParseErr error
}

// Source returns the file content as text
func (f *ParsedFile) Source() string {
	return string(f.Content)
}

// Parser defines the interface for extracting comment spans from source files
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*ParsedFile, error)
	CanParse(path string) bool
}

// Parse reads a file and parses it using the appropriate parser
func Parse(ctx context.Context, path string) (*ParsedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContent(ctx, path, content)
}

// ParseContent parses already loaded content. The path only selects the
// parser and labels the resulting spans.
func ParseContent(ctx context.Context, path string, content []byte) (*ParsedFile, error) {
	p := getParser(path)
	if p == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	return p.Parse(ctx, path, content)
}

// getParser returns the appropriate parser for a file
func getParser(path string) Parser {
	switch GetFileType(path) {
	case FileTypePython:
		return &PythonParser{}
	default:
		return nil
	}
}

// GetFileType returns the FileType for a given path
func GetFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".py", ".pyw":
		return FileTypePython
	default:
		return FileTypeUnknown
	}
}

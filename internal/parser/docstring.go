package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

var (
	ErrSyntax       = errors.New("invalid syntax")
	ErrParseAborted = errors.New("parse aborted")
)

// SyntaxError reports the first error or missing node in the parse tree
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %v", e.Line, e.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// extractDocstrings parses src and returns the module docstring followed by
// every function and class docstring in breadth-first tree order. A tree
// with any error node counts as a failed parse and yields no docstrings.
func extractDocstrings(ctx context.Context, path string, src []byte) ([]CommentSpan, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseAborted, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		bad := firstErrorNode(root)
		pt := bad.StartPoint()
		return nil, &SyntaxError{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1, Err: ErrSyntax}
	}

	var spans []CommentSpan
	if doc, stmt, ok := docstringOf(root, src); ok {
		spans = append(spans, CommentSpan{
			Location: Location{File: path, Line: int(stmt.StartPoint().Row) + 1},
			Text:     doc,
			Kind:     KindDocstring,
		})
	}

	queue := []*sitter.Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		switch n.Type() {
		case "function_definition", "class_definition":
			if doc, _, ok := docstringOf(n.ChildByFieldName("body"), src); ok {
				span := CommentSpan{
					Location: Location{File: path, Line: int(n.StartPoint().Row) + 1},
					Text:     doc,
					Kind:     KindDocstring,
				}
				name := ""
				if id := n.ChildByFieldName("name"); id != nil {
					name = id.Content(src)
				}
				if n.Type() == "function_definition" {
					span.Func = name
				} else {
					span.Class = name
				}
				spans = append(spans, span)
			}
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			queue = append(queue, n.NamedChild(i))
		}
	}

	return spans, nil
}

// docstringOf returns the cleaned docstring of a module or block together
// with the statement holding it.
func docstringOf(body *sitter.Node, src []byte) (string, *sitter.Node, bool) {
	if body == nil {
		return "", nil, false
	}

	stmt := firstStatement(body)
	if stmt == nil || stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return "", nil, false
	}

	text, ok := stringValue(stmt.NamedChild(0), src)
	if !ok {
		return "", nil, false
	}

	doc := cleanDoc(text)
	if doc == "" {
		return "", nil, false
	}
	return doc, stmt, true
}

// firstStatement skips comment nodes, which tree-sitter keeps as extras
func firstStatement(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		return c
	}
	return nil
}

// stringValue evaluates a plain string expression. Bytes and f-strings are
// not docstrings.
func stringValue(n *sitter.Node, src []byte) (string, bool) {
	switch n.Type() {
	case "string":
		return decodeLiteral(n.Content(src))

	case "concatenated_string":
		var out string
		for i := 0; i < int(n.NamedChildCount()); i++ {
			part := n.NamedChild(i)
			if part.Type() == "comment" {
				continue
			}
			if part.Type() != "string" {
				return "", false
			}
			s, ok := decodeLiteral(part.Content(src))
			if !ok {
				return "", false
			}
			out += s
		}
		return out, true

	case "parenthesized_expression":
		inner := firstStatement(n)
		if inner == nil || n.NamedChildCount() != 1 {
			return "", false
		}
		return stringValue(inner, src)
	}
	return "", false
}

// firstErrorNode finds the first ERROR or MISSING node in document order
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.HasError() || c.IsMissing() {
			return firstErrorNode(c)
		}
	}
	return n
}

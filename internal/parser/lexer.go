package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrEOFInString        = errors.New("EOF in multi-line string")
	ErrEOFInStatement     = errors.New("EOF in multi-line statement")
	ErrDedent             = errors.New("unindent does not match any outer indentation level")
)

// LexError reports where the comment lexer gave up
type LexError struct {
	Line   int
	Column int
	Err    error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %v", e.Line, e.Column, e.Err)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

const tabSize = 8

// lexer walks Python source far enough to tell comments apart from string
// contents. It tracks brackets, line continuations and the indentation
// stack so that malformed token streams are reported like Python's own
// tokenizer would.
type lexer struct {
	src       []byte
	pos       int
	line      int
	lineStart int
	depth     int
	indents   []int
	comments  []rawComment
}

type rawComment struct {
	line int
	text string
}

// lexComments returns every non-empty comment in file order, or no comments
// at all when the token stream is malformed.
func lexComments(path string, src []byte) ([]CommentSpan, error) {
	lx := &lexer{src: src, line: 1, indents: []int{0}}
	if err := lx.run(); err != nil {
		return nil, err
	}

	var spans []CommentSpan
	for _, c := range lx.comments {
		text := strings.TrimSpace(strings.TrimLeft(c.text, "#"))
		if text == "" {
			continue
		}
		spans = append(spans, CommentSpan{
			Location: Location{File: path, Line: c.line},
			Text:     text,
			Kind:     KindInline,
		})
	}
	return spans, nil
}

func (lx *lexer) run() error {
	atLineStart := true
	continued := false

	for lx.pos < len(lx.src) {
		if atLineStart {
			atLineStart = false
			if lx.depth == 0 && !continued {
				if err := lx.indentation(); err != nil {
					return err
				}
				continue
			}
		}

		if n := lx.lineBreak(lx.pos); n > 0 {
			lx.newline(n)
			atLineStart = true
			continued = false
			continue
		}

		c := lx.src[lx.pos]
		switch {
		case c == '#':
			lx.comment()
		case c == '\\':
			if lx.pos+1 >= len(lx.src) {
				return lx.errorf(ErrEOFInStatement)
			}
			if n := lx.lineBreak(lx.pos + 1); n > 0 {
				lx.pos++
				lx.newline(n)
				atLineStart = true
				continued = true
				continue
			}
			lx.pos++
		case c == '\'' || c == '"':
			if err := lx.str(false); err != nil {
				return err
			}
		case isIdentStart(c):
			if err := lx.word(); err != nil {
				return err
			}
		case c == '(' || c == '[' || c == '{':
			lx.depth++
			lx.pos++
		case c == ')' || c == ']' || c == '}':
			if lx.depth > 0 {
				lx.depth--
			}
			lx.pos++
		default:
			lx.pos++
		}
	}

	if lx.depth > 0 || continued {
		return lx.errorf(ErrEOFInStatement)
	}
	return nil
}

// indentation consumes leading whitespace of a logical line and checks it
// against the indentation stack. Blank and comment-only lines are ignored.
func (lx *lexer) indentation() error {
	col := 0
loop:
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ':
			col++
		case '\t':
			col = (col/tabSize + 1) * tabSize
		case '\f':
			col = 0
		default:
			break loop
		}
		lx.pos++
	}

	if lx.pos >= len(lx.src) || lx.src[lx.pos] == '#' || lx.lineBreak(lx.pos) > 0 {
		return nil
	}

	top := lx.indents[len(lx.indents)-1]
	if col > top {
		lx.indents = append(lx.indents, col)
		return nil
	}
	for col < lx.indents[len(lx.indents)-1] {
		lx.indents = lx.indents[:len(lx.indents)-1]
	}
	if col != lx.indents[len(lx.indents)-1] {
		return lx.errorf(ErrDedent)
	}
	return nil
}

func (lx *lexer) comment() {
	start := lx.pos
	for lx.pos < len(lx.src) && lx.lineBreak(lx.pos) == 0 {
		lx.pos++
	}
	lx.comments = append(lx.comments, rawComment{
		line: lx.line,
		text: string(lx.src[start:lx.pos]),
	})
}

// word consumes an identifier, and the string literal following it when
// the identifier is a string prefix.
func (lx *lexer) word() error {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}
	prefix := string(lx.src[start:lx.pos])
	if lx.pos < len(lx.src) && isQuote(lx.src[lx.pos]) && isStringPrefix(prefix) {
		return lx.str(strings.ContainsAny(prefix, "fF"))
	}
	return nil
}

// str consumes a string literal starting at the opening quote. In an
// f-string, replacement fields are skipped as expressions, so quotes and
// hashes inside them do not end the string.
func (lx *lexer) str(fstring bool) error {
	q := lx.src[lx.pos]
	line, col := lx.line, lx.column()

	triple := lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == q && lx.src[lx.pos+2] == q
	eofErr := ErrUnterminatedString
	if triple {
		eofErr = ErrEOFInString
		lx.pos += 3
	} else {
		lx.pos++
	}

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\\':
			lx.pos++
			if n := lx.lineBreak(lx.pos); n > 0 {
				lx.newline(n)
			} else if lx.pos < len(lx.src) {
				lx.pos++
			}
		case fstring && c == '{':
			if lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '{' {
				lx.pos += 2
				continue
			}
			lx.pos++
			closed, err := lx.field()
			if err != nil {
				return err
			}
			if !closed {
				return &LexError{Line: line, Column: col, Err: eofErr}
			}
		case c == q && !triple:
			lx.pos++
			return nil
		case c == q && lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == q && lx.src[lx.pos+2] == q:
			lx.pos += 3
			return nil
		default:
			n := lx.lineBreak(lx.pos)
			switch {
			case n > 0 && !triple:
				return &LexError{Line: line, Column: col, Err: ErrUnterminatedString}
			case n > 0:
				lx.newline(n)
			default:
				lx.pos++
			}
		}
	}
	return &LexError{Line: line, Column: col, Err: eofErr}
}

// field consumes an f-string replacement field up to and including its
// closing brace. It reports false when the source ends first.
func (lx *lexer) field() (bool, error) {
	depth := 0
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case isQuote(c):
			if err := lx.str(false); err != nil {
				return false, err
			}
		case isIdentStart(c):
			if err := lx.word(); err != nil {
				return false, err
			}
		case c == '(' || c == '[' || c == '{':
			depth++
			lx.pos++
		case c == ')' || c == ']' || c == '}':
			lx.pos++
			if c == '}' && depth == 0 {
				return true, nil
			}
			if depth > 0 {
				depth--
			}
		case c == ':' && depth == 0:
			lx.pos++
			return lx.formatSpec()
		default:
			if n := lx.lineBreak(lx.pos); n > 0 {
				lx.newline(n)
			} else {
				lx.pos++
			}
		}
	}
	return false, nil
}

// formatSpec consumes the literal format spec of a replacement field and
// its closing brace. Nested fields such as {width} are expressions again.
func (lx *lexer) formatSpec() (bool, error) {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '{':
			lx.pos++
			if closed, err := lx.field(); !closed || err != nil {
				return closed, err
			}
		case c == '}':
			lx.pos++
			return true, nil
		default:
			if n := lx.lineBreak(lx.pos); n > 0 {
				lx.newline(n)
			} else {
				lx.pos++
			}
		}
	}
	return false, nil
}

// lineBreak returns the length of the line break at i, or 0.
func (lx *lexer) lineBreak(i int) int {
	if i >= len(lx.src) {
		return 0
	}
	switch lx.src[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(lx.src) && lx.src[i+1] == '\n' {
			return 2
		}
		return 1
	}
	return 0
}

// newline consumes a line break of length n at the current position.
func (lx *lexer) newline(n int) {
	lx.pos += n
	lx.line++
	lx.lineStart = lx.pos
}

func (lx *lexer) column() int {
	return lx.pos - lx.lineStart + 1
}

func (lx *lexer) errorf(err error) error {
	return &LexError{Line: lx.line, Column: lx.column(), Err: err}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}

package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// decodeLiteral turns the source text of a Python string literal into its
// value. It reports false for bytes and f-string literals.
func decodeLiteral(lit string) (string, bool) {
	i := 0
	for i < len(lit) && !isQuote(lit[i]) {
		i++
	}
	prefix := strings.ToLower(lit[:i])
	if strings.ContainsAny(prefix, "bf") {
		return "", false
	}

	body := lit[i:]
	var quote string
	switch {
	case strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`):
		quote = body[:3]
	case len(body) >= 2:
		quote = body[:1]
	default:
		return "", false
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return "", false
	}

	inner := body[len(quote) : len(body)-len(quote)]
	if strings.Contains(prefix, "r") {
		return inner, true
	}
	return unescape(inner), true
}

// unescape resolves backslash escapes the way Python does for str literals.
// Unknown escapes keep their backslash.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for len(s) > 0 {
		if s[0] != '\\' || len(s) == 1 {
			sb.WriteByte(s[0])
			s = s[1:]
			continue
		}

		switch s[1] {
		case '\n':
			s = s[2:]
			continue
		case '\r':
			s = strings.TrimPrefix(s[2:], "\n")
			continue
		case '\'', '"':
			sb.WriteByte(s[1])
			s = s[2:]
			continue
		}

		value, multibyte, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			sb.WriteByte('\\')
			s = s[1:]
			continue
		}
		if value < utf8.RuneSelf && !multibyte {
			sb.WriteByte(byte(value))
		} else {
			sb.WriteRune(value)
		}
		s = tail
	}
	return sb.String()
}

// cleanDoc strips a docstring the way inspect.cleandoc does: tabs are
// expanded, the first line is left-trimmed, the common indentation of the
// remaining lines is removed and edge lines left empty are dropped.
func cleanDoc(doc string) string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.ReplaceAll(doc, "\r", "\n")
	lines := strings.Split(expandTabs(doc), "\n")

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeftFunc(line, unicode.IsSpace)
		if content == "" {
			continue
		}
		indent := len(line) - len(content)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeftFunc(lines[0], unicode.IsSpace)
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

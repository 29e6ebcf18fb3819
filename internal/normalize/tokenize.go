// Package normalize turns comment text and nearby source code into
// comparable word tokens.
package normalize

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[A-Za-z_]+`)

// Tokenize returns the maximal runs of ASCII letters and underscores in text,
// lowercased and in order. Digits, punctuation and whitespace only separate
// tokens.
func Tokenize(text string) []string {
	words := wordPattern.FindAllString(text, -1)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

package normalize

// synonymGroups maps each canonical concept to the surface forms that
// express it in comments or in normalized code.
var synonymGroups = map[string][]string{
	"increment": {"increment", "inc", "increase", "increments", "incremented", "add", "adds", "bump", "plus", "add_one", "increment_by_one"},
	"decrement": {"decrement", "dec", "decrease", "decrements", "decremented", "subtract", "minus", "subtract_one", "decrement_by_one"},
	"zero":      {"zero", "zeros", "equals_zero", "not_zero"},
	"one":       {"one", "equals_one", "single"},
	"check":     {"check", "checks", "validate", "verify", "ensure", "assert", "guard"},
	"error":     {"error", "errors", "err", "exception", "raise", "raises", "fail", "failure"},
	"warn":      {"warn", "warning", "warnings", "warns"},
	"log":       {"log", "logs", "logger", "logging"},
	"config":    {"config", "configuration", "cfg", "conf", "settings"},
	"remove":    {"remove", "delete", "del", "drop", "discard", "pop"},
	"create":    {"create", "make", "new", "build", "init"},
	"start":     {"start", "begin", "launch", "open"},
	"stop":      {"stop", "end", "halt", "close", "terminate"},
	"loop":      {"loop", "iterate", "for", "while", "each"},
	"result":    {"result", "results", "return", "returns", "ret", "res", "output"},
	"input":     {"input", "inputs", "arg", "args", "param", "params", "argument", "arguments"},
}

var canonicalForms = buildCanonicalForms()

func buildCanonicalForms() map[string]string {
	forms := make(map[string]string)
	for concept, words := range synonymGroups {
		for _, w := range words {
			forms[w] = concept
		}
	}
	return forms
}

// Canonical returns the concept a token belongs to, or the token itself when
// it has no known synonyms.
func Canonical(token string) string {
	if concept, ok := canonicalForms[token]; ok {
		return concept
	}
	return token
}

// Canonicalize maps tokens to their concepts and returns the distinct
// results.
func Canonicalize(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[Canonical(t)] = struct{}{}
	}
	return set
}

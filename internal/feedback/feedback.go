// Package feedback turns a quality score into one suggestion for the
// comment's author.
package feedback

import "github.com/pthm/ccqe/internal/classifier"

// Rule is one row of the suggestion table.
type Rule struct {
	ID      string
	Message string
	// AsksForIntent marks suggestions that request the reason behind the
	// code. Reports count them.
	AsksForIntent bool

	matches func(q classifier.QualityScore) bool
}

// rules are evaluated top to bottom and the first match wins. The last row
// matches everything.
var rules = []Rule{
	{
		ID:      "keep",
		Message: "Keep this comment. It explains purpose or reasoning and adds context beyond the code.",
		matches: func(q classifier.QualityScore) bool {
			return q.Label == classifier.High
		},
	},
	{
		ID:            "add-intent",
		Message:       "Add the reason or intent. Explain why the code exists and note key assumptions.",
		AsksForIntent: true,
		matches: func(q classifier.QualityScore) bool {
			return q.Label == classifier.Medium && q.Signals.IntentHits == 0
		},
	},
	{
		ID:      "add-detail",
		Message: "Add one clarifying detail such as a constraint or tradeoff to strengthen the comment.",
		matches: func(q classifier.QualityScore) bool {
			return q.Label == classifier.Medium
		},
	},
	{
		ID:            "restates-code",
		Message:       "Avoid repeating the code in words. Focus on intent, assumptions, or side effects.",
		AsksForIntent: true,
		matches: func(q classifier.QualityScore) bool {
			return q.Signals.Redundancy >= 0.5
		},
	},
	{
		ID:      "too-short",
		Message: "Expand the comment to explain purpose and what would break if changed.",
		matches: func(q classifier.QualityScore) bool {
			return q.Signals.Length < 3
		},
	},
	{
		ID:            "clarify-intent",
		Message:       "Clarify intent and assumptions. Add what, why, and any non-obvious constraints.",
		AsksForIntent: true,
		matches: func(classifier.QualityScore) bool {
			return true
		},
	},
}

// Select returns the first rule that matches q.
func Select(q classifier.QualityScore) Rule {
	for _, r := range rules {
		if r.matches(q) {
			return r
		}
	}
	return rules[len(rules)-1]
}

// Suggest returns the suggestion text for q.
func Suggest(q classifier.QualityScore) string {
	return Select(q).Message
}

// Rules returns the suggestion table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Lookup finds a rule by ID.
func Lookup(id string) (Rule, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// AsksForIntent reports whether the rule with the given ID asks the author
// for intent. Unknown IDs report false.
func AsksForIntent(id string) bool {
	r, ok := Lookup(id)
	return ok && r.AsksForIntent
}

package feedback

import (
	"strings"
	"testing"

	"github.com/pthm/ccqe/internal/classifier"
)

func score(label classifier.Label, length, intent int, redundancy float64) classifier.QualityScore {
	return classifier.QualityScore{
		Label: label,
		Signals: classifier.Signals{
			Length:     length,
			IntentHits: intent,
			Redundancy: redundancy,
		},
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		q        classifier.QualityScore
		expected string
	}{
		{name: "high", q: score(classifier.High, 12, 2, 0), expected: "keep"},
		{name: "high even when redundant", q: score(classifier.High, 12, 2, 0.9), expected: "keep"},
		{name: "medium without intent", q: score(classifier.Medium, 6, 0, 0.1), expected: "add-intent"},
		{name: "medium with intent", q: score(classifier.Medium, 4, 1, 0.1), expected: "add-detail"},
		{name: "low and redundant", q: score(classifier.Low, 5, 0, 0.6), expected: "restates-code"},
		{name: "redundancy boundary", q: score(classifier.Low, 2, 0, 0.5), expected: "restates-code"},
		{name: "low and short", q: score(classifier.Low, 1, 0, 0.1), expected: "too-short"},
		{name: "low otherwise", q: score(classifier.Low, 5, 0, 0.2), expected: "clarify-intent"},
		{name: "medium ignores redundancy", q: score(classifier.Medium, 6, 0, 0.9), expected: "add-intent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.q).ID; got != tt.expected {
				t.Errorf("Select(%+v) = %q, want %q", tt.q, got, tt.expected)
			}
		})
	}
}

func TestSuggestMessages(t *testing.T) {
	tests := []struct {
		q        classifier.QualityScore
		contains string
	}{
		{score(classifier.High, 12, 2, 0), "keep this comment"},
		{score(classifier.Medium, 6, 0, 0.1), "add the reason or intent"},
		{score(classifier.Low, 5, 0, 0.6), "avoid repeating the code"},
		{score(classifier.Low, 1, 0, 0.1), "expand the comment"},
	}

	for _, tt := range tests {
		if got := strings.ToLower(Suggest(tt.q)); !strings.Contains(got, tt.contains) {
			t.Errorf("Suggest(%+v) = %q, want it to contain %q", tt.q, got, tt.contains)
		}
	}
}

func TestAsksForIntent(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{"keep", false},
		{"add-intent", true},
		{"add-detail", false},
		{"restates-code", true},
		{"too-short", false},
		{"clarify-intent", true},
		{"no-such-rule", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := AsksForIntent(tt.id); got != tt.expected {
				t.Errorf("AsksForIntent(%q) = %v, want %v", tt.id, got, tt.expected)
			}
		})
	}
}

func TestRulesAreUniqueAndTotal(t *testing.T) {
	seen := make(map[string]bool)
	all := Rules()
	for _, r := range all {
		if seen[r.ID] {
			t.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
		if r.Message == "" {
			t.Errorf("rule %q has no message", r.ID)
		}
	}
	if len(all) != 6 {
		t.Errorf("got %d rules, want 6", len(all))
	}

	for _, label := range classifier.Labels {
		for length := 0; length < 8; length++ {
			for _, red := range []float64{0, 0.3, 0.5, 1} {
				if Suggest(score(label, length, 0, red)) == "" {
					t.Errorf("no suggestion for %v/%d/%v", label, length, red)
				}
			}
		}
	}
}

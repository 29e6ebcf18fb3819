package classifier

import (
	"math"

	"github.com/pthm/ccqe/internal/normalize"
	"github.com/pthm/ccqe/internal/prepare"
)

// intentWords signal that a comment explains rationale rather than
// behavior. Multi-word markers such as "so that" cannot match single
// tokens and are not listed.
var intentWords = map[string]struct{}{
	"because":     {},
	"so":          {},
	"therefore":   {},
	"hence":       {},
	"why":         {},
	"rationale":   {},
	"tradeoff":    {},
	"assume":      {},
	"assumption":  {},
	"intent":      {},
	"reason":      {},
	"explain":     {},
	"due":         {},
	"avoid":       {},
	"ensure":      {},
	"guarantee":   {},
	"performance": {},
	"complexity":  {},
}

// countBand adds weight when a count reaches min. Bands are checked in
// order and the first match wins.
type countBand struct {
	min    int
	weight float64
}

var lengthBands = []countBand{
	{6, 0.35},
	{3, 0.20},
	{0, 0.05},
}

var intentBands = []countBand{
	{2, 0.35},
	{1, 0.20},
}

// redundancyBand subtracts penalty when redundancy exceeds above.
type redundancyBand struct {
	above   float64
	penalty float64
}

var redundancyBands = []redundancyBand{
	{0.5, 0.30},
	{0.3, 0.15},
}

// Score thresholds for labels.
const (
	highThreshold   = 0.7
	mediumThreshold = 0.4
)

// HeuristicClassifier scores comments by length, intent vocabulary and
// overlap with the surrounding code
type HeuristicClassifier struct{}

// NewHeuristicClassifier creates a new heuristic classifier
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

// Classify scores pc. It never fails; empty inputs give zero signals.
func (c *HeuristicClassifier) Classify(pc prepare.PreparedComment) QualityScore {
	return Classify(pc)
}

// Classify scores a prepared comment with the default heuristics.
func Classify(pc prepare.PreparedComment) QualityScore {
	length := len(pc.Tokens)
	intentHits := countIntent(pc.Tokens)
	redundancy := jaccard(
		normalize.Canonicalize(pc.Tokens),
		normalize.Canonicalize(normalize.Tokenize(pc.CodeContext)),
	)

	score := 0.0
	score += bandWeight(lengthBands, length)
	score += bandWeight(intentBands, intentHits)
	for _, b := range redundancyBands {
		if redundancy > b.above {
			score -= b.penalty
			break
		}
	}
	score = math.Max(0, math.Min(1, score))

	return QualityScore{
		Label: labelFor(score),
		Score: score,
		Signals: Signals{
			Length:     length,
			IntentHits: intentHits,
			Redundancy: math.Round(redundancy*100) / 100,
		},
	}
}

func labelFor(score float64) Label {
	switch {
	case score >= highThreshold:
		return High
	case score >= mediumThreshold:
		return Medium
	default:
		return Low
	}
}

func bandWeight(bands []countBand, n int) float64 {
	for _, b := range bands {
		if n >= b.min {
			return b.weight
		}
	}
	return 0
}

// countIntent counts distinct tokens that are intent words.
func countIntent(tokens []string) int {
	seen := make(map[string]struct{})
	for _, t := range tokens {
		if _, ok := intentWords[t]; ok {
			seen[t] = struct{}{}
		}
	}
	return len(seen)
}

// jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := max(len(a)+len(b)-inter, 1)
	return float64(inter) / float64(union)
}

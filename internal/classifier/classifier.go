// Package classifier scores comments from lexical signals.
package classifier

import (
	"fmt"
	"strings"

	"github.com/pthm/ccqe/internal/prepare"
)

// Label is the quality bucket of a comment.
type Label string

const (
	High   Label = "High"
	Medium Label = "Medium"
	Low    Label = "Low"
)

// Labels lists every label from best to worst.
var Labels = []Label{High, Medium, Low}

// ParseLabel accepts a label name in any case.
func ParseLabel(s string) (Label, error) {
	for _, l := range Labels {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown label %q (want high, medium or low)", s)
}

// Classifier defines the interface for comment quality classification
type Classifier interface {
	// Classify scores a prepared comment
	Classify(pc prepare.PreparedComment) QualityScore
}

// Signals are the measurements a score is derived from.
type Signals struct {
	Length     int     `json:"length" yaml:"length"`           // number of comment tokens
	IntentHits int     `json:"intent_hits" yaml:"intent_hits"` // distinct intent words in the comment
	Redundancy float64 `json:"redundancy" yaml:"redundancy"`   // 0-1: overlap with nearby code, 2 decimals
}

// QualityScore holds the classification of a single comment
type QualityScore struct {
	Label   Label   `json:"label" yaml:"label"`
	Score   float64 `json:"score" yaml:"score"` // 0-1
	Signals Signals `json:"signals" yaml:"signals"`
}

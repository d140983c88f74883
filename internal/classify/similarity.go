package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// Similarity scores two normalized strings in [0,1]; 1 means identical.
type Similarity interface {
	Ratio(a, b string) float64
}

// SimilarityFunc adapts a plain function to Similarity.
type SimilarityFunc func(a, b string) float64

func (f SimilarityFunc) Ratio(a, b string) float64 { return f(a, b) }

// SequenceRatio is the sequence-matcher ratio 2*M/T, where M is the number
// of characters in matching blocks and T the combined length.
type SequenceRatio struct{}

func (SequenceRatio) Ratio(a, b string) float64 {
	m := difflib.NewMatcher(runes(a), runes(b))
	return m.Ratio()
}

// LevenshteinRatio is 1 - distance/max(len(a), len(b)), counted in runes.
type LevenshteinRatio struct{}

func (LevenshteinRatio) Ratio(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// SimilarityByName resolves "sequence" (default) or "levenshtein".
func SimilarityByName(name string) (Similarity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sequence", "difflib":
		return SequenceRatio{}, nil
	case "levenshtein", "edit":
		return LevenshteinRatio{}, nil
	default:
		return nil, fmt.Errorf("unknown similarity %q", name)
	}
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

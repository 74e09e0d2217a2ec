package comparison

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Pair links at most one unit from each side of a replace block.
// A nil side means the unit has no counterpart.
type Pair struct {
	A *Unit
	B *Unit
}

// Pairer decides how the units of a replace block become changes. Every unit
// of a and b must appear in exactly one pair, in document order per side.
type Pairer interface {
	Pair(a, b []Unit) []Pair
}

// PositionalPairer pairs units element-wise in order. Units beyond the
// shorter side are reported alone (removed for A, added for B). This is an
// approximation: it does not look at content at all.
type PositionalPairer struct{}

func (PositionalPairer) Pair(a, b []Unit) []Pair {
	n := min(len(a), len(b))
	out := make([]Pair, 0, max(len(a), len(b)))
	for i := 0; i < n; i++ {
		out = append(out, Pair{A: &a[i], B: &b[i]})
	}
	for i := n; i < len(a); i++ {
		out = append(out, Pair{A: &a[i]})
	}
	for i := n; i < len(b); i++ {
		out = append(out, Pair{B: &b[i]})
	}
	return out
}

// DefaultSimilarityThreshold is the minimum LineSimilarity for SimilarityPairer.
const DefaultSimilarityThreshold = 0.5

// SimilarityPairer pairs each A unit with the next B unit whose content is at
// least Threshold similar, keeping both sides in order. B units skipped over
// become additions; A units without a partner become removals.
type SimilarityPairer struct {
	Threshold float64
}

func (p SimilarityPairer) Pair(a, b []Unit) []Pair {
	threshold := p.Threshold
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	out := make([]Pair, 0, len(a)+len(b))
	j := 0
	for i := range a {
		found := -1
		for k := j; k < len(b); k++ {
			if LineSimilarity(a[i].Normalized, b[k].Normalized) >= threshold {
				found = k
				break
			}
		}
		if found < 0 {
			out = append(out, Pair{A: &a[i]})
			continue
		}
		for ; j < found; j++ {
			out = append(out, Pair{B: &b[j]})
		}
		out = append(out, Pair{A: &a[i], B: &b[found]})
		j = found + 1
	}
	for ; j < len(b); j++ {
		out = append(out, Pair{B: &b[j]})
	}
	return out
}

// LineSimilarity returns 1 - levenshtein(a, b)/max(len(a), len(b)) over runes.
func LineSimilarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	if a == b {
		return 1
	}
	dmp := diffmatchpatch.New()
	dist := dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
	sim := 1 - float64(dist)/float64(longest)
	if sim < 0 {
		return 0
	}
	return sim
}

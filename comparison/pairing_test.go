package comparison

import (
	"testing"

	"doccompare/types"
)

func TestLineSimilarity(t *testing.T) {
	cases := []struct {
		name   string
		a, b   string
		lo, hi float64
	}{
		{"both empty", "", "", 1, 1},
		{"equal", "same", "same", 1, 1},
		{"one empty", "abc", "", 0, 0},
		{"small edit", "The fee is ten dollars", "The fee is twenty dollars", 0.85, 0.9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := LineSimilarity(c.a, c.b)
			if got < c.lo || got > c.hi {
				t.Fatalf("LineSimilarity(%q, %q) = %v; want in [%v, %v]", c.a, c.b, got, c.lo, c.hi)
			}
		})
	}
}

func describePairs(pairs []Pair) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		switch {
		case p.A != nil && p.B != nil:
			out = append(out, "~"+p.A.Text)
		case p.A != nil:
			out = append(out, "-"+p.A.Text)
		default:
			out = append(out, "+"+p.B.Text)
		}
	}
	return out
}

func TestPositionalPairer(t *testing.T) {
	got := describePairs(PositionalPairer{}.Pair(unitsOf("a1", "a2", "a3"), unitsOf("b1")))
	want := []string{"~a1", "-a2", "-a3"}
	if len(got) != len(want) {
		t.Fatalf("pairs = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pairs = %v; want %v", got, want)
		}
	}
}

func TestSimilarityPairerSkipsUnrelated(t *testing.T) {
	a := unitsOf("0000 1111 2222", "The fee is ten dollars")
	b := unitsOf("The fee is twenty dollars", "Brand new closing clause")

	got := describePairs(SimilarityPairer{}.Pair(a, b))
	want := []string{"-0000 1111 2222", "~The fee is ten dollars", "+Brand new closing clause"}
	if len(got) != len(want) {
		t.Fatalf("pairs = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pairs = %v; want %v", got, want)
		}
	}
}

func TestClassifyWithSimilarityPairer(t *testing.T) {
	a := unitsOf("0000 1111 2222", "The fee is ten dollars")
	b := unitsOf("The fee is twenty dollars")

	changes := NewClassifier(SimilarityPairer{}).Classify(a, b, Align(a, b))
	if len(changes) != 2 {
		t.Fatalf("got %d changes; want 2", len(changes))
	}
	if changes[0].Type != types.ChangeRemoved || changes[1].Type != types.ChangeModified {
		t.Fatalf("types = %s, %s; want removed, modified", changes[0].Type, changes[1].Type)
	}
}

func TestInlineDiffReassembles(t *testing.T) {
	a, b := "Fee is $10 per month", "Fee is $20 per year"
	segs := InlineDiff(a, b)

	var fromA, fromB string
	for _, s := range segs {
		switch s.Op {
		case types.InlineEqual:
			fromA += s.Text
			fromB += s.Text
		case types.InlineDelete:
			fromA += s.Text
		case types.InlineInsert:
			fromB += s.Text
		}
	}
	if fromA != a || fromB != b {
		t.Fatalf("inline segments rebuild %q / %q; want %q / %q", fromA, fromB, a, b)
	}
}

func TestEstimatePagesChanged(t *testing.T) {
	stats := types.Statistics{AddedCount: 10, ModifiedCount: 5}
	m1 := types.DocumentMeta{Pages: 4, Lines: 40}
	m2 := types.DocumentMeta{Pages: 4, Lines: 40}
	// 20 changed lines at 10 lines per page
	if got := estimatePagesChanged(stats, m1, m2); got != 3 {
		t.Fatalf("pages changed = %d; want 3", got)
	}
	if got := estimatePagesChanged(types.Statistics{AddedCount: 500}, m1, m2); got != 4 {
		t.Fatalf("pages changed = %d; want capped at 4", got)
	}
	if got := estimatePagesChanged(stats, types.DocumentMeta{}, types.DocumentMeta{}); got != 0 {
		t.Fatalf("pages changed without page counts = %d; want 0", got)
	}
}

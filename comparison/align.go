package comparison

// OpKind is the kind of an alignment operation
type OpKind string

const (
	OpEqual   OpKind = "equal"
	OpInsert  OpKind = "insert"
	OpDelete  OpKind = "delete"
	OpReplace OpKind = "replace"
)

// Range is a half-open interval of unit indices
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of units in the range
func (r Range) Len() int { return r.End - r.Start }

// Opcode is one step of the edit script turning A into B
type Opcode struct {
	Kind OpKind `json:"kind"`
	A    Range  `json:"a"`
	B    Range  `json:"b"`
}

type match struct{ a, b int }

// Align computes an edit script between a and b using normalized-text
// equality. The script is derived from a longest common subsequence found
// with Hirschberg's algorithm (linear space, quadratic time). Every gap
// between two matched runs becomes exactly one opcode, so interleaved
// insertions and deletions are reported as a single replace.
//
// The LCS is always computed in a canonical orientation of the pair, so
// Align(a, b) and Align(b, a) pick mirrored matchings even when several
// longest subsequences exist.
func Align(a, b []Unit) []Opcode {
	x, y := intern(a, b)
	if canonical(a, b) {
		return buildOpcodes(lcs(x, y), len(a), len(b))
	}
	pairs := lcs(y, x)
	for i := range pairs {
		pairs[i] = match{a: pairs[i].b, b: pairs[i].a}
	}
	return buildOpcodes(pairs, len(a), len(b))
}

// canonical reports whether (a, b) is already in canonical order: shorter
// sequence first, then lexicographic on normalized text.
func canonical(a, b []Unit) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i].Normalized != b[i].Normalized {
			return a[i].Normalized < b[i].Normalized
		}
	}
	return true
}

func lcs(a, b []int) []match {
	h := &hirschberg{a: a, b: b}
	h.solve(0, len(a), 0, len(b))
	return h.pairs
}

// intern maps normalized text to small integers so the LCS loops compare ints.
func intern(a, b []Unit) ([]int, []int) {
	ids := make(map[string]int, len(a)+len(b))
	conv := func(units []Unit) []int {
		out := make([]int, len(units))
		for i, u := range units {
			id, ok := ids[u.Normalized]
			if !ok {
				id = len(ids)
				ids[u.Normalized] = id
			}
			out[i] = id
		}
		return out
	}
	return conv(a), conv(b)
}

type hirschberg struct {
	a, b  []int
	pairs []match
}

// solve appends, in order, the matched index pairs of an LCS of a[a0:a1] and b[b0:b1].
func (h *hirschberg) solve(a0, a1, b0, b1 int) {
	for a0 < a1 && b0 < b1 && h.a[a0] == h.b[b0] {
		h.pairs = append(h.pairs, match{a0, b0})
		a0++
		b0++
	}
	tail := 0
	for a1-tail > a0 && b1-tail > b0 && h.a[a1-tail-1] == h.b[b1-tail-1] {
		tail++
	}
	a1 -= tail
	b1 -= tail

	switch {
	case a0 == a1 || b0 == b1:
	case a1-a0 == 1:
		for j := b0; j < b1; j++ {
			if h.b[j] == h.a[a0] {
				h.pairs = append(h.pairs, match{a0, j})
				break
			}
		}
	default:
		mid := a0 + (a1-a0)/2
		fwd := forwardRow(h.a[a0:mid], h.b[b0:b1])
		bwd := backwardRow(h.a[mid:a1], h.b[b0:b1])
		best, split := -1, 0
		for k := 0; k <= b1-b0; k++ {
			if s := fwd[k] + bwd[k]; s > best {
				best, split = s, k
			}
		}
		h.solve(a0, mid, b0, b0+split)
		h.solve(mid, a1, b0+split, b1)
	}

	for k := 0; k < tail; k++ {
		h.pairs = append(h.pairs, match{a1 + k, b1 + k})
	}
}

// forwardRow returns row[j] = LCS length of a and b[:j].
func forwardRow(a, b []int) []int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for _, x := range a {
		cur[0] = 0
		for j := 1; j <= len(b); j++ {
			if x == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev
}

// backwardRow returns row[j] = LCS length of a and b[j:].
func backwardRow(a, b []int) []int {
	n := len(b)
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	for i := len(a) - 1; i >= 0; i-- {
		cur[n] = 0
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				cur[j] = prev[j+1] + 1
			} else {
				cur[j] = max(prev[j], cur[j+1])
			}
		}
		prev, cur = cur, prev
	}
	return prev
}

func buildOpcodes(matches []match, m, n int) []Opcode {
	var ops []Opcode
	i, j := 0, 0
	for k := 0; k < len(matches); {
		first := matches[k]
		if op, ok := gap(i, first.a, j, first.b); ok {
			ops = append(ops, op)
		}
		end := k + 1
		for end < len(matches) && matches[end].a == matches[end-1].a+1 && matches[end].b == matches[end-1].b+1 {
			end++
		}
		run := end - k
		ops = append(ops, Opcode{
			Kind: OpEqual,
			A:    Range{first.a, first.a + run},
			B:    Range{first.b, first.b + run},
		})
		i, j = first.a+run, first.b+run
		k = end
	}
	if op, ok := gap(i, m, j, n); ok {
		ops = append(ops, op)
	}
	return ops
}

func gap(a0, a1, b0, b1 int) (Opcode, bool) {
	op := Opcode{A: Range{a0, a1}, B: Range{b0, b1}}
	switch {
	case a0 < a1 && b0 < b1:
		op.Kind = OpReplace
	case a0 < a1:
		op.Kind = OpDelete
	case b0 < b1:
		op.Kind = OpInsert
	default:
		return Opcode{}, false
	}
	return op, true
}

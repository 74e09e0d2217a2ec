package comparison

import "doccompare/types"

// Classifier turns an edit script into typed changes.
type Classifier struct {
	Pairer Pairer
	Inline bool // attach inline segments to modified changes
}

// NewClassifier returns a classifier using p for replace blocks, or
// PositionalPairer when p is nil.
func NewClassifier(p Pairer) *Classifier {
	if p == nil {
		p = PositionalPairer{}
	}
	return &Classifier{Pairer: p, Inline: true}
}

// Classify produces one change per unit pair (unchanged, modified) or per
// unpaired unit (added, removed), in script order.
func (c *Classifier) Classify(a, b []Unit, ops []Opcode) []types.Change {
	changes, _ := c.classify(a, b, ops)
	return changes
}

// span records which changes an opcode produced.
type span struct {
	op    Opcode
	first int
	count int
}

func (c *Classifier) classify(a, b []Unit, ops []Opcode) ([]types.Change, []span) {
	changes := make([]types.Change, 0, max(len(a), len(b)))
	spans := make([]span, 0, len(ops))

	for _, op := range ops {
		first := len(changes)
		switch op.Kind {
		case OpEqual:
			for k := 0; k < op.A.Len(); k++ {
				changes = append(changes, unchanged(a[op.A.Start+k], b[op.B.Start+k]))
			}
		case OpInsert:
			for _, u := range b[op.B.Start:op.B.End] {
				changes = append(changes, added(u))
			}
		case OpDelete:
			for _, u := range a[op.A.Start:op.A.End] {
				changes = append(changes, removed(u))
			}
		case OpReplace:
			for _, p := range c.pairer().Pair(a[op.A.Start:op.A.End], b[op.B.Start:op.B.End]) {
				switch {
				case p.A != nil && p.B != nil:
					changes = append(changes, c.modified(*p.A, *p.B))
				case p.A != nil:
					changes = append(changes, removed(*p.A))
				case p.B != nil:
					changes = append(changes, added(*p.B))
				}
			}
		}
		spans = append(spans, span{op: op, first: first, count: len(changes) - first})
	}

	return changes, spans
}

func (c *Classifier) pairer() Pairer {
	if c.Pairer == nil {
		return PositionalPairer{}
	}
	return c.Pairer
}

func (c *Classifier) modified(ua, ub Unit) types.Change {
	ch := paired(types.ChangeModified, ua, ub)
	ch.Renumbered = isRenumbered(ua, ub)
	if c.Inline {
		ch.Inline = InlineDiff(ua.Text, ub.Text)
	}
	return ch
}

func unchanged(ua, ub Unit) types.Change {
	return paired(types.ChangeUnchanged, ua, ub)
}

func paired(t types.ChangeType, ua, ub Unit) types.Change {
	return types.Change{
		Type:          t,
		AContent:      strPtr(ua.Text),
		BContent:      strPtr(ub.Text),
		AStructuralID: ua.StructuralID,
		BStructuralID: ub.StructuralID,
		ALine:         ua.Line,
		BLine:         ub.Line,
		ASection:      ua.Section,
		BSection:      ub.Section,
	}
}

func added(u Unit) types.Change {
	return types.Change{
		Type:          types.ChangeAdded,
		BContent:      strPtr(u.Text),
		BStructuralID: u.StructuralID,
		BLine:         u.Line,
		BSection:      u.Section,
	}
}

func removed(u Unit) types.Change {
	return types.Change{
		Type:          types.ChangeRemoved,
		AContent:      strPtr(u.Text),
		AStructuralID: u.StructuralID,
		ALine:         u.Line,
		ASection:      u.Section,
	}
}

func strPtr(s string) *string { return &s }

package comparison

import "doccompare/types"

// DefaultContextLines is the number of surrounding lines kept per hunk.
const DefaultContextLines = 3

func buildHunks(spans []span, a, b []Unit, contextLines int) []types.Hunk {
	hunks := make([]types.Hunk, 0)
	for _, sp := range spans {
		if sp.op.Kind == OpEqual {
			continue
		}
		h := types.Hunk{
			Kind:        string(sp.op.Kind),
			AStart:      sp.op.A.Start,
			AEnd:        sp.op.A.End,
			BStart:      sp.op.B.Start,
			BEnd:        sp.op.B.End,
			FirstChange: sp.first,
			ChangeCount: sp.count,
			Context: types.HunkContext{
				BeforeA: texts(a, sp.op.A.Start-contextLines, sp.op.A.Start),
				AfterA:  texts(a, sp.op.A.End, sp.op.A.End+contextLines),
				BeforeB: texts(b, sp.op.B.Start-contextLines, sp.op.B.Start),
				AfterB:  texts(b, sp.op.B.End, sp.op.B.End+contextLines),
			},
		}
		if sp.op.A.Len() > 0 {
			h.ALine = a[sp.op.A.Start].Line
		}
		if sp.op.B.Len() > 0 {
			h.BLine = b[sp.op.B.Start].Line
		}
		hunks = append(hunks, h)
	}
	return hunks
}

func texts(units []Unit, from, to int) []string {
	from = max(from, 0)
	to = min(to, len(units))
	out := make([]string, 0, max(to-from, 0))
	for i := from; i < to; i++ {
		out = append(out, units[i].Text)
	}
	return out
}

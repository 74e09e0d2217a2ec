package comparison

import (
	"doccompare/types"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// InlineDiff returns the character-level difference between two versions of
// a line, cleaned up so that segments fall on natural word boundaries.
func InlineDiff(a, b string) []types.InlineSegment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(a, b, false))

	segments := make([]types.InlineSegment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var op types.InlineOp
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = types.InlineInsert
		case diffmatchpatch.DiffDelete:
			op = types.InlineDelete
		default:
			op = types.InlineEqual
		}
		segments = append(segments, types.InlineSegment{Op: op, Text: d.Text})
	}
	return segments
}

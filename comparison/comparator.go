package comparison

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"doccompare/types"

	"github.com/google/uuid"
)

const (
	sampleHead = 2000
	sampleTail = 1000
)

// Options configures a Comparator. Zero values select the defaults.
type Options struct {
	Matchers     []HeadingMatcher
	Pairer       Pairer
	FoldCase     bool
	ContextLines int
	NoInline     bool
	Now          func() time.Time
}

// Comparator runs the full pipeline: segment, align, classify, aggregate.
// It holds no mutable state and is safe for concurrent use.
type Comparator struct {
	segmenter    *Segmenter
	classifier   *Classifier
	contextLines int
	now          func() time.Time
}

// New creates a Comparator
func New(opts Options) *Comparator {
	seg := NewSegmenter(opts.Matchers...)
	seg.FoldCase = opts.FoldCase

	cls := NewClassifier(opts.Pairer)
	cls.Inline = !opts.NoInline

	ctxLines := opts.ContextLines
	if ctxLines <= 0 {
		ctxLines = DefaultContextLines
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Comparator{
		segmenter:    seg,
		classifier:   cls,
		contextLines: ctxLines,
		now:          now,
	}
}

// Compare diffs doc1 against doc2. The result timestamp is taken before any
// work starts so that results order by start time.
func (c *Comparator) Compare(doc1, doc2 types.Document) (*types.ComparisonResult, error) {
	createdAt := c.now()

	a, err := c.segmenter.Segment(doc1.Text)
	if err != nil {
		return nil, fmt.Errorf("document1: %w", err)
	}
	b, err := c.segmenter.Segment(doc2.Text)
	if err != nil {
		return nil, fmt.Errorf("document2: %w", err)
	}

	ops := Align(a, b)
	changes, spans := c.classifier.classify(a, b, ops)
	hunks := buildHunks(spans, a, b, c.contextLines)

	meta1 := describe(doc1)
	meta2 := describe(doc2)

	stats := Aggregate(changes, a, b)
	stats.HunkCount = len(hunks)
	stats.CharCountA = meta1.Chars
	stats.CharCountB = meta2.Chars
	stats.PagesChanged = estimatePagesChanged(stats, meta1, meta2)

	return &types.ComparisonResult{
		ID:         uuid.NewString(),
		Document1:  meta1,
		Document2:  meta2,
		Changes:    changes,
		Statistics: stats,
		Hunks:      hunks,
		CreatedAt:  createdAt,
	}, nil
}

// describe fills the derived fields of a document's metadata.
func describe(doc types.Document) types.DocumentMeta {
	meta := doc.Meta
	if meta.Size == 0 {
		meta.Size = int64(len(doc.Text))
	}
	if doc.Text != "" {
		meta.Lines = strings.Count(doc.Text, "\n") + 1
	}
	meta.Chars = utf8.RuneCountInString(doc.Text)
	meta.Sample = sample(doc.Text)
	return meta
}

// sample keeps the head and tail of long texts for chat context.
func sample(text string) string {
	runes := []rune(text)
	if len(runes) <= sampleHead+sampleTail {
		return text
	}
	return string(runes[:sampleHead]) + "\n...\n" + string(runes[len(runes)-sampleTail:])
}

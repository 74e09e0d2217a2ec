package comparison

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidInput is returned when a document is not text.
var ErrInvalidInput = errors.New("invalid input")

// Unit is one comparable line of a document.
type Unit struct {
	Index        int    // position in the unit sequence
	Line         int    // 1-based line in the source text
	Text         string // trailing whitespace trimmed
	Normalized   string // equality key
	StructuralID string // set only on heading lines
	Section      string // id of the closest heading at or above this unit
}

// Segmenter splits raw text into units.
type Segmenter struct {
	Matchers []HeadingMatcher
	FoldCase bool
}

// NewSegmenter creates a segmenter with the given heading matchers, or the
// default chain when none are given.
func NewSegmenter(matchers ...HeadingMatcher) *Segmenter {
	if len(matchers) == 0 {
		matchers = DefaultHeadingMatchers()
	}
	return &Segmenter{Matchers: matchers}
}

// Segment splits text on line boundaries. Runs of blank lines collapse to a
// single blank unit; leading and trailing blank lines are dropped.
func (s *Segmenter) Segment(text string) ([]Unit, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}
	if strings.IndexByte(text, 0) >= 0 {
		return nil, fmt.Errorf("%w: text contains NUL bytes", ErrInvalidInput)
	}
	if text == "" {
		return []Unit{}, nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	units := make([]Unit, 0, len(lines))
	section := ""
	pendingBlank := 0

	for i, raw := range lines {
		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			if len(units) > 0 && pendingBlank == 0 {
				pendingBlank = i + 1
			}
			continue
		}
		if pendingBlank > 0 {
			units = append(units, Unit{Index: len(units), Line: pendingBlank, Section: section})
			pendingBlank = 0
		}

		u := Unit{
			Index:      len(units),
			Line:       i + 1,
			Text:       line,
			Normalized: s.normalize(line),
		}
		if id, ok := s.heading(strings.TrimSpace(line)); ok {
			u.StructuralID = id
			section = id
		}
		u.Section = section
		units = append(units, u)
	}

	return units, nil
}

func (s *Segmenter) normalize(line string) string {
	n := strings.Join(strings.Fields(line), " ")
	if s.FoldCase {
		n = strings.ToLower(n)
	}
	return n
}

func (s *Segmenter) heading(line string) (string, bool) {
	for _, m := range s.Matchers {
		if id, ok := m(line); ok {
			return id, true
		}
	}
	return "", false
}

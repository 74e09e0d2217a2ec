package comparison

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// HeadingMatcher inspects one trimmed line and returns the structural id it
// declares (e.g. "Article 5"), if any.
type HeadingMatcher func(line string) (string, bool)

var (
	articlePattern  = regexp.MustCompile(`^(?i:(art[ií]culo|article|art\.))\s*(\d+(?:\.\d+)*)`)
	chapterPattern  = regexp.MustCompile(`^(?i:(chapter|cap[ií]tulo))\s+([IVXLCDM]+|\d+)\b`)
	titlePattern    = regexp.MustCompile(`^(?i:(title|t[ií]tulo))\s+([IVXLCDM]+|\d+)\b`)
	sectionPattern  = regexp.MustCompile(`^(?i:(section|secci[oó]n|§))\s*(\d+(?:\.\d+)*)`)
	numberedPattern = regexp.MustCompile(`^(\d+(?:\.\d+)+)\.?\s+\p{Lu}`)
	itemPattern     = regexp.MustCompile(`^(\d+)\.\s+\p{Lu}`)
)

// KeywordMatcher builds a matcher from a pattern whose first group is a
// keyword and second group a number. The id is "<Keyword> <number>" with the
// keyword title-cased, so "ARTÍCULO 5" and "Artículo 5" share an id.
func KeywordMatcher(re *regexp.Regexp) HeadingMatcher {
	return func(line string) (string, bool) {
		m := re.FindStringSubmatch(line)
		if m == nil || len(m) < 3 {
			return "", false
		}
		return titleCase(m[1]) + " " + m[2], true
	}
}

// NumberedMatcher recognises numbered headings: multi-level ("3.1 Scope") and
// single-level with a trailing dot ("1. Definitions"). The heading text must
// start with an uppercase letter, which keeps amounts like "3.50 euros" and
// lower-case list items out.
func NumberedMatcher(line string) (string, bool) {
	if m := numberedPattern.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := itemPattern.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}

func titleCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return strings.ToUpper(string(r)) + strings.ToLower(word[size:])
}

// DefaultHeadingMatchers returns the built-in chain, in priority order.
func DefaultHeadingMatchers() []HeadingMatcher {
	return []HeadingMatcher{
		KeywordMatcher(articlePattern),
		KeywordMatcher(chapterPattern),
		KeywordMatcher(titlePattern),
		KeywordMatcher(sectionPattern),
		NumberedMatcher,
	}
}

// numberToken returns the trailing token of a structural id ("5" for "Article 5").
func numberToken(id string) string {
	if i := strings.LastIndexByte(id, ' '); i >= 0 {
		return id[i+1:]
	}
	return id
}

// maskNumber replaces the first token equal to the id's number with "#".
func maskNumber(text, id string) string {
	num := numberToken(id)
	fields := strings.Fields(text)
	for i, f := range fields {
		if strings.TrimRight(f, ".:-)º°ª") == num {
			fields[i] = "#"
			break
		}
	}
	return strings.Join(fields, " ")
}

// isRenumbered reports whether two headings differ only in their number.
func isRenumbered(a, b Unit) bool {
	if a.StructuralID == "" || b.StructuralID == "" || a.StructuralID == b.StructuralID {
		return false
	}
	return maskNumber(a.Normalized, a.StructuralID) == maskNumber(b.Normalized, b.StructuralID)
}

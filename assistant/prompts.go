package assistant

import (
	"fmt"
	"strings"

	"doccompare/types"
)

const (
	maxExplainedHunks = 20
	maxLinesPerSide   = 5
	maxModifiedLines  = 3
	contextTail       = 2
	maxChatHunks      = 30
)

func explainSystemPrompt(language string) string {
	return "You are an expert in analysing legal and regulatory documents. " +
		"Explain clearly and professionally the differences between two versions of a document, " +
		"especially changes to regulations and rules. Identify modified, added or removed articles " +
		"and explain the impact of those changes. Respond in " + language + "."
}

func chatSystemPrompt(language, context string) string {
	return "You are an assistant that answers questions about a comparison between two versions " +
		"of a document. Answer only from the comparison below; if the answer is not in it, say so. " +
		"Quote article or section numbers when relevant. Respond in " + language + ".\n\n" + context
}

// hunkChanges returns the changes a hunk points to, bounds-checked.
func hunkChanges(res *types.ComparisonResult, h types.Hunk) []types.Change {
	from := min(max(h.FirstChange, 0), len(res.Changes))
	to := min(from+max(h.ChangeCount, 0), len(res.Changes))
	return res.Changes[from:to]
}

func hunkLines(changes []types.Change) (before, after []string) {
	for _, ch := range changes {
		if ch.AContent != nil {
			before = append(before, *ch.AContent)
		}
		if ch.BContent != nil {
			after = append(after, *ch.BContent)
		}
	}
	return before, after
}

func writeLines(b *strings.Builder, prefix string, lines []string, limit int) {
	for i, l := range lines {
		if limit > 0 && i == limit {
			fmt.Fprintf(b, "  ... (%d more)\n", len(lines)-limit)
			return
		}
		fmt.Fprintf(b, "  %s %s\n", prefix, l)
	}
}

func hunkLabel(h types.Hunk) string {
	switch h.Kind {
	case "insert":
		return "added"
	case "delete":
		return "removed"
	default:
		return "modified"
	}
}

func writeStats(b *strings.Builder, res *types.ComparisonResult) {
	s := res.Statistics
	b.WriteString("Comparison statistics:\n")
	fmt.Fprintf(b, "- Document 1: %s (%d lines)\n", res.Document1.Name, s.TotalUnitsA)
	fmt.Fprintf(b, "- Document 2: %s (%d lines)\n", res.Document2.Name, s.TotalUnitsB)
	fmt.Fprintf(b, "- Differences: %d\n", s.HunkCount)
	fmt.Fprintf(b, "- Added lines: %d\n", s.AddedCount)
	fmt.Fprintf(b, "- Removed lines: %d\n", s.RemovedCount)
	fmt.Fprintf(b, "- Modified lines: %d\n", s.ModifiedCount)
	fmt.Fprintf(b, "- Similarity: %.2f%%\n", s.SimilarityRatio*100)
	if len(s.ChangedSections) > 0 {
		fmt.Fprintf(b, "- Sections touched: %s\n", strings.Join(s.ChangedSections, ", "))
	}
}

// writeHunk renders one difference. limit caps lines per side (0 = all).
func writeHunk(b *strings.Builder, res *types.ComparisonResult, h types.Hunk, limit int) {
	before, after := hunkLines(hunkChanges(res, h))
	switch hunkLabel(h) {
	case "added":
		b.WriteString("Added lines:\n")
		writeLines(b, "+", after, limit)
	case "removed":
		b.WriteString("Removed lines:\n")
		writeLines(b, "-", before, limit)
	default:
		modLimit := limit
		if limit > 0 {
			modLimit = maxModifiedLines
		}
		b.WriteString("Before:\n")
		writeLines(b, "-", before, modLimit)
		b.WriteString("After:\n")
		writeLines(b, "+", after, modLimit)
	}
}

func buildExplainPrompt(res *types.ComparisonResult) string {
	var b strings.Builder
	b.WriteString("Analyse the following differences between two documents (probably regulations or rules) ")
	b.WriteString("and give a detailed, professional explanation.\n\n")
	writeStats(&b, res)

	b.WriteString("\nDifferences found:\n")
	for i, h := range res.Hunks {
		if i == maxExplainedHunks {
			fmt.Fprintf(&b, "\n(%d more differences omitted)\n", len(res.Hunks)-maxExplainedHunks)
			break
		}
		fmt.Fprintf(&b, "\n--- Difference %d (%s) ---\n", i+1, hunkLabel(h))
		writeHunk(&b, res, h, maxLinesPerSide)
		if ctx := h.Context.BeforeA; len(ctx) > 0 {
			b.WriteString("Preceding context:\n")
			writeLines(&b, " ", ctx[max(len(ctx)-contextTail, 0):], 0)
		}
	}

	b.WriteString(`
Please provide:
1. An executive summary of the main changes
2. The articles, chapters or sections affected
3. The impact of each kind of change (added, removed, modified)
4. Which aspects need special attention
5. Possible inconsistencies or areas that need review

Format the answer clearly, using sections and bullet points where appropriate.
`)
	return b.String()
}

func buildHunkPrompt(res *types.ComparisonResult, h types.Hunk) string {
	var b strings.Builder
	b.WriteString("Analyse this specific difference between two regulatory documents:\n\n")
	fmt.Fprintf(&b, "Type of change: %s\n", hunkLabel(h))
	if h.ALine > 0 || h.BLine > 0 {
		fmt.Fprintf(&b, "Location: line %d in document 1, line %d in document 2\n", h.ALine, h.BLine)
	}
	b.WriteString("\n")
	writeHunk(&b, res, h, 0)

	if ctx := h.Context.BeforeA; len(ctx) > 0 {
		b.WriteString("\nContext (preceding lines):\n")
		writeLines(&b, " ", ctx, 0)
	}
	b.WriteString("\nExplain the meaning and the impact of this specific change in the context of a regulation or rule.")
	return b.String()
}

// buildChatContext summarises a comparison for the chat system prompt.
func buildChatContext(res *types.ComparisonResult) string {
	var b strings.Builder
	b.WriteString("COMPARISON CONTEXT\n\n")
	writeStats(&b, res)

	b.WriteString("\nDifferences:\n")
	for i, h := range res.Hunks {
		if i == maxChatHunks {
			fmt.Fprintf(&b, "\n(%d more differences omitted)\n", len(res.Hunks)-maxChatHunks)
			break
		}
		fmt.Fprintf(&b, "\n[%d] %s\n", i+1, hunkLabel(h))
		writeHunk(&b, res, h, maxLinesPerSide)
	}

	if res.Document1.Sample != "" {
		fmt.Fprintf(&b, "\nDOCUMENT 1 EXCERPT (%s):\n%s\n", res.Document1.Name, res.Document1.Sample)
	}
	if res.Document2.Sample != "" {
		fmt.Fprintf(&b, "\nDOCUMENT 2 EXCERPT (%s):\n%s\n", res.Document2.Name, res.Document2.Sample)
	}
	return b.String()
}

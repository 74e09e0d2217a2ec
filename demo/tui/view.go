package tui

import (
	"fmt"
	"strings"

	"doccompare/types"
)

const maxPreviewLines = 6

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Document Comparison"))
	b.WriteString("\n\n")

	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	if m.Result != nil {
		b.WriteString(m.formatSummary())
		b.WriteString("\n\n")

		if hunk, ok := m.selectedHunk(); ok {
			b.WriteString(BoxStyle.Render(m.formatHunk(hunk)))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(InfoStyle.Render(TextFooter))
	return b.String()
}

func (m Model) formatSummary() string {
	r := m.Result
	s := r.Statistics
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  vs  %s\n", r.Document1.Name, r.Document2.Name))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Similarity: %.1f%%  |  %d vs %d lines", s.SimilarityRatio*100, s.TotalUnitsA, s.TotalUnitsB)))
	b.WriteString("\n")
	b.WriteString(AddedStyle.Render(fmt.Sprintf("+%d added", s.AddedCount)))
	b.WriteString("  ")
	b.WriteString(RemovedStyle.Render(fmt.Sprintf("-%d removed", s.RemovedCount)))
	b.WriteString("  ")
	b.WriteString(ModifiedStyle.Render(fmt.Sprintf("~%d modified", s.ModifiedCount)))

	if len(s.ChangedSections) > 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Sections: " + strings.Join(s.ChangedSections, ", ")))
	}
	return b.String()
}

func (m Model) formatHunk(h types.Hunk) string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render(fmt.Sprintf("Difference %d of %d (%s)", m.Selected+1, len(m.Result.Hunks), h.Kind)))
	b.WriteString("\n\n")

	end := h.FirstChange + h.ChangeCount
	if end > len(m.Result.Changes) {
		end = len(m.Result.Changes)
	}
	shown := 0
	for _, ch := range m.Result.Changes[h.FirstChange:end] {
		if shown == maxPreviewLines {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("... %d more", end-h.FirstChange-shown)))
			b.WriteString("\n")
			break
		}
		b.WriteString(formatChange(ch))
		b.WriteString("\n")
		shown++
	}

	if text, ok := m.Explanation[m.Selected]; ok {
		b.WriteString("\n")
		b.WriteString(text)
	}
	return b.String()
}

func formatChange(ch types.Change) string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	switch ch.Type {
	case types.ChangeAdded:
		return AddedStyle.Render("+ " + deref(ch.BContent))
	case types.ChangeRemoved:
		return RemovedStyle.Render("- " + deref(ch.AContent))
	case types.ChangeModified:
		return RemovedStyle.Render("- "+deref(ch.AContent)) + "\n" + AddedStyle.Render("+ "+deref(ch.BContent))
	}
	return InfoStyle.Render("  " + deref(ch.AContent))
}

package comparison

import (
	"sort"
	"strings"

	"doccompare/types"
)

// Aggregate computes statistics from the classified changes and the two unit
// sequences. Totals come from the unit sequences, not the change count.
func Aggregate(changes []types.Change, a, b []Unit) types.Statistics {
	stats := types.Statistics{
		TotalUnitsA: len(a),
		TotalUnitsB: len(b),
		WordCountA:  wordCount(a),
		WordCountB:  wordCount(b),
	}

	seen := make(map[string]struct{})
	addSection := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		stats.ChangedSections = append(stats.ChangedSections, s)
	}

	for _, ch := range changes {
		switch ch.Type {
		case types.ChangeAdded:
			stats.AddedCount++
		case types.ChangeRemoved:
			stats.RemovedCount++
		case types.ChangeModified:
			stats.ModifiedCount++
		case types.ChangeUnchanged:
			stats.UnchangedCount++
			continue
		}
		addSection(ch.ASection)
		addSection(ch.BSection)
	}

	sort.Strings(stats.ChangedSections)
	stats.SimilarityRatio = similarity(stats.UnchangedCount, len(a), len(b))
	return stats
}

// similarity is unchanged / max(totalA, totalB), clamped to [0, 1].
func similarity(unchanged, totalA, totalB int) float64 {
	denom := max(totalA, totalB)
	if denom == 0 {
		return 1.0
	}
	r := float64(unchanged) / float64(denom)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

func wordCount(units []Unit) int {
	n := 0
	for _, u := range units {
		n += len(strings.Fields(u.Text))
	}
	return n
}

// estimatePagesChanged approximates how many pages the changes touch, from the
// number of changed lines and the average lines per page. Returns 0 when page
// counts are unknown or nothing changed.
func estimatePagesChanged(stats types.Statistics, doc1, doc2 types.DocumentMeta) int {
	maxPages := max(doc1.Pages, doc2.Pages)
	if maxPages == 0 {
		return 0
	}
	changed := stats.AddedCount + stats.RemovedCount + 2*stats.ModifiedCount
	if changed == 0 {
		return 0
	}
	avgLinesPerPage := float64(doc1.Lines+doc2.Lines) / 2 / float64(maxPages)
	if avgLinesPerPage < 1 {
		avgLinesPerPage = 1
	}
	return min(int(float64(changed)/avgLinesPerPage)+1, maxPages)
}

package tui

import (
	"time"

	"doccompare/types"
)

// Messages for the tea program (polling-based)

// ComparisonMsg is sent when the latest comparison has been fetched
type ComparisonMsg struct {
	Result *types.ComparisonResult
	Err    error
}

// HealthMsg carries the server's AI availability
type HealthMsg struct {
	AIAvailable bool
	Err         error
}

// ExplanationMsg carries the explanation of one difference
type ExplanationMsg struct {
	ResultID string
	Index    int
	Text     string
	Err      error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

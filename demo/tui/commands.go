package tui

import (
	"context"
	"time"

	"doccompare/demo/client"

	tea "github.com/charmbracelet/bubbletea"
)

const pollInterval = 2 * time.Second

// pollLatest fetches the latest comparison
func pollLatest(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		res, err := c.Latest(ctx)
		return ComparisonMsg{Result: res, Err: err}
	}
}

func checkHealth(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ok, err := c.Health(ctx)
		return HealthMsg{AIAvailable: ok, Err: err}
	}
}

// explainHunk asks the server to explain one difference. The reply is filed
// under the comparison the server actually explained.
func explainHunk(c *client.Client, resultID string, index int) tea.Cmd {
	return func() tea.Msg {
		explained, text, err := c.ExplainHunk(context.Background(), index)
		if err == nil {
			resultID = explained
		}
		return ExplanationMsg{ResultID: resultID, Index: index, Text: text, Err: err}
	}
}

// tickCmd creates a command that ticks for polling
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

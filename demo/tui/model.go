package tui

import (
	"fmt"

	"doccompare/demo/client"
	"doccompare/types"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateWaiting    State = "waiting"
	StateViewing    State = "viewing"
	StateExplaining State = "explaining"
	StateError      State = "error"
)

// Model is the viewer state (thin client over the HTTP API)
type Model struct {
	Client *client.Client

	State       State
	Result      *types.ComparisonResult
	Selected    int
	Explanation map[int]string
	AIAvailable bool
	Err         error

	Connected bool
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		Client:      client.NewClient(serverURL),
		State:       StateWaiting,
		Explanation: make(map[int]string),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		pollLatest(m.Client),
		checkHealth(m.Client),
		tickCmd(),
	)
}

// selectedHunk returns the hunk under the cursor, if any
func (m Model) selectedHunk() (types.Hunk, bool) {
	if m.Result == nil || m.Selected < 0 || m.Selected >= len(m.Result.Hunks) {
		return types.Hunk{}, false
	}
	return m.Result.Hunks[m.Selected], true
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	if !m.Connected {
		msg := "Not connected to server"
		if m.Err != nil {
			msg = fmt.Sprintf("%s: %v", msg, m.Err)
		}
		return ErrorStyle.Render(msg)
	}

	switch m.State {
	case StateWaiting:
		return InfoStyle.Render(TextWaiting)
	case StateViewing:
		if m.Result.Statistics.HunkCount == 0 {
			return HighlightStyle.Render("Documents are identical")
		}
		return StatusStyle.Render(fmt.Sprintf("%d differences", m.Result.Statistics.HunkCount))
	case StateExplaining:
		return StatusStyle.Render(TextExplainer)
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", errMsg))
	default:
		return ""
	}
}

package tui

import (
	"errors"

	"doccompare/demo/client"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollLatest(m.Client), tickCmd())
	case ComparisonMsg:
		return m.handleComparison(msg)
	case HealthMsg:
		if msg.Err == nil {
			m.AIAvailable = msg.AIAvailable
		}
		return m, nil
	case ExplanationMsg:
		return m.handleExplanation(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Result != nil && m.Selected < len(m.Result.Hunks)-1 {
			m.Selected++
		}
	case "r":
		return m, tea.Batch(pollLatest(m.Client), checkHealth(m.Client))
	case "e":
		if _, ok := m.selectedHunk(); !ok || m.State == StateExplaining {
			return m, nil
		}
		if !m.AIAvailable {
			m.Explanation[m.Selected] = TextNoAI
			return m, nil
		}
		m.State = StateExplaining
		return m, explainHunk(m.Client, m.Result.ID, m.Selected)
	}
	return m, nil
}

// handleComparison syncs the model with the server's latest comparison
func (m Model) handleComparison(msg ComparisonMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, client.ErrNoComparison) {
		m.Connected = true
		m.Err = nil
		m.Result = nil
		m.State = StateWaiting
		return m, nil
	}
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}

	m.Connected = true
	m.Err = nil
	if m.Result == nil || m.Result.ID != msg.Result.ID {
		m.Selected = 0
		m.Explanation = make(map[int]string)
	}
	m.Result = msg.Result
	if m.State != StateExplaining {
		m.State = StateViewing
	}
	return m, nil
}

// handleExplanation stores an explanation if it still belongs to the shown result
func (m Model) handleExplanation(msg ExplanationMsg) (tea.Model, tea.Cmd) {
	if m.State == StateExplaining {
		m.State = StateViewing
	}
	if m.Result == nil || m.Result.ID != msg.ResultID {
		return m, nil
	}
	if msg.Err != nil {
		m.Explanation[msg.Index] = "Error: " + msg.Err.Error()
		return m, nil
	}
	m.Explanation[msg.Index] = msg.Text
	return m, nil
}

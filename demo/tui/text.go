package tui

// UI Text Constants
const (
	TextWaiting   = "Waiting for a comparison. Upload two documents to POST /api/compare."
	TextFooter    = "↑/k ↓/j select difference | e explain | r refresh | q quit"
	TextNoAI      = "AI explanations are not configured on the server"
	TextExplainer = "Asking the assistant..."
)

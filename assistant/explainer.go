package assistant

import (
	"context"
	"errors"
	"fmt"

	"doccompare/observability"
	"doccompare/types"
)

// ErrHunkNotFound is returned for an out-of-range hunk index.
var ErrHunkNotFound = errors.New("difference not found")

const (
	explainTemperature  = 0.3
	explainMaxTokens    = 2000
	hunkExplainMaxToken = 1000
)

// Explainer generates natural-language explanations of a comparison
type Explainer struct {
	llm      LLM
	language string
}

// NewExplainer creates an explainer. llm may be nil; every call then
// returns ErrNotConfigured.
func NewExplainer(llm LLM, language string) *Explainer {
	if language == "" {
		language = "English"
	}
	return &Explainer{llm: llm, language: language}
}

// Available reports whether an LLM is configured
func (e *Explainer) Available() bool { return e != nil && e.llm != nil }

// Explain summarises the whole comparison
func (e *Explainer) Explain(ctx context.Context, res *types.ComparisonResult) (string, error) {
	if !e.Available() {
		return "", ErrNotConfigured
	}
	if len(res.Hunks) == 0 {
		return "The documents are identical; there are no differences to explain.", nil
	}

	out, err := e.llm.Complete(ctx, Request{
		System:      explainSystemPrompt(e.language),
		Messages:    []Message{{Role: RoleUser, Content: buildExplainPrompt(res)}},
		Temperature: explainTemperature,
		MaxTokens:   explainMaxTokens,
	})
	observability.RecordAssistant("explain", err)
	if err != nil {
		return "", fmt.Errorf("failed to generate explanation: %w", err)
	}
	return out, nil
}

// ExplainHunk explains one difference by its index in res.Hunks
func (e *Explainer) ExplainHunk(ctx context.Context, res *types.ComparisonResult, index int) (string, error) {
	if !e.Available() {
		return "", ErrNotConfigured
	}
	if index < 0 || index >= len(res.Hunks) {
		return "", fmt.Errorf("%w: index %d of %d", ErrHunkNotFound, index, len(res.Hunks))
	}

	out, err := e.llm.Complete(ctx, Request{
		System:      explainSystemPrompt(e.language),
		Messages:    []Message{{Role: RoleUser, Content: buildHunkPrompt(res, res.Hunks[index])}},
		Temperature: explainTemperature,
		MaxTokens:   hunkExplainMaxToken,
	})
	observability.RecordAssistant("explain_hunk", err)
	if err != nil {
		return "", fmt.Errorf("failed to explain difference %d: %w", index, err)
	}
	return out, nil
}

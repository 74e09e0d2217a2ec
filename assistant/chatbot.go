package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"doccompare/observability"
	"doccompare/types"
)

// ErrEmptyQuestion is returned when the question is blank.
var ErrEmptyQuestion = errors.New("question is empty")

const (
	chatTemperature = 0.2
	chatMaxTokens   = 1500
	maxHistory      = 20
	sentHistory     = 6
)

// Chatbot answers follow-up questions about the latest comparison. The
// conversation is tied to one result and restarts when a new one arrives.
type Chatbot struct {
	llm      LLM
	language string

	mu       sync.Mutex
	resultID string
	history  []Message
}

// NewChatbot creates a chatbot. llm may be nil; Ask then returns ErrNotConfigured.
func NewChatbot(llm LLM, language string) *Chatbot {
	if language == "" {
		language = "English"
	}
	return &Chatbot{llm: llm, language: language}
}

// Available reports whether an LLM is configured
func (c *Chatbot) Available() bool { return c != nil && c.llm != nil }

// Ask answers question using res as context
func (c *Chatbot) Ask(ctx context.Context, res *types.ComparisonResult, question string) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	c.mu.Lock()
	if c.resultID != res.ID {
		c.resultID = res.ID
		c.history = nil
	}
	recent := c.history[max(len(c.history)-sentHistory, 0):]
	msgs := make([]Message, 0, len(recent)+1)
	msgs = append(msgs, recent...)
	msgs = append(msgs, Message{Role: RoleUser, Content: question})
	c.mu.Unlock()

	answer, err := c.llm.Complete(ctx, Request{
		System:      chatSystemPrompt(c.language, buildChatContext(res)),
		Messages:    msgs,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	observability.RecordAssistant("chat", err)
	if err != nil {
		return "", fmt.Errorf("failed to answer question: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// a newer comparison may have replaced the conversation meanwhile
	if c.resultID == res.ID {
		c.history = append(c.history,
			Message{Role: RoleUser, Content: question},
			Message{Role: RoleAssistant, Content: answer},
		)
		if len(c.history) > maxHistory {
			c.history = c.history[len(c.history)-maxHistory:]
		}
	}
	return answer, nil
}

// Reset starts a fresh conversation for the given result. It is a no-op on a
// nil Chatbot.
func (c *Chatbot) Reset(resultID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resultID = resultID
	c.history = nil
}

// Clear drops the conversation history
func (c *Chatbot) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

// History returns a copy of the conversation so far
func (c *Chatbot) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message{}, c.history...)
}

package assistant

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned when no LLM provider has an API key.
var ErrNotConfigured = errors.New("no LLM provider configured")

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	requestTimeout = 90 * time.Second
)

// Message is one turn of a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a provider-neutral completion request
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// LLM abstracts a chat completion provider
type LLM interface {
	Complete(ctx context.Context, req Request) (string, error)
	ModelName() string
}

// Config selects the provider and models
type Config struct {
	CohereAPIKey string
	CohereModel  string
	OpenAIAPIKey string
	OpenAIModel  string
}

// NewDefaultLLM returns an LLM if configured. Cohere is preferred, then OpenAI.
// Returns nil when neither key is set.
func NewDefaultLLM(cfg Config) LLM {
	if cfg.CohereAPIKey != "" {
		model := cfg.CohereModel
		if model == "" {
			model = "command-r-plus"
		}
		// Force HTTP/1.1 to avoid HTTP/2 protocol errors
		httpClient := &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
				ForceAttemptHTTP2: false,
			},
		}
		client := cohereclient.NewClient(
			cohereclient.WithToken(cfg.CohereAPIKey),
			cohereclient.WithHTTPClient(httpClient),
		)
		return &CohereLLM{client: client, model: model}
	}

	if cfg.OpenAIAPIKey != "" {
		model := cfg.OpenAIModel
		if model == "" {
			model = "gpt-4o-mini"
		}
		return &OpenAILLM{client: openai.NewClient(cfg.OpenAIAPIKey), model: model}
	}
	return nil
}

// CohereLLM implements LLM using the Cohere chat API
type CohereLLM struct {
	client *cohereclient.Client
	model  string
}

func (c *CohereLLM) ModelName() string { return c.model }

func (c *CohereLLM) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", errors.New("cohere chat: no messages")
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	chatReq := &cohere.ChatRequest{
		Message: flattenConversation(req.Messages),
		Model:   &c.model,
	}
	if req.System != "" {
		chatReq.Preamble = &req.System
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		chatReq.Temperature = &temp
	}
	if req.MaxTokens > 0 {
		maxTokens := req.MaxTokens
		chatReq.MaxTokens = &maxTokens
	}

	resp, err := c.client.Chat(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}

// flattenConversation renders earlier turns as a transcript ahead of the
// final message, which is the one the model answers.
func flattenConversation(msgs []Message) string {
	if len(msgs) == 1 {
		return msgs[0].Content
	}
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, m := range msgs[:len(msgs)-1] {
		speaker := "User"
		if m.Role == RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
	}
	b.WriteString("\nCurrent question:\n")
	b.WriteString(msgs[len(msgs)-1].Content)
	return b.String()
}

// OpenAILLM implements LLM using the OpenAI chat completions API
type OpenAILLM struct {
	client *openai.Client
	model  string
}

func (o *OpenAILLM) ModelName() string { return o.model }

func (o *OpenAILLM) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

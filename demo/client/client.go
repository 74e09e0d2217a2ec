package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"doccompare/types"
)

// ErrNoComparison is returned when the server has no comparison yet
var ErrNoComparison = errors.New("no comparison yet")

// Client talks to the doccompare HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Latest fetches the most recent comparison
func (c *Client) Latest(ctx context.Context) (*types.ComparisonResult, error) {
	var res types.ComparisonResult
	if err := c.get(ctx, "/api/comparison/latest", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ExplainHunk asks the server to explain one difference of the latest
// comparison. It returns the id of the comparison the server explained, which
// may differ from the one shown if a new comparison landed meanwhile.
func (c *Client) ExplainHunk(ctx context.Context, index int) (resultID, text string, err error) {
	var body struct {
		ComparisonID string `json:"comparison_id"`
		Explanation  string `json:"explanation"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/comparison/latest/hunks/%d/explanation", index), &body); err != nil {
		return "", "", err
	}
	return body.ComparisonID, body.Explanation, nil
}

// Health reports whether AI features are available on the server
func (c *Client) Health(ctx context.Context) (aiAvailable bool, err error) {
	var body struct {
		AIAvailable bool `json:"ai_available"`
	}
	if err := c.get(ctx, "/api/health", &body); err != nil {
		return false, err
	}
	return body.AIAvailable, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return ErrNoComparison
	}
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

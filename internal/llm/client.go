// Package llm is the gateway to a remote chat-completion endpoint. A call
// either returns the model text or a tagged Fault; it never panics and the
// answer path never propagates the fault as a failure, so a flaky endpoint
// degrades to a visible error message instead of breaking the chat loop.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Client sends single synchronous completion requests. Streaming is
// disabled; the full response is awaited atomically.
type Client struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	client      *http.Client
	log         *slog.Logger
}

// Config configures the completion client.
type Config struct {
	BaseURL     string
	Model       string
	APIKeyEnv   string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewClient creates a completion client. A missing API token is logged as a
// warning rather than failing: an unauthorized response later surfaces
// through the normal fault path.
func NewClient(cfg Config, log *slog.Logger) *Client {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		log.Warn("API token not set; model requests will be unauthorized", "env", cfg.APIKeyEnv)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		apiKey:      key,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		client:      &http.Client{Timeout: timeout},
		log:         log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the model
// text. On failure the returned error is always a *Fault whose Error() is
// the message intended for display.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload, _ := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Stream:      false,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &Fault{Kind: FaultConnect, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.log.Warn("model request timed out", "timeout", c.timeout)
			return "", &Fault{Kind: FaultTimeout, Timeout: c.timeout, Err: err}
		}
		c.log.Warn("model request failed", "error", err)
		return "", &Fault{Kind: FaultConnect, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Fault{Kind: FaultConnect, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("model endpoint returned error status", "status", resp.StatusCode)
		return "", &Fault{Kind: FaultStatus, Status: resp.StatusCode, Body: snippet(body)}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err == nil &&
		len(out.Choices) > 0 && out.Choices[0].Message.Content != "" {
		return out.Choices[0].Message.Content, nil
	}
	// No extractable message content; hand back the raw body rather than
	// failing so the caller still has something to show.
	return string(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

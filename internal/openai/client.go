// Package openai is the completion gateway: one bounded network call per chat
// turn to an OpenAI-compatible chat-completions endpoint, with every failure
// explicitly classified so the caller can map it to the fallback contract.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/forgedash/trading-ai-proxy/internal/chat"
)

// ErrTimeout reports that the upstream call exceeded the configured deadline.
var ErrTimeout = errors.New("openai: request timed out")

// UpstreamError reports a non-200 response from the completion endpoint.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("openai: upstream status %d: %s", e.Status, e.Body)
}

// TransportError reports any dispatch or payload failure short of a
// well-formed HTTP response: connection errors, unreadable bodies, or a
// response body the gateway cannot interpret.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "openai: transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// Config carries the constant generation parameters. They are fixed per
// process, never per call.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client performs completion calls. It holds no conversation state.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a gateway client with the request timeout baked into its
// HTTP client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type completionRequest struct {
	Model       string         `json:"model"`
	Messages    []chat.Message `json:"messages"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the assembled message list and returns the raw assistant
// text from the first choice. Outcomes are classified, never coerced:
// non-200 → *UpstreamError, deadline exceeded → ErrTimeout, anything else
// before a usable payload → *TransportError.
func (c *Client) Complete(ctx context.Context, msgs []chat.Message) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.cfg.Model,
		Messages:    msgs,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", ErrTimeout
		}
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", ErrTimeout
		}
		return "", &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &TransportError{Err: fmt.Errorf("parse response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &TransportError{Err: errors.New("no completion returned")}
	}
	return parsed.Choices[0].Message.Content, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// CLAUDE:SUMMARY Chat-completions client for DeepSeek-compatible APIs with retry, linear backoff, and JSON mode.
// Package llmcall sends single prompts to a DeepSeek-compatible
// chat-completions endpoint and returns the raw completion text.
//
// Calls are synchronous and blocking. Each call runs with a fixed per-call
// timeout and an independent retry loop with linearly increasing backoff:
// timeouts wait 5s/10s/15s between attempts, other failures 3s/6s/9s.
//
// Usage:
//
//	client := llmcall.New(llmcall.Config{APIKey: key})
//	text, err := client.Call(ctx, prompt, llmcall.Options{JSONMode: true})
package llmcall

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Options control a single model call.
type Options struct {
	// MaxTokens caps the completion length. Default: 4000.
	MaxTokens int

	// Temperature for sampling. The zero value means the configured default
	// (0.1 — extraction wants determinism, not creativity).
	Temperature float64

	// JSONMode requests a strict JSON object response from the service
	// instead of free text.
	JSONMode bool
}

// Client talks to one chat-completions endpoint.
type Client struct {
	cfg    Config
	client *http.Client

	// backoffUnit scales the retry waits; tests shrink it.
	backoffUnit time.Duration
}

// New creates a Client with the given configuration.
func New(cfg Config) *Client {
	cfg.defaults()
	return &Client{
		cfg:         cfg,
		client:      &http.Client{Timeout: cfg.Timeout},
		backoffUnit: time.Second,
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Call sends one prompt and returns the completion text. It retries up to
// the configured attempt limit; after exhaustion the last error is returned.
func (c *Client) Call(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 4000
	}
	if opts.Temperature == 0 {
		opts.Temperature = c.cfg.Temperature
	}

	c.cfg.Logger.Debug("model call",
		"endpoint", c.cfg.Endpoint,
		"model", c.cfg.Model,
		"prompt_chars", len(prompt),
		"max_tokens", opts.MaxTokens,
		"json_mode", opts.JSONMode)

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			c.cfg.Logger.Warn("model call retry",
				"attempt", attempt+1, "max_attempts", c.cfg.MaxAttempts, "error", lastErr)
		}

		start := time.Now()
		text, err := c.do(ctx, prompt, opts)
		if err == nil {
			c.cfg.Logger.Debug("model call done",
				"elapsed", time.Since(start).Round(time.Millisecond),
				"response_chars", len(text))
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt == c.cfg.MaxAttempts-1 {
			break
		}

		// Timeouts back off harder than plain failures: 5s/10s/15s vs 3s/6s/9s.
		unit := 3 * c.backoffUnit
		if isTimeout(err) {
			unit = 5 * c.backoffUnit
		}
		wait := time.Duration(attempt+1) * unit
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("model call failed after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

func (c *Client) do(ctx context.Context, prompt string, opts Options) (string, error) {
	reqBody := chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	if opts.JSONMode {
		reqBody.ResponseFormat = &respFormat{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP POST %s: %w", c.cfg.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, c.cfg.Endpoint, string(respBody))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("API error (%s): %s", result.Error.Type, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	if result.Usage.TotalTokens > 0 {
		c.cfg.Logger.Debug("model usage",
			"prompt_tokens", result.Usage.PromptTokens,
			"completion_tokens", result.Usage.CompletionTokens,
			"total_tokens", result.Usage.TotalTokens,
			"finish_reason", result.Choices[0].FinishReason)
	}

	text := result.Choices[0].Message.Content
	if text == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

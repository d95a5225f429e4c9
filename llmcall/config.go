// CLAUDE:SUMMARY Configuration and defaults for the llmcall chat-completions client.
package llmcall

import (
	"log/slog"
	"time"
)

// Config configures a Client.
type Config struct {
	// Endpoint is the chat-completions URL.
	// Default: https://api.deepseek.com/v1/chat/completions.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model identifier sent with each request. Default: deepseek-chat.
	Model string `json:"model" yaml:"model"`

	// APIKey for bearer authentication.
	APIKey string `json:"-" yaml:"-"`

	// Timeout per HTTP call. Long documents need long completions.
	// Default: 120s.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxAttempts per Call. Default: 3.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// Temperature used when Options.Temperature is zero. Default: 0.1.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Logger for debug/warn messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Endpoint == "" {
		c.Endpoint = "https://api.deepseek.com/v1/chat/completions"
	}
	if c.Model == "" {
		c.Model = "deepseek-chat"
	}
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.Temperature == 0 {
		c.Temperature = 0.1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

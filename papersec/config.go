// CLAUDE:SUMMARY Configuration, defaults, and the model-caller interface for the papersec extractor.
package papersec

import (
	"context"
	"log/slog"

	"github.com/hazyhaar/papersec/llmcall"
)

// Caller sends one prompt to the external model service and returns the raw
// completion text. Satisfied by *llmcall.Client; tests substitute fakes.
type Caller interface {
	Call(ctx context.Context, prompt string, opts llmcall.Options) (string, error)
}

// Config configures an Extractor.
type Config struct {
	// Model is the external model client. Nil disables both bridges and the
	// extractor runs heuristic-only.
	Model Caller

	// ShortThreshold is the minimum stripped content length below which a
	// section counts as implausibly short. Default: 100.
	ShortThreshold int `json:"short_threshold" yaml:"short_threshold"`

	// MaxDocumentChars truncates documents sent to the extraction bridge.
	// Default: 100000.
	MaxDocumentChars int `json:"max_document_chars" yaml:"max_document_chars"`

	// FullTemplatePath and MissingTemplatePath override the embedded prompt
	// templates for the extraction bridge. A configured path that cannot be
	// read aborts only that bridge's attempt.
	FullTemplatePath    string `json:"full_template_path" yaml:"full_template_path"`
	MissingTemplatePath string `json:"missing_template_path" yaml:"missing_template_path"`

	// Logger for progress and warning messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.ShortThreshold <= 0 {
		c.ShortThreshold = 100
	}
	if c.MaxDocumentChars <= 0 {
		c.MaxDocumentChars = 100_000
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

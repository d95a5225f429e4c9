// CLAUDE:SUMMARY Configuration and defaults for document loading.
package docsource

import "log/slog"

// Config configures a Loader.
type Config struct {
	// MaxFileSize is the maximum input file size (default: 100 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 100 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

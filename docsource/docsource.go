// CLAUDE:SUMMARY Loads paper documents as Markdown: md/txt passthrough, sanitized HTML conversion.

// Package docsource turns input files into the Markdown text the section
// extractor works on. Markdown and plain text pass through unchanged; HTML
// is sanitized and converted.
package docsource

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Format identifies a supported input format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatHTML     Format = "html"
)

// ErrUnsupportedFormat reports a file extension the loader cannot handle.
var ErrUnsupportedFormat = fmt.Errorf("unsupported document format")

// Loader loads documents as Markdown.
type Loader struct {
	cfg    Config
	logger *slog.Logger
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// New returns a Loader with defaults applied.
func New(cfg Config) *Loader {
	cfg.defaults()
	return &Loader{
		cfg:    cfg,
		logger: cfg.Logger,
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		)),
	}
}

// Detect maps a file path to its format from the extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".txt":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads path and returns its content as Markdown.
func (l *Loader) Load(path string) (string, error) {
	format, err := Detect(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat document: %w", err)
	}
	if info.Size() > l.cfg.MaxFileSize {
		return "", fmt.Errorf("document too large: %d bytes (max %d)", info.Size(), l.cfg.MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	switch format {
	case FormatMarkdown, FormatText:
		return string(data), nil
	case FormatHTML:
		return l.convertHTML(string(data))
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// convertHTML sanitizes untrusted HTML and converts it to Markdown.
// Sanitization strips scripts and event handlers before conversion so the
// output never carries executable remnants into downstream prompts.
func (l *Loader) convertHTML(raw string) (string, error) {
	clean := l.policy.Sanitize(raw)
	md, err := l.conv.ConvertString(clean)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	l.logger.Debug("html converted", "html_bytes", len(raw), "markdown_bytes", len(md))
	return md, nil
}

// SupportedFormats lists the formats Load accepts.
func SupportedFormats() []string {
	return []string{string(FormatMarkdown), string(FormatText), string(FormatHTML)}
}

// CLAUDE:SUMMARY Full/partial extraction bridge: asks the model to extract whole sections and repairs the structured response.
package papersec

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hazyhaar/papersec/llmcall"
)

//go:embed templates/full_extraction.txt
var fullTemplate string

//go:embed templates/missing_extraction.txt
var missingTemplate string

const (
	placeholderContent = "{MARKDOWN_CONTENT}"
	placeholderTargets = "{TARGET_SECTIONS_LIST}"
)

// ErrTemplateMissing reports an unreadable prompt template override. It
// aborts only the requesting bridge, never the whole extraction.
var ErrTemplateMissing = errors.New("prompt template not found")

// requestModelSections asks the model for section content. targets nil
// means the full request shape (all five canonical sections); otherwise
// only the named sections are requested via the partial template.
//
// The response is untrusted: it runs through the repair ladder before use,
// and unknown or empty keys are discarded.
func (e *Extractor) requestModelSections(ctx context.Context, text string, targets []string) (map[string]string, error) {
	template, err := e.loadTemplate(targets == nil)
	if err != nil {
		return nil, err
	}

	if len(text) > e.cfg.MaxDocumentChars {
		e.logger.Warn("document exceeds model budget, truncating",
			"chars", len(text), "max_chars", e.cfg.MaxDocumentChars)
		text = truncateString(text, e.cfg.MaxDocumentChars)
	}

	prompt := strings.ReplaceAll(template, placeholderContent, text)
	if targets != nil {
		var list strings.Builder
		for _, name := range targets {
			fmt.Fprintf(&list, "- **%s**\n", name)
		}
		prompt = strings.ReplaceAll(prompt, placeholderTargets, strings.TrimRight(list.String(), "\n"))
	}

	response, err := e.cfg.Model.Call(ctx, prompt, llmcall.Options{
		MaxTokens: maxTokensFor(targets),
		JSONMode:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction bridge: %w", err)
	}

	payload, err := decodeSectionPayload(response)
	if err != nil {
		e.logger.Debug("unparseable extraction payload", "payload", truncateString(response, 500))
		return nil, err
	}

	sections := make(map[string]string, len(payload))
	var rdParts [2][]string // Results-like first, Discussion-like second
	for _, key := range sortedKeys(payload) {
		content := payload[key]
		name := normalizeSectionName(key)
		if name == "" {
			e.logger.Debug("discarding unknown section key", "key", key)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		// Separate Results and Discussion replies land under the combined
		// key, Results before Discussion.
		if name == SectionResultsDiscussion {
			lower := strings.ToLower(key)
			if strings.Contains(lower, "discussion") && !strings.Contains(lower, "result") {
				rdParts[1] = append(rdParts[1], content)
			} else {
				rdParts[0] = append(rdParts[0], content)
			}
			continue
		}
		if existing, ok := sections[name]; ok {
			sections[name] = existing + "\n\n" + content
		} else {
			sections[name] = content
		}
	}
	if combined := append(rdParts[0], rdParts[1]...); len(combined) > 0 {
		sections[SectionResultsDiscussion] = strings.Join(combined, "\n\n")
	}
	return sections, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Extractor) loadTemplate(full bool) (string, error) {
	path := e.cfg.MissingTemplatePath
	fallback := missingTemplate
	if full {
		path = e.cfg.FullTemplatePath
		fallback = fullTemplate
	}
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateMissing, path)
	}
	return string(data), nil
}

// maxTokensFor sizes the completion budget by how much is being requested:
// a single section can be very long, the full document needs the most.
func maxTokensFor(targets []string) int {
	switch {
	case targets == nil:
		return 16000
	case len(targets) == 1:
		return 8000
	case len(targets) <= 3:
		return 10000
	case len(targets) <= 5:
		return 12000
	default:
		return 16000
	}
}

// truncateString cuts s to at most max bytes without splitting a rune.
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

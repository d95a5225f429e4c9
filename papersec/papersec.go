// CLAUDE:SUMMARY Extractor entry point orchestrating heuristic pass, quality gate, and model bridges.

// Package papersec extracts the canonical sections of a scientific paper
// from its Markdown rendering.
//
// Extraction is staged: a fast pattern pass recognizes bilingual heading
// variants for Abstract, Introduction, Methods, Results & Discussion, and
// Conclusion; a quality gate then inspects the result and, when a model
// client is configured, escalates gaps to two model bridges — one that
// classifies unrecognized headings and one that asks for section content
// outright. Bridge failures degrade to the heuristic result; they never
// fail the extraction.
package papersec

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrEmptyDocument reports an input with no extractable content.
var ErrEmptyDocument = errors.New("empty document")

// Extractor extracts canonical paper sections from Markdown documents.
// Safe for concurrent use.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

// New returns an Extractor with defaults applied.
func New(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{cfg: cfg, logger: cfg.Logger}
}

// Extract runs the full pipeline over a Markdown document.
//
// The returned Result always carries the quality report of the heuristic
// pass, even when the bridges improved the map afterwards. An error is
// returned only for an empty document; model failures are logged and the
// best map produced so far is returned.
func (e *Extractor) Extract(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	sections, unrecognized := e.ExtractHeuristic(text)
	report := e.Assess(sections)
	result := &Result{
		Sections:     sections,
		Report:       report,
		Unrecognized: unrecognized,
	}

	if report.OverSegmented {
		e.logger.Warn("section map over-segmented", "sections", len(sections))
	}

	if !report.NeedsModel() {
		e.logger.Info("heuristic extraction complete", "sections", len(sections))
		return result, nil
	}

	if e.cfg.Model == nil {
		e.logger.Info("no model configured, returning heuristic result",
			"reasons", strings.Join(report.Reasons(), "; "))
		return result, nil
	}
	e.logger.Info("escalating to model", "reasons", strings.Join(report.Reasons(), "; "))

	lines := strings.Split(text, "\n")

	// Bridge 1: classify unrecognized headings. Only worthwhile when the
	// heuristic pass found something to anchor on, otherwise the cheaper
	// path is to ask for everything at once.
	if len(unrecognized) > 0 && len(sections) > 0 {
		if err := e.classifyUnrecognized(ctx, lines, sections, unrecognized); err != nil {
			e.logger.Warn("heading classification failed", "error", err)
		} else {
			result.Escalated = true
			if len(missingCritical(sections)) == 0 {
				// Classification closed every critical gap; remaining short
				// sections keep their heuristic content.
				e.logger.Info("classification filled all critical sections",
					"sections", len(sections))
				return result, nil
			}
		}
	}

	targets := e.extractionTargets(sections)
	if targets != nil && len(targets) == 0 {
		// Classification filled every gap; nothing left to request.
		return result, nil
	}

	modelSections, err := e.requestModelSections(ctx, text, targets)
	if err != nil {
		e.logger.Warn("model extraction failed", "error", err)
		return result, nil
	}
	result.Escalated = true

	merged := e.mergeModelSections(sections, modelSections)
	e.logger.Info("model sections merged",
		"received", len(modelSections), "applied", merged, "total", len(sections))
	return result, nil
}

// extractionTargets decides the shape of the extraction bridge request:
// nil means the full five-section request, a non-empty slice requests only
// the named sections, and an empty non-nil slice means nothing is needed.
func (e *Extractor) extractionTargets(sections SectionMap) []string {
	if len(sections) == 0 {
		return nil
	}
	targets := missingCritical(sections)
	for _, name := range CanonicalSections {
		content, ok := sections[name]
		if ok && len(strings.TrimSpace(content)) < e.cfg.ShortThreshold {
			targets = append(targets, name)
		}
	}
	if targets == nil {
		return []string{}
	}
	return targets
}

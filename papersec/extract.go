// CLAUDE:SUMMARY Heuristic extractor: first-pass section map plus unrecognized top-level heading collection.
package papersec

import (
	"regexp"
	"strings"
)

// ExtractHeuristic runs the pattern pass over the document and returns the
// heuristic section map plus every top-level heading that matched neither a
// canonical section nor an exclusion category.
//
// Only the first occurrence of each category is taken; later duplicates
// (e.g. a second-language rendering of the same paper) are ignored. A
// category with no match is simply absent — that is a gap for the quality
// assessor, not an error.
func (e *Extractor) ExtractHeuristic(text string) (SectionMap, []Heading) {
	lines := strings.Split(text, "\n")
	sections := make(SectionMap)

	for _, cat := range canonicalCategories {
		start := -1
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if matchesAny(trimmed, cat.patterns) {
				start = i
				break
			}
		}
		if start == -1 {
			e.logger.Debug("section not found", "section", cat.name)
			continue
		}

		trimmed := strings.TrimSpace(lines[start])
		level := HeadingLevel(trimmed)
		if level == 0 {
			// Markerless match (bare "Abstract:" form) counts as top level.
			level = 1
		}

		end := resolveEnd(lines, start, level, cat.name)
		sections[cat.name] = strings.Join(lines[start:end], "\n")
		e.logger.Debug("section found",
			"section", cat.name, "heading", trimmed, "start", start, "end", end)
	}

	mergeResultsDiscussion(sections)

	var unrecognized []Heading
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !headingMarkerRe.MatchString(trimmed) {
			continue
		}
		if HeadingLevel(trimmed) != 1 {
			continue
		}
		if MatchCanonical(trimmed) != "" || MatchExclusion(trimmed) {
			continue
		}
		unrecognized = append(unrecognized, Heading{Index: i, Text: trimmed, Level: 1})
	}
	if len(unrecognized) > 0 {
		e.logger.Debug("unrecognized top-level headings", "count", len(unrecognized))
	}

	return sections, unrecognized
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, pat := range patterns {
		if pat.MatchString(line) {
			return true
		}
	}
	return false
}

// mergeResultsDiscussion folds independently matched Results and Discussion
// entries into the single "Results & Discussion" key, Results first,
// separated by a blank line.
func mergeResultsDiscussion(m SectionMap) {
	res, hasRes := m[categoryResults]
	dis, hasDis := m[categoryDiscussion]
	if !hasRes && !hasDis {
		return
	}
	delete(m, categoryResults)
	delete(m, categoryDiscussion)

	var parts []string
	if existing, ok := m[SectionResultsDiscussion]; ok {
		parts = append(parts, existing)
	}
	if hasRes {
		parts = append(parts, res)
	}
	if hasDis {
		parts = append(parts, dis)
	}
	m[SectionResultsDiscussion] = strings.Join(parts, "\n\n")
}

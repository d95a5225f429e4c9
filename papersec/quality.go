// CLAUDE:SUMMARY Quality gate deciding whether the heuristic section map needs model assistance.
package papersec

import "strings"

// Assess inspects a heuristic section map and reports what is wrong with
// it. The report's NeedsModel method decides escalation.
func (e *Extractor) Assess(sections SectionMap) QualityReport {
	report := QualityReport{
		Empty: len(sections) == 0,
	}
	if report.Empty {
		return report
	}

	report.MissingCritical = missingCritical(sections)

	for _, name := range CanonicalSections {
		content, ok := sections[name]
		if !ok {
			continue
		}
		if len(strings.TrimSpace(content)) < e.cfg.ShortThreshold {
			report.ShortSections = append(report.ShortSections, name)
		}
	}

	// Over-segmentation (>8) can only happen on maps that picked up
	// non-canonical keys; it is advisory and never escalates on its own.
	report.CountAnomaly = len(sections) < 2
	report.OverSegmented = len(sections) > 8

	return report
}

// missingCritical returns the canonical names absent from the map, in
// reading order.
func missingCritical(sections SectionMap) []string {
	var missing []string
	for _, name := range CanonicalSections {
		if _, ok := sections[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

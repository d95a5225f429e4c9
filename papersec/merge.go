// CLAUDE:SUMMARY Merge policy folding model-provided sections into the heuristic map.
package papersec

import "strings"

// mergeModelSections folds model-provided content into the section map and
// returns how many entries were applied.
//
// Heuristic content wins by default: a model section only replaces an
// existing entry when the heuristic one is implausibly short and the model
// one is not. Absent sections are always filled.
func (e *Extractor) mergeModelSections(sections SectionMap, model map[string]string) int {
	applied := 0
	for _, name := range CanonicalSections {
		content, ok := model[name]
		if !ok || strings.TrimSpace(content) == "" {
			continue
		}

		existing, present := sections[name]
		if !present {
			sections[name] = content
			applied++
			e.logger.Info("section filled from model", "section", name)
			continue
		}

		existingLen := len(strings.TrimSpace(existing))
		modelLen := len(strings.TrimSpace(content))
		if existingLen < e.cfg.ShortThreshold && modelLen >= e.cfg.ShortThreshold {
			sections[name] = content
			applied++
			e.logger.Info("short section replaced from model",
				"section", name, "old_len", existingLen, "new_len", modelLen)
			continue
		}

		e.logger.Debug("keeping heuristic section", "section", name)
	}
	return applied
}

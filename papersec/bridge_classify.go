// CLAUDE:SUMMARY Classification bridge: model-assisted categorization of unrecognized headings, folded back into the map.
package papersec

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hazyhaar/papersec/llmcall"
)

const classifyMaxTokens = 500

// classifyUnrecognized asks the model to assign each unrecognized top-level
// heading to the closed taxonomy, then re-resolves boundaries and folds the
// classified content into the section map. Content reclassified into an
// existing category is prepended: the unrecognized headings usually sit
// earlier in the document than the heuristically found ones.
func (e *Extractor) classifyUnrecognized(ctx context.Context, lines []string, sections SectionMap, headings []Heading) error {
	if len(headings) == 0 {
		return nil
	}

	prompt := buildClassificationPrompt(headings)
	response, err := e.cfg.Model.Call(ctx, prompt, llmcall.Options{
		MaxTokens: classifyMaxTokens,
		JSONMode:  true,
	})
	if err != nil {
		return fmt.Errorf("classify headings: %w", err)
	}

	var classification map[string]string
	if err := json.Unmarshal([]byte(stripCodeFence(strings.TrimSpace(response))), &classification); err != nil {
		return fmt.Errorf("%w: classification: %v", ErrResponseMalformed, err)
	}

	// Map 1-based indices back to headings, dropping Unknown and anything
	// outside the taxonomy.
	groups := make(map[string][]Heading)
	for i, h := range headings {
		category, ok := classification[strconv.Itoa(i+1)]
		if !ok || category == "Unknown" {
			continue
		}
		name := normalizeSectionName(category)
		if name == "" {
			continue
		}
		groups[name] = append(groups[name], h)
		e.logger.Debug("heading classified", "heading", h.Text, "category", name)
	}

	for _, name := range CanonicalSections {
		group, ok := groups[name]
		if !ok {
			continue
		}
		sort.Slice(group, func(a, b int) bool { return group[a].Index < group[b].Index })

		var parts []string
		for _, h := range group {
			end := resolveEnd(lines, h.Index, h.Level, "")
			parts = append(parts, strings.Join(lines[h.Index:end], "\n"))
		}
		content := strings.Join(parts, "\n\n")

		if existing, exists := sections[name]; exists {
			sections[name] = content + "\n\n" + existing
			e.logger.Info("classified content merged into existing section",
				"section", name, "fragments", len(parts))
		} else {
			sections[name] = content
			e.logger.Info("section recovered by heading classification",
				"section", name, "fragments", len(parts))
		}
	}
	return nil
}

// buildClassificationPrompt enumerates the unrecognized headings (1-indexed)
// with the closed taxonomy and its disambiguation rules.
func buildClassificationPrompt(headings []Heading) string {
	var list strings.Builder
	for i, h := range headings {
		fmt.Fprintf(&list, "%d. %s\n", i+1, h.Text)
	}

	return `You are an expert in analyzing research paper structures.

I have extracted some section headers from a research paper, but I cannot determine which standard section type they belong to.

Please classify each header into ONE of these standard section types:
- Abstract
- Introduction (background, motivation, related work, literature review, preliminaries, problem statement, objectives, context, scope, theoretical background)
- Methods (methodology, experimental setup, materials, model, modelling, algorithm, classification, formulation, approach, framework, implementation, design, architecture, simulation, numerical methods, data collection, procedures, computational methods, proposed method, system design)
- Results (findings, evaluation, experiments, verification, validation, performance, comparison, analysis, data analysis, experimental results, simulation results, numerical results, observations, benchmarking, case study, application)
- Discussion (analysis, interpretation, implications, comparative analysis)
- Conclusion (summary, future work, concluding remarks, outlook, perspectives, contributions, final remarks)

**Important classification rules**:
1. **Paper title** (usually the first header) → "Unknown"
2. **Article Info**, **Nomenclature**, **Acknowledgements**, **References**, **Appendix**, **Funding**, **Ethics** → "Unknown"
3. **Classification**, **Modelling**, **Model**, **Algorithm**, **Framework**, **Formulation**, **Implementation**, **Design**, **Simulation**, **Proposed Method** → "Methods"
4. **Verification**, **Validation**, **Evaluation**, **Comparison**, **Experiments**, **Performance**, **Benchmark**, **Case Study**, **Application** → "Results"
5. **Analysis**, **Interpretation**, **Implications** → "Discussion" (but "Data Analysis" → "Results")
6. **Summary**, **Future Work**, **Outlook**, **Perspectives**, **Contributions** → "Conclusion"
7. If a header contains numbered sections (e.g., "2. Classification", "3. Modelling"), classify based on the content, not the number
8. If uncertain, use "Unknown"

Headers to classify:
` + list.String() + `
Return ONLY a JSON object mapping each header number to its section type.

Example output format:
{
  "1": "Unknown",
  "2": "Methods",
  "3": "Methods",
  "4": "Results"
}

Your response (JSON only):`
}

// CLAUDE:SUMMARY Section map, heading, quality report, and result types for paper section extraction.
package papersec

import "strings"

// Canonical section names. These five are the only keys a final SectionMap
// can hold.
const (
	SectionAbstract          = "Abstract"
	SectionIntroduction      = "Introduction"
	SectionMethods           = "Methods"
	SectionResultsDiscussion = "Results & Discussion"
	SectionConclusion        = "Conclusion"
)

// Internal matching categories. Results and Discussion are matched
// independently and merged into SectionResultsDiscussion afterwards.
const (
	categoryResults    = "Results"
	categoryDiscussion = "Discussion"
)

// CanonicalSections lists the five target sections in reading order.
var CanonicalSections = []string{
	SectionAbstract,
	SectionIntroduction,
	SectionMethods,
	SectionResultsDiscussion,
	SectionConclusion,
}

// SectionMap maps a canonical section name to its extracted text.
// Content always begins with the section's own heading line.
type SectionMap map[string]string

// Heading is a document line recognized as a heading.
type Heading struct {
	Index int    `json:"index"` // 0-based line position
	Text  string `json:"text"`  // trimmed line text
	Level int    `json:"level"` // nesting level, >= 1
}

// QualityReport summarizes a heuristic section map. Escalation to the model
// bridges is required whenever NeedsModel reports true.
type QualityReport struct {
	Empty           bool     `json:"empty"`
	MissingCritical []string `json:"missing_critical,omitempty"`
	ShortSections   []string `json:"short_sections,omitempty"`
	CountAnomaly    bool     `json:"count_anomaly"`
	OverSegmented   bool     `json:"over_segmented"` // advisory only
}

// NeedsModel reports whether model assistance is required.
// Over-segmentation alone never escalates.
func (r *QualityReport) NeedsModel() bool {
	return r.Empty || len(r.MissingCritical) > 0 || len(r.ShortSections) > 0 || r.CountAnomaly
}

// Reasons returns human-readable escalation reasons, empty when none.
func (r *QualityReport) Reasons() []string {
	var reasons []string
	if r.Empty {
		reasons = append(reasons, "no sections extracted")
	}
	if len(r.MissingCritical) > 0 {
		reasons = append(reasons, "missing critical sections: "+strings.Join(r.MissingCritical, ", "))
	}
	if len(r.ShortSections) > 0 {
		reasons = append(reasons, "sections below minimum length: "+strings.Join(r.ShortSections, ", "))
	}
	if r.CountAnomaly {
		reasons = append(reasons, "fewer than 2 sections extracted")
	}
	return reasons
}

// Result is the outcome of one extraction.
type Result struct {
	// Sections holds the final section map after all stages.
	Sections SectionMap `json:"sections"`

	// Report is the quality assessment of the heuristic pass, before any
	// model bridge ran.
	Report QualityReport `json:"report"`

	// Unrecognized lists top-level headings matching neither canonical nor
	// exclusion patterns.
	Unrecognized []Heading `json:"unrecognized,omitempty"`

	// Escalated is true when at least one model bridge contributed.
	Escalated bool `json:"escalated"`
}

// normalizeSectionName maps a model-supplied section name onto one of the
// five canonical names, or "" when it is none of them.
func normalizeSectionName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "abstract":
		return SectionAbstract
	case "introduction":
		return SectionIntroduction
	case "methods", "method", "methodology", "experimental", "materials and methods":
		return SectionMethods
	case "results", "result", "discussion", "discussions",
		"results and discussion", "results & discussion":
		return SectionResultsDiscussion
	case "conclusion", "conclusions", "concluding remarks", "summary and conclusions":
		return SectionConclusion
	}
	return ""
}

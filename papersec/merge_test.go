package papersec

import (
	"strings"
	"testing"
)

func TestMergeModelSections_FillsAbsent(t *testing.T) {
	e := New(Config{})
	sections := SectionMap{SectionAbstract: strings.Repeat("a", 200)}
	model := map[string]string{SectionMethods: strings.Repeat("m", 200)}

	applied := e.mergeModelSections(sections, model)
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if sections[SectionMethods] != model[SectionMethods] {
		t.Error("absent section not filled")
	}
}

func TestMergeModelSections_HeuristicWins(t *testing.T) {
	// WHAT: Plausible heuristic content is never replaced.
	// WHY: The heuristic extracts verbatim; the model may paraphrase.
	heuristic := strings.Repeat("h", 200)
	e := New(Config{})
	sections := SectionMap{SectionMethods: heuristic}
	model := map[string]string{SectionMethods: strings.Repeat("m", 500)}

	applied := e.mergeModelSections(sections, model)
	if applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}
	if sections[SectionMethods] != heuristic {
		t.Error("heuristic content was replaced")
	}
}

func TestMergeModelSections_ShortReplacedByLong(t *testing.T) {
	// WHAT: A short heuristic entry is replaced by plausible model content.
	e := New(Config{})
	sections := SectionMap{SectionMethods: "# 2. Methods"}
	model := map[string]string{SectionMethods: strings.Repeat("m", 500)}

	applied := e.mergeModelSections(sections, model)
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if sections[SectionMethods] != model[SectionMethods] {
		t.Error("short section not replaced")
	}
}

func TestMergeModelSections_ShortNotReplacedByShort(t *testing.T) {
	// WHAT: A short model answer never replaces anything.
	e := New(Config{})
	sections := SectionMap{SectionMethods: "# 2. Methods"}
	model := map[string]string{SectionMethods: "tiny"}

	applied := e.mergeModelSections(sections, model)
	if applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}
	if sections[SectionMethods] != "# 2. Methods" {
		t.Error("short heuristic replaced by short model content")
	}
}

func TestMergeModelSections_EmptyModelContentIgnored(t *testing.T) {
	e := New(Config{})
	sections := SectionMap{}
	model := map[string]string{SectionMethods: "   \n  "}

	if applied := e.mergeModelSections(sections, model); applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}
	if _, ok := sections[SectionMethods]; ok {
		t.Error("whitespace-only content must not be merged")
	}
}

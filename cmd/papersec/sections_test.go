package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/papersec/papersec"
)

func TestWriteSections(t *testing.T) {
	dir := t.TempDir()
	sections := papersec.SectionMap{
		papersec.SectionAbstract: "# Abstract\ntext",
		papersec.SectionMethods:  "# 2. Methods\nmore text",
	}

	written, err := writeSections(dir, sections)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Abstract.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Abstract") {
		t.Errorf("abstract file = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "Methods.md")); err != nil {
		t.Errorf("methods file: %v", err)
	}
	// Absent sections produce no file.
	if _, err := os.Stat(filepath.Join(dir, "Conclusion.md")); err == nil {
		t.Error("conclusion file must not exist")
	}
}

func TestOrderFragments_SingleFragmentUntouched(t *testing.T) {
	content := "# 2. Methods\nbody line\nmore body"
	if got := orderFragments(content); got != content {
		t.Errorf("single fragment altered: %q", got)
	}
}

func TestOrderFragments_ReordersByHeadingNumber(t *testing.T) {
	// WHAT: Fragments assembled out of document order are sorted by their
	// leading heading number and separated by a rule.
	// WHY: Reclassified headings are folded in by category, not position.
	content := "# 4. Discussion\ninterpretation\n# 3. Results\ndata"
	got := orderFragments(content)

	resIdx := strings.Index(got, "# 3. Results")
	disIdx := strings.Index(got, "# 4. Discussion")
	if resIdx < 0 || disIdx < 0 || resIdx > disIdx {
		t.Errorf("order wrong in %q", got)
	}
	if !strings.Contains(got, "\n\n---\n\n") {
		t.Errorf("missing separator in %q", got)
	}
}

func TestFixRelativePaths(t *testing.T) {
	// WHAT: Figure and table links are rewritten for files one level below
	// the source document.
	in := "See ![sheath](Figure/f1.png), ![zoom](./Figure/f2.png) and ![data](Tables/t1.png)."
	got := fixRelativePaths(in)
	if !strings.Contains(got, "](../Figure/f1.png)") {
		t.Errorf("bare path not fixed: %q", got)
	}
	if !strings.Contains(got, "](../Figure/f2.png)") {
		t.Errorf("dotted path not fixed: %q", got)
	}
	if !strings.Contains(got, "](../Tables/t1.png)") {
		t.Errorf("table path not fixed: %q", got)
	}
	if strings.Contains(got, "](Figure/") || strings.Contains(got, "](./Figure/") {
		t.Errorf("unfixed link remains: %q", got)
	}
}

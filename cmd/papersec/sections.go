// CLAUDE:SUMMARY Writes extracted sections to per-section Markdown files with stable names and fixed asset paths.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hazyhaar/papersec/papersec"
)

// sectionFiles maps canonical names to their output filenames.
var sectionFiles = map[string]string{
	papersec.SectionAbstract:          "Abstract.md",
	papersec.SectionIntroduction:      "Introduction.md",
	papersec.SectionMethods:           "Methods.md",
	papersec.SectionResultsDiscussion: "Results & Discussion.md",
	papersec.SectionConclusion:        "Conclusion.md",
}

// writeSections writes each extracted section into dir, one file per
// canonical section. Returns the paths written.
func writeSections(dir string, sections papersec.SectionMap) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, name := range papersec.CanonicalSections {
		content, ok := sections[name]
		if !ok {
			continue
		}
		content = orderFragments(content)
		content = fixRelativePaths(content)

		path := filepath.Join(dir, sectionFiles[name])
		if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

var fragmentNumRe = regexp.MustCompile(`^#\s*(\d+)`)

// orderFragments reorders a section assembled from several document
// fragments (merged Results + Discussion, reclassified headings) by each
// fragment's leading heading number and joins them with a rule. A section
// with a single fragment passes through untouched.
func orderFragments(content string) string {
	lines := strings.Split(content, "\n")
	var fragments [][]string
	var current []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "# ") && len(current) > 0 {
			fragments = append(fragments, current)
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		fragments = append(fragments, current)
	}
	if len(fragments) <= 1 {
		return content
	}

	num := func(frag []string) int {
		m := fragmentNumRe.FindStringSubmatch(strings.TrimSpace(frag[0]))
		if m == nil {
			return 1 << 30 // unnumbered fragments keep their relative position at the end
		}
		n, _ := strconv.Atoi(m[1])
		return n
	}
	sort.SliceStable(fragments, func(a, b int) bool {
		return num(fragments[a]) < num(fragments[b])
	})

	parts := make([]string, len(fragments))
	for i, frag := range fragments {
		parts[i] = strings.TrimRight(strings.Join(frag, "\n"), "\n")
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// fixRelativePaths rewrites figure and table links for section files that
// live one directory below the converted document.
func fixRelativePaths(content string) string {
	for _, dir := range []string{"Figure", "Tables"} {
		content = strings.ReplaceAll(content, "](./"+dir+"/", "](../"+dir+"/")
		content = strings.ReplaceAll(content, "]("+dir+"/", "](../"+dir+"/")
	}
	return content
}

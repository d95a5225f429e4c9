// CLAUDE:SUMMARY Pure heading classifier: nesting level inference plus canonical/exclusion pattern dispatch.
package papersec

import (
	"regexp"
	"strings"
)

var (
	// headingMarkerRe recognizes ATX heading lines.
	headingMarkerRe = regexp.MustCompile(`^#+\s`)

	// numberingRe finds a numbering prefix like "2", "3.1" or "4．2．1"
	// followed by a dot and a separator or letter. Matching anywhere in the
	// line tolerates decorations before the numbering.
	numberingRe = regexp.MustCompile(`(\d+(?:[.．]\d+)*)[.．](?:\s|[A-Za-z])`)

	// numberedHeadingRe recognizes a heading that starts with a bare number,
	// with or without a trailing dot ("# 3. Title", "# 3 Title").
	numberedHeadingRe = regexp.MustCompile(`^#+\s*\d+[.．]?\s`)

	markerCaptureRe = regexp.MustCompile(`^(#+)\s`)
)

// HeadingLevel reports the nesting level of a line, or 0 when the line is
// not a heading. Numbering depth wins over marker depth: "## 3.2 Title" is
// level 2 because of the "3.2", not because of the "##".
func HeadingLevel(line string) int {
	if m := numberingRe.FindStringSubmatch(line); m != nil {
		numbering := strings.ReplaceAll(m[1], "．", ".")
		return strings.Count(numbering, ".") + 1
	}
	if m := markerCaptureRe.FindStringSubmatch(line); m != nil {
		return len(m[1])
	}
	return 0
}

// MatchCanonical returns the matching category name for a heading line, or
// "" when it matches no canonical section. First category with any matching
// pattern wins.
func MatchCanonical(line string) string {
	line = strings.TrimSpace(line)
	for _, cat := range canonicalCategories {
		for _, pat := range cat.patterns {
			if pat.MatchString(line) {
				return cat.name
			}
		}
	}
	return ""
}

// MatchExclusion reports whether a line is end-matter boilerplate
// (acknowledgements, references, funding, ...).
func MatchExclusion(line string) bool {
	line = strings.TrimSpace(line)
	for _, pat := range exclusionPatterns {
		if pat.MatchString(line) {
			return true
		}
	}
	return false
}

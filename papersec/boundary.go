// CLAUDE:SUMMARY Boundary resolver: scans forward from a section heading to find where its content ends.
package papersec

import "strings"

// resolveEnd scans forward from the heading at lines[start] and returns the
// exclusive end index of the section's content.
//
// A section ends at the first of:
//   - an exclusion (boilerplate) line, at any nesting level;
//   - a heading of the same or higher level that matches a different
//     canonical category;
//   - a numbered heading at exactly the same level that matches nothing
//     (a sibling section the classifier cannot name).
//
// An unnumbered same-or-higher-level heading with no canonical match is
// treated as decorative sub-structure and scanning continues; numbered
// siblings are the reliable signal, pseudo-headings are not.
func resolveEnd(lines []string, start, level int, selfName string) int {
	for i := start + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if MatchExclusion(line) {
			return i
		}
		if !headingMarkerRe.MatchString(line) {
			continue
		}
		hl := HeadingLevel(line)
		if hl == 0 || hl > level {
			continue
		}

		matched := MatchCanonical(line)
		if matched != "" && matched != selfName {
			return i
		}
		if hl == level && matched == "" && numberedHeadingRe.MatchString(line) {
			return i
		}
	}
	return len(lines)
}

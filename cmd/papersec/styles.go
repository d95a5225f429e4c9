package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hazyhaar/papersec/papersec"
)

var (
	// titleStyle for section names
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for found sections
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for missing sections
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the result summary
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// formatSummary renders the per-document extraction summary box.
func formatSummary(w io.Writer, source string, result *papersec.Result) {
	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("Source:"), source))

	for _, name := range papersec.CanonicalSections {
		content, ok := result.Sections[name]
		if !ok {
			lines = append(lines, fmt.Sprintf("%s %s", errorStyle.Render("✗"), titleStyle.Render(name)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			successStyle.Render("✓"),
			titleStyle.Render(name),
			dimStyle.Render(fmt.Sprintf("(%d chars)", len(content)))))
	}

	status := "heuristic only"
	if result.Escalated {
		status = "model assisted"
	}
	lines = append(lines, dimStyle.Render("Mode: "+status))
	if reasons := result.Report.Reasons(); len(reasons) > 0 {
		lines = append(lines, dimStyle.Render("Flags: "+strings.Join(reasons, "; ")))
	}

	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

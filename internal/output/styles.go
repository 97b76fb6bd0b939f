package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Use these instead of inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: tags, projects, namespaces.
	ColorCyan = lipgloss.Color("14")

	// colorGreen marks a created tag.
	colorGreen = lipgloss.Color("82")

	// ColorYellow marks a planned tag (dry run).
	ColorYellow = lipgloss.Color("220")

	// colorBoldRed marks failures (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (tags, projects, namespaces).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators, commit ids).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Tag status words shown next to a tag name.
const (
	StatusTagged    = "tagged"
	StatusPlanned   = "planned"
	StatusUnchanged = "unchanged"
	StatusSkipped   = "skipped"
	statusFailed    = "failed"
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusTagged:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusPlanned:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged, StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minTagColumnWidth keeps status words aligned across lines.
const minTagColumnWidth = 32

// FormatTagLine renders "t:<project>@<tag>  <status>" with a right-aligned,
// color-coded status. An empty project renders just the tag.
func FormatTagLine(project, tag, status string) string {
	path := tag
	if project != "" {
		path = project + "@" + tag
	}

	padding := minTagColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("t:") + StyleNoun.Render(path) + strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// vetLabelWidth aligns the detail column of FormatVetCheck lines.
const vetLabelWidth = 30

// FormatVetCheck renders a passed validation check with an optional detail
// aligned in a second column.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}

	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}

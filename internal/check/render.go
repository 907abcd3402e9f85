package check

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	cleanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

func severityStyle(s Severity) lipgloss.Style {
	switch s {
	case SeverityError:
		return errorStyle
	case SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// Render writes the grouped findings report. Findings are grouped by
// severity, errors first, each with its fix suggestion underneath.
func Render(w io.Writer, findings []Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, cleanStyle.Render("No issues found."))
		return
	}

	for _, severity := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		var group []Finding
		for _, f := range findings {
			if f.Severity == severity {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}

		style := severityStyle(severity)
		fmt.Fprintf(w, "\n%s (%d found)\n", style.Render(severity.Label()), len(group))

		for _, f := range group {
			message := f.Message
			if f.Path != "" {
				message = fmt.Sprintf("%s (%s)", message, f.Path)
			}
			fmt.Fprintf(w, "  %s %s\n", style.Render("•"), dimStyle.Render(message))
			fmt.Fprintf(w, "    %s %s\n", style.Render("↳"), dimStyle.Render(f.Fix))
		}
	}

	fmt.Fprintln(w)
}

package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	locationTint = color.New(color.FgCyan).SprintFunc()
	gutterTint   = color.New(color.FgHiBlack).SprintFunc()
	caretTint    = color.New(color.FgRed).SprintFunc()
)

// FormatForTerminal renders the diagnostic for terminal output, pointing at
// the offending position inside source. Source may be empty, in which case
// only the two header lines (message and location) are produced.
func (d Diagnostic) FormatForTerminal(source string) string {
	var sb strings.Builder

	label := errorLabel("Error")
	if d.Severity == Warning {
		label = warningLabel("Warning")
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", label, d.Message))
	sb.WriteString(fmt.Sprintf("  %s %d:%d\n", locationTint("-->"), d.Pos.Line, d.Pos.Column))

	if source == "" {
		return sb.String()
	}

	lines := strings.Split(source, "\n")
	idx := d.Pos.Line - 1
	if idx < 0 || idx >= len(lines) {
		return sb.String()
	}

	gutter := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(gutterTint(gutter))
	sb.WriteString(lines[idx])
	sb.WriteString("\n")

	caretCol := d.Pos.Column - 1
	if caretCol < 0 {
		caretCol = 0
	}
	if caretCol > len(lines[idx]) {
		caretCol = len(lines[idx])
	}
	sb.WriteString(strings.Repeat(" ", len(gutter)+caretCol))
	sb.WriteString(caretTint("^"))
	sb.WriteString("\n")

	return sb.String()
}

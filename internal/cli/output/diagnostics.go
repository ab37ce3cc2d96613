package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

// Diagnostics writes one line per diagnostic to stderr, prefixed with the
// source name when one is given.
func (r *Renderer) Diagnostics(source string, diags []parser.Diagnostic) {
	for _, d := range diags {
		loc := d.Pos.String()
		if source != "" {
			loc = source + ":" + loc
		}
		label := r.severityStyle(d.Severity).Render(d.Severity.String())
		_, _ = fmt.Fprintf(r.errOut, "%s: %s: %v\n", loc, label, d.Err)
	}
}

// DiagnosticSummary writes the per-severity counts of diags to stderr.
// Nothing is written when diags is empty.
func (r *Renderer) DiagnosticSummary(diags []parser.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	var counts [3]int
	for _, d := range diags {
		if int(d.Severity) < len(counts) {
			counts[d.Severity]++
		}
	}
	_, _ = fmt.Fprintf(r.errOut, "%s, %s, %s\n",
		r.styles.Error.Render(fmt.Sprintf("%d errors", counts[core.SeverityError])),
		r.styles.Warning.Render(fmt.Sprintf("%d warnings", counts[core.SeverityWarning])),
		r.styles.Info.Render(fmt.Sprintf("%d info", counts[core.SeverityInfo])))
}

func (r *Renderer) severityStyle(s core.Severity) lipgloss.Style {
	switch s {
	case core.SeverityError:
		return r.styles.Error
	case core.SeverityWarning:
		return r.styles.Warning
	default:
		return r.styles.Info
	}
}

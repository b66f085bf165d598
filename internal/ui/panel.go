package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders done/total as a bar followed by a percentage.
// An empty total draws an empty bar.
func ProgressBar(done, total, width int) string {
	width = max(width, 5)
	done = max(done, 0)
	pct := 0
	if total > 0 {
		pct = min(done*100/total, 100)
	}
	filled := width * pct / 100
	return fmt.Sprintf("%s%s %3d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}

// Panel frames lines in the current theme's box. A non-empty title is set
// into the top border. Widths are measured without escape codes, so colored
// and double-width text lines up.
func Panel(w io.Writer, title string, lines []string) {
	t := Current()
	inner := 0
	for _, ln := range lines {
		inner = max(inner, lipgloss.Width(ln))
	}
	if title != "" {
		inner = max(inner, lipgloss.Width(title)+2)
	}

	top := strings.Repeat(t.H, inner+2)
	if title != "" {
		label := t.H + " " + title + " "
		top = label + strings.Repeat(t.H, inner+2-lipgloss.Width(label))
	}
	fmt.Fprintln(w, t.CornerTL+top+t.CornerTR)
	for _, ln := range lines {
		gap := strings.Repeat(" ", inner-lipgloss.Width(ln))
		fmt.Fprintln(w, t.V+" "+ln+gap+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, inner+2)+t.CornerBR)
}

package tui

import "github.com/charmbracelet/lipgloss"

// styles is the Lip Gloss palette for one theme.
type styles struct {
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	success     lipgloss.Style
	pending     lipgloss.Style
	muted       lipgloss.Style
	errorText   lipgloss.Style
	selected    lipgloss.Style
	done        lipgloss.Style
	help        lipgloss.Style
	input       lipgloss.Style
	bar         lipgloss.Style
	panel       lipgloss.Style

	boxChecked   string
	boxUnchecked string
}

func newStyles(theme string) styles {
	s := styles{
		tabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		tabInactive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("240")),
		success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		muted:       lipgloss.NewStyle().Faint(true),
		errorText:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		done:        lipgloss.NewStyle().Faint(true).Strikethrough(true),
		help:        lipgloss.NewStyle().Faint(true),
		input:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("15")).Padding(0, 1),
		bar:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		panel:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),

		boxChecked:   "☑",
		boxUnchecked: "☐",
	}
	switch theme {
	case "neon":
		s.tabActive = s.tabActive.Foreground(lipgloss.Color("213"))
		s.success = s.success.Foreground(lipgloss.Color("51"))
		s.pending = s.pending.Foreground(lipgloss.Color("227"))
		s.panel = s.panel.BorderForeground(lipgloss.Color("201"))
		s.boxChecked, s.boxUnchecked = "◼", "◻"
	case "mono":
		plain := lipgloss.NewStyle()
		s.tabActive = plain.Bold(true).Underline(true)
		s.tabInactive = plain
		s.success, s.pending, s.errorText = plain, plain, plain.Bold(true)
		s.input = s.input.UnsetBorderForeground().Border(lipgloss.NormalBorder())
		s.bar = s.bar.UnsetBorderForeground().Border(lipgloss.NormalBorder())
		s.panel = s.panel.UnsetBorderForeground().Border(lipgloss.NormalBorder())
		s.boxChecked, s.boxUnchecked = "[x]", "[ ]"
	}
	return s
}

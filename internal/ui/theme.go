package ui

import "strings"

// Theme is a palette plus the glyphs and borders printed with it.
// Helpers read the package-level current theme.
type Theme struct {
	Name string
	// Plain themes never emit escape codes.
	Plain bool

	Title, Muted, Dim, Accent, Active string
	Success, Error, Pending            string

	BoxUnchecked, BoxChecked               string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string

	SymDone, SymPending string
	SymOK, SymFail      string
}

var themes = map[string]Theme{
	"classic": {
		Name:  "classic",
		Title: bold, Muted: fgGray, Dim: dim, Accent: fgBlue, Active: fgWhite + bold,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•", SymOK: "✔", SymFail: "✖",
	},
	"neon": {
		Name:  "neon",
		Title: "\033[95m", Muted: fgGray, Dim: dim, Accent: "\033[96m", Active: "\033[95m" + bold,
		Success: fgGreen, Error: fgRed, Pending: "\033[93m",
		BoxUnchecked: "◻", BoxChecked: "◼",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•", SymOK: "✔", SymFail: "✖",
	},
	"mono": {
		Name:         "mono",
		Plain:        true,
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		SymDone: "x", SymPending: "-", SymOK: "✔", SymFail: "✖",
	},
}

var current = themes["classic"]

// SetTheme switches the current theme; unknown names fall back to classic.
func SetTheme(name string) {
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		t = themes["classic"]
	}
	current = t
}

func Current() Theme { return current }

// ThemeNames lists the themes SetTheme knows.
func ThemeNames() []string { return []string{"classic", "neon", "mono"} }

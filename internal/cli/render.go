package cli

import (
	"fmt"
	"io"

	"github.com/Makepad-fr/worktravel/internal/model"
	"github.com/Makepad-fr/worktravel/internal/tasks"
	"github.com/Makepad-fr/worktravel/internal/ui"
)

// numbered is an entry with its 1-based position in its mode's list, so
// grouping never changes the index `done`/`rm` accept.
type numbered struct {
	n     int
	entry model.Entry
}

func renderList(w io.Writer, ctl *tasks.Controller, all, group bool) {
	t := ui.Current()
	current := ctl.Mode()

	tab := func(m model.Mode) string {
		if m == current {
			return ui.C(t.Active, "["+m.Label()+"]")
		}
		return ui.C(t.Muted, " "+m.Label()+" ")
	}

	modes := []model.Mode{current}
	if all {
		modes = []model.Mode{model.Work, model.Travel}
	}

	var lines []string
	lines = append(lines, tab(model.Work)+"  "+tab(model.Travel))
	for _, m := range modes {
		entries := modeEntries(ctl, m)
		d, p := stats(entries)
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			ui.C(t.Title, m.Label()),
			ui.C(t.Success, t.SymDone), d,
			ui.C(t.Pending, t.SymPending), p,
			ui.C(t.Accent, "Total"), len(entries),
		))
		lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
		if group {
			lines = append(lines, groupLines(entries)...)
		} else {
			lines = append(lines, flatLines(entries)...)
		}
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `worktravel add \"Buy milk\"`"))
	ui.Panel(w, "worktravel", lines)
}

func modeEntries(ctl *tasks.Controller, m model.Mode) []numbered {
	var out []numbered
	for _, e := range ctl.AllTasks() {
		if e.Task.Mode == m {
			out = append(out, numbered{n: len(out) + 1, entry: e})
		}
	}
	return out
}

// -------------- rendering helpers --------------

func stats(entries []numbered) (done, pending int) {
	for _, e := range entries {
		if e.entry.Task.Complete {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(entries []numbered) []string {
	t := ui.Current()
	if len(entries) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		box, color := t.BoxUnchecked, t.Muted
		if e.entry.Task.Complete {
			box, color = t.BoxChecked, t.Success
		}
		text := []rune(e.entry.Task.Text)
		if len(text) > 80 {
			text = append(text[:77], []rune("...")...)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.C(t.Dim, fmt.Sprintf("%2d.", e.n)), ui.C(color, box), string(text),
			ui.C(t.Muted, "("+string(e.entry.ID)+")")))
	}
	return out
}

func groupLines(entries []numbered) []string {
	var pend, done []numbered
	for _, e := range entries {
		if e.entry.Task.Complete {
			done = append(done, e)
		} else {
			pend = append(pend, e)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}

// Package tui is the interactive Work/Travel screen.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/worktravel/internal/model"
	"github.com/Makepad-fr/worktravel/internal/tasks"
	"github.com/Makepad-fr/worktravel/internal/ui"
)

const emptyTextError = "Text cannot be empty"

var placeholders = map[model.Mode]string{
	model.Work:   "Add a To Do",
	model.Travel: "Where do you want to go?",
}

// listItem adapts a task entry to bubbles/list.Item
type listItem struct {
	entry model.Entry
}

func (i listItem) Title() string       { return i.entry.Task.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.entry.Task.Text }

// itemDelegate renders each task on a single line.
type itemDelegate struct {
	st styles
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := d.st.muted.Render(d.st.boxUnchecked)
	text := it.entry.Task.Text
	if it.entry.Task.Complete {
		box = d.st.success.Render(d.st.boxChecked)
		text = d.st.done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.st.selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

type focus int

const (
	focusList focus = iota
	focusInput
	focusEdit
)

// Options configures the screen.
type Options struct {
	Theme string
}

// Model is the Bubble Tea model. All task state lives in the controller;
// the model only keeps widget state.
type Model struct {
	ctl   *tasks.Controller
	st    styles
	keys  keyMap
	help  help.Model
	list  list.Model
	input textinput.Model
	edit  textinput.Model

	focus   focus
	editErr string
	width   int
	height  int
}

// New builds the screen around ctl, which must already be loaded.
func New(ctl *tasks.Controller, opt Options) Model {
	st := newStyles(opt.Theme)

	l := list.New(nil, itemDelegate{st: st}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.PaginationStyle = st.help
	l.Styles.NoItems = st.muted.PaddingLeft(2)

	in := textinput.New()
	in.Prompt = "+ "
	in.CharLimit = 200

	ed := textinput.New()
	ed.Prompt = "> "
	ed.CharLimit = 200

	m := Model{
		ctl:   ctl,
		st:    st,
		keys:  defaultKeyMap(),
		help:  help.New(),
		list:  l,
		input: in,
		edit:  ed,
	}
	m.help.Styles.ShortKey = st.help
	m.help.Styles.ShortDesc = st.help
	m.input.SetValue(ctl.Input())
	m.refresh()
	return m
}

// Run blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, ctl *tasks.Controller, opt Options) error {
	p := tea.NewProgram(New(ctl, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if _, ok := m.ctl.PendingDelete(); ok {
			return m.updateConfirm(msg)
		}
		switch m.focus {
		case focusInput:
			return m.updateInput(msg)
		case focusEdit:
			return m.updateEdit(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// updateConfirm answers the delete prompt; everything else is swallowed.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.ctl.ConfirmDelete()
		m.refresh()
	case "n", "N", "esc":
		m.ctl.CancelDelete()
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if _, ok := m.ctl.AddTask(m.input.Value()); ok {
			m.input.SetValue(m.ctl.Input())
			m.refresh()
		}
		return m, nil
	case "esc":
		m.input.Blur()
		m.focus = focusList
		return m, nil
	case "tab":
		m.switchMode(m.ctl.Mode().Toggle())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctl.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id, editing := m.ctl.Editing()
	if !editing {
		m.leaveEdit()
		return m.updateList(msg)
	}
	switch msg.String() {
	case "enter":
		if m.ctl.CommitEdit(id, m.edit.Value()) {
			m.leaveEdit()
			m.refresh()
			return m, nil
		}
		if _, still := m.ctl.Editing(); still {
			m.editErr = emptyTextError
			return m, nil
		}
		// task vanished underneath the edit
		m.leaveEdit()
		m.refresh()
		return m, nil
	case "esc":
		m.ctl.CancelEdit()
		m.leaveEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.ctl.SetDraft(m.edit.Value())
	m.editErr = ""
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Switch):
		m.switchMode(m.ctl.Mode().Toggle())
		return m, nil
	case key.Matches(msg, m.keys.Work):
		m.switchMode(model.Work)
		return m, nil
	case key.Matches(msg, m.keys.Travel):
		m.switchMode(model.Travel)
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.focus = focusInput
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		if e, ok := m.selected(); ok && m.ctl.BeginEdit(e.ID) {
			m.edit.SetValue(m.ctl.Draft())
			m.edit.CursorEnd()
			m.editErr = ""
			m.focus = focusEdit
			return m, m.edit.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if e, ok := m.selected(); ok {
			m.ctl.ToggleComplete(e.ID, !e.Task.Complete)
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if e, ok := m.selected(); ok {
			m.ctl.RequestDelete(e.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) switchMode(mode model.Mode) {
	if m.ctl.Mode() != mode {
		m.list.Select(0)
	}
	m.ctl.SetMode(mode)
	m.refresh()
}

func (m *Model) leaveEdit() {
	m.edit.SetValue("")
	m.edit.Blur()
	m.editErr = ""
	m.focus = focusList
}

func (m Model) selected() (model.Entry, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Entry{}, false
	}
	return it.entry, true
}

// refresh rebuilds the list from the controller's visible tasks.
func (m *Model) refresh() {
	visible := m.ctl.VisibleTasks()
	items := make([]list.Item, 0, len(visible))
	for _, e := range visible {
		items = append(items, listItem{entry: e})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.input.Placeholder = placeholders[m.ctl.Mode()]
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.input.Width = w - 6
	m.edit.Width = w - 6
	h := m.height - 12
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
}

func (m Model) View() string {
	snap := m.ctl.Snapshot()

	tab := func(label string, mode model.Mode) string {
		if snap.Mode == mode {
			return m.st.tabActive.Render(label)
		}
		return m.st.tabInactive.Render(label)
	}
	header := tab("Work", model.Work) + "    " + tab("Travel", model.Travel)

	total := snap.Done + snap.Pending
	counts := fmt.Sprintf("%s %d  %s %d  %s",
		m.st.success.Render("✔"), snap.Done,
		m.st.pending.Render("•"), snap.Pending,
		m.st.muted.Render(ui.ProgressBar(snap.Done, total, 20)),
	)

	inputBox := m.st.input
	if m.focus != focusInput {
		inputBox = inputBox.BorderForeground(lipgloss.Color("8"))
	}

	parts := []string{header, counts, inputBox.Render(m.input.View()), m.list.View()}

	switch {
	case snap.PendingDelete != "":
		p, _ := m.ctl.DeletePrompt(snap.PendingDelete)
		body := fmt.Sprintf("%s: %s\n%s\n[n] %s   [y] %s",
			p.Title, p.Message, m.st.muted.Render(truncate(p.Entry.Task.Text, 60)),
			p.CancelLabel, m.st.errorText.Render(p.ConfirmLabel))
		parts = append(parts, m.st.bar.Render(body))
	case m.focus == focusEdit:
		title := "Edit item"
		if m.editErr != "" {
			title += ": " + m.st.errorText.Render(m.editErr)
		}
		parts = append(parts, m.st.bar.Render(title+"\n"+m.edit.View()))
	}

	parts = append(parts, m.help.View(m.keys))
	return m.st.panel.Render(strings.Join(parts, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

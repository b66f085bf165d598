package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/worktravel/internal/model"
	"github.com/Makepad-fr/worktravel/internal/tasks"
	"github.com/Makepad-fr/worktravel/internal/store/memstore"
)

func newTestModel(t *testing.T) (Model, *tasks.Controller) {
	t.Helper()
	clock := tasks.NewFakeClock(time.UnixMilli(1_700_000_000_000))
	ctl := tasks.New(context.Background(), memstore.New(), tasks.WithClock(tickingClock{clock}))
	t.Cleanup(ctl.Close)
	require.NoError(t, ctl.Load(context.Background()))

	m := New(ctl, Options{Theme: "mono"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model), ctl
}

// tickingClock advances one millisecond per reading.
type tickingClock struct{ c *tasks.FakeClock }

func (t tickingClock) Now() time.Time {
	now := t.c.Now()
	t.c.Advance(time.Millisecond)
	return now
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func visibleTexts(ctl *tasks.Controller) []string {
	var out []string
	for _, e := range ctl.VisibleTasks() {
		out = append(out, e.Task.Text)
	}
	return out
}

func TestAddThroughInput(t *testing.T) {
	m, ctl := newTestModel(t)

	m = press(m, "a", "Buy milk", "enter", "Call Bob", "enter")
	assert.Equal(t, []string{"Buy milk", "Call Bob"}, visibleTexts(ctl))
	assert.Equal(t, focusInput, m.focus)
	assert.Empty(t, m.input.Value())
	assert.Len(t, m.list.Items(), 2)

	m = press(m, "enter")
	assert.Equal(t, 2, ctl.Len(), "empty submit is ignored")

	m = press(m, "esc")
	assert.Equal(t, focusList, m.focus)
}

func TestTypingQInInputDoesNotQuit(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(m, "a")

	m = press(m, "q")
	assert.Equal(t, "q", m.input.Value())
	assert.Equal(t, focusInput, m.focus)
	assert.Equal(t, "q", ctl.Input())
}

func TestModeSwitchFiltersList(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(m, "a", "Standup", "enter", "esc")

	m = press(m, "tab")
	assert.Equal(t, model.Travel, ctl.Mode())
	assert.Empty(t, m.list.Items())
	assert.Equal(t, "Where do you want to go?", m.input.Placeholder)

	m = press(m, "a", "Lisbon", "enter", "esc", "w")
	assert.Equal(t, model.Work, ctl.Mode())
	assert.Equal(t, []string{"Standup"}, visibleTexts(ctl))
	assert.Equal(t, "Add a To Do", m.input.Placeholder)

	m = press(m, "t")
	assert.Equal(t, []string{"Lisbon"}, visibleTexts(ctl))
}

func TestToggleSelected(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(m, "a", "one", "enter", "two", "enter", "esc", "down", " ")

	second := ctl.VisibleTasks()[1]
	assert.True(t, second.Task.Complete)
	assert.False(t, ctl.VisibleTasks()[0].Task.Complete)

	press(m, "x")
	assert.False(t, ctl.VisibleTasks()[1].Task.Complete)
}

func TestEditFlow(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(m, "a", "Call Bob", "enter", "esc", "e")
	require.Equal(t, focusEdit, m.focus)
	assert.Equal(t, "Call Bob", m.edit.Value())

	m.edit.SetValue("")
	m = press(m, "enter")
	assert.Equal(t, focusEdit, m.focus, "empty commit stays in edit mode")
	assert.Equal(t, emptyTextError, m.editErr)
	_, editing := ctl.Editing()
	assert.True(t, editing)

	m = press(m, "Call Alice")
	assert.Empty(t, m.editErr)
	assert.Equal(t, "Call Alice", ctl.Draft())
	m = press(m, "enter")

	assert.Equal(t, focusList, m.focus)
	assert.Equal(t, []string{"Call Alice"}, visibleTexts(ctl))
	_, editing = ctl.Editing()
	assert.False(t, editing)
}

func TestEditCancel(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(m, "a", "Call Bob", "enter", "esc", "e", "!!", "esc")

	assert.Equal(t, focusList, m.focus)
	assert.Equal(t, []string{"Call Bob"}, visibleTexts(ctl))
	_, editing := ctl.Editing()
	assert.False(t, editing)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(m, "a", "keep", "enter", "drop", "enter", "esc", "down", "d")

	pending, ok := ctl.PendingDelete()
	require.True(t, ok)
	assert.Contains(t, m.View(), "Are you sure?")

	m = press(m, "q", "n")
	_, ok = ctl.PendingDelete()
	assert.False(t, ok)
	assert.Equal(t, 2, ctl.Len(), "cancel keeps the task")

	m = press(m, "d", "y")
	assert.Equal(t, []string{"keep"}, visibleTexts(ctl))
	_, exists := ctl.Task(pending)
	assert.False(t, exists)
	assert.Len(t, m.list.Items(), 1)
	assert.Equal(t, 0, m.list.Index(), "selection clamps to the remaining item")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	m = press(m, "a")
	_, cmd = m.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsTabsAndCounts(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "a", "one", "enter", "esc", " ")

	v := m.View()
	assert.Contains(t, v, "Work")
	assert.Contains(t, v, "Travel")
	assert.Contains(t, v, "one")
	assert.Contains(t, v, "[x]")
}
